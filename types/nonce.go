package types

import "math/big"

// Nonce is a 256-bit unsigned integer carried as four 64-bit limbs,
// little-endian in the limb array (limb[0] is the least significant
// word), matching the wire shape the original VDR uses for
// `eth_getTransactionCount` results.
type Nonce [4]uint64

// NonceFromUint64 builds a Nonce from a small value.
func NonceFromUint64(v uint64) Nonce {
	return Nonce{v, 0, 0, 0}
}

// NonceFromBigInt converts a big.Int into limb form. Values wider than
// 256 bits are truncated.
func NonceFromBigInt(v *big.Int) Nonce {
	var n Nonce
	mask := new(big.Int).SetUint64(^uint64(0))
	tmp := new(big.Int).Set(v)
	for i := 0; i < 4; i++ {
		limb := new(big.Int).And(tmp, mask)
		n[i] = limb.Uint64()
		tmp.Rsh(tmp, 64)
	}
	return n
}

// BigInt reassembles the limb form into a big.Int.
func (n Nonce) BigInt() *big.Int {
	result := new(big.Int)
	for i := 3; i >= 0; i-- {
		result.Lsh(result, 64)
		result.Or(result, new(big.Int).SetUint64(n[i]))
	}
	return result
}

// Slice returns the limbs as a slice, the shape used by the wire
// transaction's nonce field.
func (n Nonce) Slice() []uint64 {
	return []uint64{n[0], n[1], n[2], n[3]}
}

// NonceFromSlice builds a Nonce from a 4-element slice, failing ok=false
// otherwise.
func NonceFromSlice(s []uint64) (Nonce, bool) {
	if len(s) != 4 {
		return Nonce{}, false
	}
	return Nonce{s[0], s[1], s[2], s[3]}, true
}

// ChainID is the 64-bit chain identifier fixed at client construction.
type ChainID uint64
