package main

import (
	"encoding/hex"
	"os"
	"testing"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/stretchr/testify/require"
)

func TestLoadLegacyPrivateKeyMissing(t *testing.T) {
	os.Unsetenv("MIGRATE_LEGACY_PRIVATE_KEY")
	_, err := loadLegacyPrivateKey()
	require.Error(t, err)
}

func TestLoadLegacyPrivateKeyRoundTrip(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	t.Setenv("MIGRATE_LEGACY_PRIVATE_KEY", "0x"+hex.EncodeToString(priv))
	loaded, err := loadLegacyPrivateKey()
	require.NoError(t, err)
	require.Equal(t, []byte(priv), []byte(loaded))
}

func TestLoadLegacyPrivateKeyWrongLength(t *testing.T) {
	t.Setenv("MIGRATE_LEGACY_PRIVATE_KEY", "aabbcc")
	_, err := loadLegacyPrivateKey()
	require.Error(t, err)
}
