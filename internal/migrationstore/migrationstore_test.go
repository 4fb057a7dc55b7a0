package migrationstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestStoreRoundTrip exercises a live Postgres instance and is skipped
// unless MIGRATIONSTORE_TEST_DSN is set, since the module has no
// embedded database to run against in CI by default.
func TestStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("MIGRATIONSTORE_TEST_DSN")
	if dsn == "" {
		t.Skip("MIGRATIONSTORE_TEST_DSN not set, skipping postgres integration test")
	}

	ctx := context.Background()
	store, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Migrate(ctx))

	rec := MigrationRecord{
		LegacyID:    "did:sov:2wJPyULfLLnYTEFYzByfUR",
		NewID:       "did:ethr:testnet:0xf0e2db6c8dc6c681bb5d6ad121a107f300e9b2b5",
		MappingType: MappingTypeDid,
		RecordedAt:  time.Now().UTC(),
	}
	require.NoError(t, store.Record(ctx, rec))

	latest, err := store.Latest(ctx, rec.LegacyID)
	require.NoError(t, err)
	require.Equal(t, rec.NewID, latest.NewID)
	require.Equal(t, rec.MappingType, latest.MappingType)

	all, err := store.ByLegacyID(ctx, rec.LegacyID)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
