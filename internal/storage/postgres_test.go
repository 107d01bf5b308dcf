package storage

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/Varun5711/recipebook/internal/database"
	"github.com/Varun5711/recipebook/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestPostgresStorage(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	ctx := context.Background()

	db, err := database.NewDBManager(ctx, database.Config{
		PrimaryDSN:      dsn,
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	migrationLog := logger.New("migrations")
	migrationLog.SetOutput(io.Discard)
	require.NoError(t, db.Migrate(ctx, migrationLog))

	recipes := NewPostgresStorage(db)
	require.NoError(t, recipes.Ping(ctx))

	runStoreSuite(t, recipes, NewUserStorage(db))
}
