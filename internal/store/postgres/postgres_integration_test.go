package postgres

import (
	"os"
	"testing"

	"github.com/vgwingman/wingman/internal/store"
	"github.com/vgwingman/wingman/internal/store/storetest"
)

func makePGStore(t *testing.T) store.Store {
	t.Helper()
	dsn := os.Getenv("WINGMAN_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("WINGMAN_POSTGRES_DSN not set; skipping postgres store integration test")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("postgres schema: %v", err)
	}
	return NewWithDB(db)
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
