// Package storetest opens migrated in-memory databases for tests.
package storetest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"

	"erp/internal/store"
)

var dbSeq atomic.Int64

// NewDB returns an in-memory SQLite database with every migration applied.
// Each call gets its own database, closed when the test ends.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:erptest%d?mode=memory&cache=shared&_loc=UTC", dbSeq.Add(1))
	db, err := store.NewDB(store.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("storetest: open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.MigrateUp(db.Client.DB, store.DriverSQLite); err != nil {
		t.Fatalf("storetest: migrate: %v", err)
	}
	return db.Client
}
