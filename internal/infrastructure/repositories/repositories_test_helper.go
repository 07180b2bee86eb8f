package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createOfferTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE foody_offers (
		id TEXT PRIMARY KEY,
		restaurant_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		price_cents INTEGER NOT NULL,
		original_price_cents INTEGER,
		qty_total INTEGER NOT NULL DEFAULT 1,
		qty_left INTEGER NOT NULL DEFAULT 1,
		expires_at DATETIME,
		archived_at DATETIME,
		created_at DATETIME
	);`)
}

func createMerchantTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE foody_restaurants (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		email TEXT UNIQUE,
		phone TEXT,
		city TEXT,
		address TEXT,
		lat TEXT,
		lng TEXT,
		password_hash TEXT,
		created_at DATETIME
	);`)
}

func createAPIKeyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE foody_api_keys (
		id TEXT PRIMARY KEY,
		restaurant_id TEXT NOT NULL,
		key_prefix TEXT NOT NULL,
		key_hash TEXT NOT NULL UNIQUE,
		last_used_at DATETIME,
		created_at DATETIME
	);`)
}
