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

	// One connection keeps concurrent transactions serialized instead of
	// tripping SQLITE_BUSY
	sqlDB, err := db.DB()
	require.NoError(t, err, "unwrap sql.DB")
	sqlDB.SetMaxOpenConns(1)
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createTokenTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE tokens (
		chain_id INTEGER NOT NULL,
		address TEXT NOT NULL,
		decimals INTEGER NOT NULL,
		symbol TEXT,
		created_at DATETIME,
		PRIMARY KEY (chain_id, address)
	);`)
}

func createPairTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE pairs (
		chain_id INTEGER NOT NULL,
		token0 TEXT NOT NULL,
		token1 TEXT NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT 1,
		label TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		PRIMARY KEY (chain_id, token0, token1)
	);`)
}

func createStrategyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE strategies (
		id TEXT PRIMARY KEY,
		chain_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		version INTEGER NOT NULL,
		params TEXT,
		hash TEXT NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME
	);`)
}

func createAppConfigTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE app_config (
		chain_id INTEGER PRIMARY KEY,
		active_strategy_id TEXT,
		paused BOOLEAN NOT NULL DEFAULT 0,
		updated_at DATETIME
	);`)
}

func createNonceStateTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE nonce_state (
		chain_id INTEGER NOT NULL,
		maker_address TEXT NOT NULL,
		next_nonce TEXT NOT NULL DEFAULT '0',
		updated_at DATETIME,
		PRIMARY KEY (chain_id, maker_address)
	);`)
}

func createQuoteTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE quotes (
		id TEXT PRIMARY KEY,
		chain_id INTEGER NOT NULL,
		maker TEXT NOT NULL,
		taker TEXT NOT NULL,
		recipient TEXT NOT NULL,
		executor TEXT NOT NULL,
		strategy_id TEXT NOT NULL,
		strategy_version INTEGER NOT NULL,
		strategy_hash TEXT NOT NULL,
		sell_token TEXT NOT NULL,
		buy_token TEXT NOT NULL,
		sell_amount TEXT NOT NULL,
		buy_amount TEXT NOT NULL,
		fee_bps INTEGER NOT NULL,
		fee_amount TEXT NOT NULL DEFAULT '0',
		nonce TEXT NOT NULL,
		expiry INTEGER NOT NULL,
		typed_data TEXT NOT NULL,
		signature TEXT NOT NULL,
		tx_to TEXT NOT NULL,
		tx_data TEXT NOT NULL,
		tx_value TEXT NOT NULL DEFAULT '0',
		status TEXT NOT NULL,
		reject_code TEXT,
		pricing_as_of_ms INTEGER NOT NULL DEFAULT 0,
		pricing_confidence REAL NOT NULL DEFAULT 0,
		pricing_stale BOOLEAN NOT NULL DEFAULT 0,
		pricing_sources TEXT,
		created_at DATETIME
	);`)
}
