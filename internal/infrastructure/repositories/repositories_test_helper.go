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

func createMatchTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE matches (
		id TEXT PRIMARY KEY,
		match_type TEXT NOT NULL,
		entry_fee INTEGER NOT NULL,
		start_time DATETIME NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE match_participants (
		id TEXT PRIMARY KEY,
		match_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		slot INTEGER NOT NULL,
		created_at DATETIME
	);`)
}

func createPaymentSubmissionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payment_submissions (
		id TEXT PRIMARY KEY,
		match_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		amount_paid INTEGER NOT NULL,
		screenshot TEXT,
		status TEXT NOT NULL,
		approved BOOLEAN NOT NULL DEFAULT 0,
		refunded BOOLEAN NOT NULL DEFAULT 0,
		refund_timestamp DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL,
		has_profile BOOLEAN NOT NULL DEFAULT 0,
		display_name TEXT,
		email TEXT,
		phone_number TEXT,
		game_player_id TEXT,
		game_name TEXT,
		refund_payment_qr_code TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
