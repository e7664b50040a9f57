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

func createContractorTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE contractors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		rate TEXT NOT NULL DEFAULT '0',
		skills TEXT DEFAULT '[]',
		status TEXT NOT NULL DEFAULT 'pending',
		image_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		contractor_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		memo TEXT,
		payment_method TEXT NOT NULL,
		payee_id TEXT,
		external_payment_id TEXT,
		status TEXT NOT NULL DEFAULT 'processing',
		metadata TEXT DEFAULT '{}',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
