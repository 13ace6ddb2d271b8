package handlers

import (
	"database/sql"
	"testing"

	"github.com/kq-awards/voting-api/cliparse"
	"github.com/kq-awards/voting-api/testutil"
)

// setupTestDB creates a fresh in-memory database with the full schema
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return testutil.SetupTestDB(t)
}

// getTestConfig returns a standard test configuration
func getTestConfig() cliparse.Config {
	return testutil.GetTestConfig()
}
