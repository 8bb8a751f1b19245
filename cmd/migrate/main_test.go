package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSection(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE carts (id serial PRIMARY KEY);
CREATE TABLE cart_items (id serial PRIMARY KEY);

-- +migrate Down
DROP TABLE cart_items;
DROP TABLE carts;
`
	t.Run("Up section", func(t *testing.T) {
		up := migrationSection(content, "Up")
		assert.Contains(t, up, "CREATE TABLE carts")
		assert.Contains(t, up, "CREATE TABLE cart_items")
		assert.NotContains(t, up, "DROP TABLE")
		assert.NotContains(t, up, "-- +migrate")
	})

	t.Run("Down section", func(t *testing.T) {
		down := migrationSection(content, "Down")
		assert.Contains(t, down, "DROP TABLE carts")
		assert.NotContains(t, down, "CREATE TABLE")
	})
}

func TestApplyPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tmpDir := t.TempDir()
	fileName := "0001_init.sql"
	filePath := filepath.Join(tmpDir, fileName)

	content := "-- +migrate Up\nCREATE TABLE carts (id serial PRIMARY KEY);"
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))

	t.Run("Applies a pending migration and records it", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs(fileName).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE carts").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs(fileName).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, applyPending(db, []string{filePath}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Skips an already applied migration", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs(fileName).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, applyPending(db, []string{filePath}))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRollbackLast(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tmpDir := t.TempDir()
	fileName := "0001_init.sql"
	filePath := filepath.Join(tmpDir, fileName)

	content := "-- +migrate Up\nCREATE TABLE carts (id serial PRIMARY KEY);\n-- +migrate Down\nDROP TABLE carts;"
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))

	t.Run("Rolls back the latest applied migration", func(t *testing.T) {
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(fileName))
		mock.ExpectExec("DROP TABLE carts").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs(fileName).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, rollbackLast(db, []string{filePath}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing applied is a no-op", func(t *testing.T) {
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		require.NoError(t, rollbackLast(db, []string{filePath}))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
