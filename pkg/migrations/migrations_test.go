package migrations

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSchema = `
create table if not exists notes (
	id integer primary key,
	body text not null
);
`

func TestOpenAndMigrateDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	db, err := OpenAndMigrateDB(testSchema, path)
	require.NoError(t, err)
	_, err = db.Exec("insert into notes (body) values (?)", "hello")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// applying the schema again must keep the existing rows
	db, err = OpenAndMigrateDB(testSchema, path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("select count(*) from notes").Scan(&count))
	require.Equal(t, 1, count)
}

func TestOpenAndMigrateDBInvalidSchema(t *testing.T) {
	_, err := OpenAndMigrateDB("create tabel oops", ":memory:")
	require.Error(t, err)
}
