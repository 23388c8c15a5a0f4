package steps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"confmigrate/internal/config"
	"confmigrate/internal/migrate"
	"confmigrate/internal/source"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureStore(t *testing.T, files map[string]string) source.Store {
	t.Helper()
	dir := t.TempDir()
	for coll, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, coll+".jsonl"), []byte(content), 0o644))
	}
	store, err := source.Open(context.Background(), "file://"+dir)
	require.NoError(t, err)
	return store
}

func TestUsersStep(t *testing.T) {
	store := fixtureStore(t, map[string]string{
		source.CollAvatars: `{"id":"1","firstName":"Marie","surName":"Curie","email":"not an email","status":"activated","identities":[{"kind":"ldap","login":"mcurie"}]}
{"id":"2","mergedInto":"1"}
{"id":"3","firstName":"Ghost","surName":"User","email":"ghost@example.com","status":"Not confirmed"}
`,
	})
	defer store.Close(context.Background())

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	// avatar 1: garbage e-mail replaced with the fallback
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO identities`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// fresh system user with explicit id 0, then sequence fixup
	mock.ExpectExec(`INSERT INTO users \(id,`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SELECT setval`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	env := &Env{
		DB:    db,
		Store: store,
		NS:    migrate.NewNamespace(),
		Opts: &config.Options{
			SystemUserID:     -1,
			DefaultEmail:     "lost@example.com",
			LDAPProviderName: "ldap",
		},
	}
	step := NewUsersStep(env)
	require.NoError(t, step.Run(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())

	// merged avatar points at the same user, unconfirmed one is gone
	assert.Equal(t, 1, env.NS.UserByAvatar["1"])
	assert.Equal(t, 1, env.NS.UserByAvatar["2"])
	_, migrated := env.NS.UserByAvatar["3"]
	assert.False(t, migrated)
	assert.Equal(t, 1, env.NS.UsersByEmail["lost@example.com"])
	assert.Equal(t, 0, env.NS.SystemUserID)
}

func TestUsersStepExistingSystemUser(t *testing.T) {
	store := fixtureStore(t, map[string]string{})
	defer store.Close(context.Background())

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET is_system = TRUE`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	env := &Env{
		DB:    db,
		Store: store,
		NS:    migrate.NewNamespace(),
		Opts: &config.Options{
			SystemUserID: 5,
			DefaultEmail: "lost@example.com",
		},
	}
	require.NoError(t, NewUsersStep(env).Run(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 5, env.NS.SystemUserID)
}
