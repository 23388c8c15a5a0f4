package steps

import (
	"context"
	"testing"

	"confmigrate/internal/config"
	"confmigrate/internal/migrate"
	"confmigrate/internal/source"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesStep(t *testing.T) {
	store := fixtureStore(t, map[string]string{
		source.CollCategories: `{"id":"0","title":"Home"}
{"id":"10","parentId":"0","title":"Physics","order":1,"managers":[{"kind":"avatar","id":"12"},{"kind":"group","id":"g1"}]}
`,
	})
	defer store.Close(context.Background())

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO categories`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO categories`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	// the avatar manager resolves, the group principal is skipped
	mock.ExpectExec(`INSERT INTO category_managers`).
		WithArgs(2, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ns := migrate.NewNamespace()
	ns.UserByAvatar["12"] = 3
	env := &Env{
		DB:    db,
		Store: store,
		NS:    ns,
		Opts:  &config.Options{},
	}
	require.NoError(t, NewCategoriesStep(env).Run(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 1, ns.CategoryByLegacyID["0"])
	assert.Equal(t, 2, ns.CategoryByLegacyID["10"])
}

func TestCategoriesStepMissingRoot(t *testing.T) {
	store := fixtureStore(t, map[string]string{
		source.CollCategories: `{"id":"10","title":"Orphan"}
`,
	})
	defer store.Close(context.Background())

	env := &Env{Store: store, NS: migrate.NewNamespace(), Opts: &config.Options{}}
	require.Error(t, NewCategoriesStep(env).Run(context.Background()))
}
