package db

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/inventory-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	exists    bool
	existsErr error
	createErr error
	created   []string
}

func (f *fakeCreator) DatabaseExists(ctx context.Context, name string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeCreator) CreateDatabase(ctx context.Context, name string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, name)
	return nil
}

func TestEnsureDatabaseCreatesWhenMissing(t *testing.T) {
	creator := &fakeCreator{}
	require.NoError(t, ensureDatabase(context.Background(), creator, "inventory", nil))
	assert.Equal(t, []string{"inventory"}, creator.created)
}

func TestEnsureDatabaseSkipsExisting(t *testing.T) {
	creator := &fakeCreator{exists: true}
	require.NoError(t, ensureDatabase(context.Background(), creator, "inventory", nil))
	assert.Empty(t, creator.created)
}

func TestEnsureDatabasePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	err := ensureDatabase(context.Background(), &fakeCreator{existsErr: boom}, "inventory", nil)
	assert.ErrorIs(t, err, boom)

	err = ensureDatabase(context.Background(), &fakeCreator{createErr: boom}, "inventory", nil)
	assert.ErrorIs(t, err, boom)

	err = ensureDatabase(context.Background(), &fakeCreator{}, "", nil)
	assert.Error(t, err)
}

func TestEnsureDatabaseNoopForSQLiteOrDisabled(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, EnsureDatabase(ctx, config.DBConfig{Driver: config.DriverSQLite, CreateDatabase: true}, nil))
	assert.NoError(t, EnsureDatabase(ctx, config.DBConfig{Driver: config.DriverPostgres}, nil))
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"inventory"`, quoteIdentifier("inventory"))
	assert.Equal(t, `"bad""name"`, quoteIdentifier(`bad"name`))
}
