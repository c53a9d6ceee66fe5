package migrations

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/models"
	"github.com/monoare/vigor-vista-server/internal/storage/mongodb"
	"github.com/monoare/vigor-vista-server/internal/testutil/mongotest"
)

func getMigrationsPath(t *testing.T) string {
	projectRoot, err := filepath.Abs("../..")
	require.NoError(t, err)
	return filepath.Join(projectRoot, "migrations")
}

func TestRunMigrations(t *testing.T) {
	uri := mongotest.URI(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database := mongotest.Database()
	s, err := mongodb.New(ctx, uri, database, 10*time.Second)
	require.NoError(t, err)
	defer func() {
		_ = s.Database().Drop(context.Background())
		_ = s.Close(context.Background())
	}()

	require.NoError(t, Run(s.Client(), database, getMigrationsPath(t)))
	// повторный запуск не должен падать
	require.NoError(t, Run(s.Client(), database, getMigrationsPath(t)))

	specs, err := s.Database().Collection(mongodb.CollUsers).Indexes().ListSpecifications(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	assert.Contains(t, names, "users_email_unique")

	_, err = s.InsertUser(ctx, models.User{Email: "a@x.com"})
	require.NoError(t, err)
	_, err = s.InsertUser(ctx, models.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)

	n, err := s.Database().Collection(mongodb.CollUsers).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
