package services

import (
	"context"
	"testing"

	"github.com/localnerve/pcnodetree/internal/config"
	"github.com/localnerve/pcnodetree/internal/database"
	"github.com/localnerve/pcnodetree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{DBType: "sqlite3", DBDatabase: ":memory:", AuthMode: config.AuthModeToken}

	t.Run("healthy", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		testutil.CreateNode(t, db, "AlphaPC", nil)

		result := HealthCheck(ctx, cfg, db, nil)
		assert.True(t, result.Healthy())
		assert.Equal(t, "ok", result.Database)
		assert.Equal(t, "1", result.Details["node_count"])
		assert.Empty(t, result.Authorizer, "authorizer is not checked in token mode")
		assert.NotEmpty(t, result.Timestamp)
	})

	t.Run("database closed", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		require.NoError(t, database.Close(db))

		result := HealthCheck(ctx, cfg, db, nil)
		assert.False(t, result.Healthy())
		assert.NotEqual(t, "ok", result.Database)
		assert.NotEmpty(t, result.ErrorMessage)
	})

	t.Run("authorizer unreachable", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		authCfg := *cfg
		authCfg.AuthMode = config.AuthModeAuthorizer
		authCfg.AuthzURL = "http://127.0.0.1:1"

		result := HealthCheck(ctx, &authCfg, db, nil)
		assert.False(t, result.Healthy())
		assert.Equal(t, "ok", result.Database)
		assert.Equal(t, "unreachable", result.Authorizer)
	})
}
