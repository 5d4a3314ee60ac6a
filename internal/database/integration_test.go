package database_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/localnerve/pcnodetree/internal/database"
	"github.com/localnerve/pcnodetree/internal/repository"
	"github.com/localnerve/pcnodetree/internal/services"
	"github.com/localnerve/pcnodetree/internal/testutil"
	"github.com/localnerve/pcnodetree/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap/zaptest"
)

// TestDatabases runs the node tree operations against real database servers
func TestDatabases(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	for _, dbType := range []string{"postgres", "mariadb"} {
		t.Run(dbType, func(t *testing.T) {
			container := testutil.StartDBContainer(t, dbType)
			t.Cleanup(func() { container.Terminate(t) })

			db, err := database.Connect(container.Config)
			require.NoError(t, err)
			t.Cleanup(func() { _ = database.Close(db) })
			require.NoError(t, database.AutoMigrate(db))

			ctx := context.Background()
			repo := repository.New(db)
			svc := services.NewNodeService(repo, container.Config.TreeFanoutLimit, zaptest.NewLogger(t))

			_, err = services.Seed(ctx, repo, services.AlphaPC, nil)
			require.NoError(t, err)

			t.Run("subtree", func(t *testing.T) {
				res, err := svc.ResolvePath(ctx, "AlphaPC")
				require.NoError(t, err)
				assert.Equal(t, 11, res.Node.PropertyCount())

				cpu := res.Node.Find("Processing", "CPU")
				require.NotNil(t, cpu)
				require.Len(t, cpu.Properties, 2)
				assert.Equal(t, "4", cpu.Properties[0].Value.String())
				assert.Equal(t, "2.41", cpu.Properties[1].Value.String())
			})

			t.Run("property", func(t *testing.T) {
				res, err := svc.ResolvePath(ctx, "AlphaPC/Storage/HDD/WriteSpeed")
				require.NoError(t, err)
				assert.Equal(t, "1.724752", res.Property.Value.String())
			})

			t.Run("duplicate root", func(t *testing.T) {
				_, err := svc.CreateNode(ctx, "AlphaPC", nil)
				assert.ErrorIs(t, err, types.ErrDuplicateName)
			})

			t.Run("names are case sensitive", func(t *testing.T) {
				lower, err := svc.CreateNode(ctx, "alphapc", nil)
				require.NoError(t, err)

				res, err := svc.ResolvePath(ctx, "alphapc")
				require.NoError(t, err)
				assert.Equal(t, lower.ID, res.Node.ID)
				assert.Empty(t, res.Node.Properties)

				_, err = svc.ResolvePath(ctx, "AlphaPC/processing")
				assert.ErrorIs(t, err, types.ErrPathSegmentNotFound)
				_, err = svc.ResolvePath(ctx, "AlphaPC/Storage/HDD/writespeed")
				assert.ErrorIs(t, err, types.ErrPathSegmentNotFound)
			})

			t.Run("trailing spaces do not match", func(t *testing.T) {
				_, err := svc.ResolvePath(ctx, "AlphaPC/Processing/CPU ")
				assert.ErrorIs(t, err, types.ErrPathSegmentNotFound)
				_, err = svc.ResolvePath(ctx, "AlphaPC ")
				assert.ErrorIs(t, err, types.ErrRootNodeNotFound)
			})

			t.Run("wide values", func(t *testing.T) {
				node, err := svc.CreateNode(ctx, "WidePC", nil)
				require.NoError(t, err)

				prec, err := svc.AddProperty(ctx, node.ID, "Prec", 1.23456789)
				require.NoError(t, err)
				assert.Equal(t, "1.23456789", prec.Value.String())

				big, err := svc.AddProperty(ctx, node.ID, "Big", 1e20)
				require.NoError(t, err)
				assert.Equal(t, "100000000000000000000", big.Value.String())

				// DECIMAL(65,30) holds 35 integer digits; postgres NUMERIC is unbounded
				_, err = svc.AddProperty(ctx, node.ID, "Huge", 1e40)
				if dbType == "postgres" {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, types.ErrValidation)
				}
			})

			t.Run("missing parent", func(t *testing.T) {
				missing := "00000000-0000-0000-0000-000000000000"
				_, err := svc.CreateNode(ctx, "Orphan", &missing)
				assert.ErrorIs(t, err, types.ErrParentNotFound)
			})

			t.Run("upsert keeps one row", func(t *testing.T) {
				root, err := svc.CreateNode(ctx, "UpsertPC", nil)
				require.NoError(t, err)

				var wg sync.WaitGroup
				for i := 1; i <= 5; i++ {
					wg.Add(1)
					go func(v float64) {
						defer wg.Done()
						prop, err := svc.AddProperty(ctx, root.ID, "K", v)
						if assert.NoError(t, err) {
							assert.Equal(t, fmt.Sprint(v), prop.Value.String(), "response reflects its own write")
						}
					}(float64(i))
				}
				wg.Wait()

				tree, err := svc.GetSubtree(ctx, root.ID)
				require.NoError(t, err)
				assert.Len(t, tree.Properties, 1)
			})
		})
	}
}
