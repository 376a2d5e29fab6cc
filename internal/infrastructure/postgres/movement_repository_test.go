package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pactra/internal/domain/entity"
	"github.com/jhoicas/inventario-pactra/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-pactra/pkg/config"
)

// Requiere una base desechable: TEST_DATABASE_URL=postgres://... go test ./...
func TestMovementRepo_Integracion(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))

	repo := postgres.NewMovementRepository(pool)
	_, err = repo.BulkInsert(ctx, nil, true)
	require.NoError(t, err)

	m := entity.Movement{
		Type:          entity.NewMovementType(entity.MovementExit),
		Date:          "2024-02-01",
		Model:         "KX",
		Container:     "C-1",
		Pieces:        40,
		DamagedPieces: 2,
		Damaged:       true,
	}
	require.NoError(t, repo.Create(ctx, &m))
	require.NotZero(t, m.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, m, list[0])

	require.NoError(t, repo.Delete(ctx, m.ID+1000))
	containers, err := repo.DistinctContainers(ctx, "KX")
	require.NoError(t, err)
	assert.Equal(t, []string{"C-1"}, containers)

	n, err := repo.BulkInsert(ctx, []entity.Movement{m}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Greater(t, list[0].ID, m.ID, "el reemplazo no reutiliza ids")
}
