package repository

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristack/lawoffice-backend/internal/domain/client"
	domainerrors "github.com/juristack/lawoffice-backend/internal/domain/errors"
	"github.com/juristack/lawoffice-backend/internal/domain/legalcase"
	"github.com/juristack/lawoffice-backend/internal/testutil/containers"
)

// setupTestDB starts a postgres container and applies every up migration.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pg, err := containers.NewPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	pool, err := pgxpool.New(ctx, pg.ConnectionString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applyMigrations(t, pool)
	return pool
}

func applyMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	dir := filepath.Join("..", "..", "..", "migrations")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var ups []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			ups = append(ups, e.Name())
		}
	}
	sort.Strings(ups)

	for _, name := range ups {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		_, err = pool.Exec(context.Background(), string(sql))
		require.NoError(t, err, "applying %s", name)
	}
}

func storedClient(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.New(client.Input{
		Name:       "João da Silva",
		Kind:       "individual",
		TaxID:      "111.444.777-35",
		Email:      "joao.silva@example.com.br",
		Phone:      "(11) 98765-4321",
		City:       "São Paulo",
		State:      "SP",
		PostalCode: "01310-100",
		Active:     true,
	})
	require.NoError(t, err)
	return c
}

func TestClientRepositoryRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewClientRepository(pool)
	ctx := context.Background()

	c := storedClient(t)
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)

	// Value objects survive the round trip in canonical form.
	assert.Equal(t, "111.444.777-35", got.TaxID.String())
	assert.Equal(t, "(11) 98765-4321", got.Phone.String())
	assert.Equal(t, "01310-100", got.Address.PostalCode.String())
	assert.Equal(t, c.Kind, got.Kind)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrClientNotFound)
}

func TestClientRepositoryExistsWithValue(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewClientRepository(pool)
	ctx := context.Background()

	c := storedClient(t)
	require.NoError(t, repo.Create(ctx, c))

	// Stored as bare digits, matched as bare digits.
	exists, err := repo.ExistsWithValue(ctx, "tax_id", "11144477735", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// The record itself is excluded.
	exists, err = repo.ExistsWithValue(ctx, "tax_id", "11144477735", c.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsWithValue(ctx, "email", "nobody@example.com.br", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.ExistsWithValue(ctx, "notes", "x", uuid.Nil)
	assert.Error(t, err)
}

func TestCaseRepositoryRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	clientRepo := NewClientRepository(pool)
	caseRepo := NewCaseRepository(pool)
	ctx := context.Background()

	c := storedClient(t)
	require.NoError(t, clientRepo.Create(ctx, c))

	kase, err := legalcase.New(legalcase.Input{
		Number:      "0001234-56.2024.8.26.0100",
		ClientID:    c.ID,
		Area:        "civil",
		Subject:     "Ação de cobrança",
		ClaimAmount: "15000.00",
		Active:      true,
	})
	require.NoError(t, err)
	require.NoError(t, caseRepo.Create(ctx, kase))

	got, err := caseRepo.GetByID(ctx, kase.ID)
	require.NoError(t, err)
	assert.Equal(t, "15000.00", got.ClaimAmount.String())
	assert.Equal(t, legalcase.StatusActive, got.Status)

	byClient, err := caseRepo.ListByClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 1)

	exists, err := caseRepo.ExistsWithValue(ctx, "number", kase.Number, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	now := time.Now().UTC()
	deadline, err := legalcase.NewDeadline(legalcase.DeadlineInput{
		CaseID:      kase.ID,
		Description: "Apresentar contestação",
		DueAt:       now.Add(72 * time.Hour),
	}, now)
	require.NoError(t, err)
	require.NoError(t, caseRepo.AddDeadline(ctx, deadline))

	update, err := legalcase.NewUpdate(legalcase.UpdateInput{
		CaseID:      kase.ID,
		Kind:        "petition",
		Date:        now.Add(-time.Hour),
		Description: "Petição inicial protocolada",
	}, now)
	require.NoError(t, err)
	require.NoError(t, caseRepo.AddUpdate(ctx, update))
}
