package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Name: "Alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	require.NoError(t, err, "id must be a uuid")
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
}

func TestMemoryRepository_NotFound(t *testing.T) {
	_, err := NewMemoryRepository().GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_DuplicateEmailsOldestWins(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "1"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "2"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := repo.GetUserByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	got, err := repo.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	got.PasswordHash = "tampered"

	again, err := repo.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "h", again.PasswordHash)
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Create(ctx, &models.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.GetUserByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, context.Canceled)
}
