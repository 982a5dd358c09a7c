package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps records in process memory. Identity references are
// random UUIDs. Records are kept in insertion order, which makes the
// "oldest record wins" rule of GetUserByEmail hold for duplicates.
type MemoryRepository struct {
	mu    sync.RWMutex
	users []models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user.ID = uuid.NewString()
	user.CreatedAt = r.now().UTC()

	r.mu.Lock()
	r.users = append(r.users, *user)
	r.mu.Unlock()

	return user, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}
