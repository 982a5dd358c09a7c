// Package users contains the credential record stores: a PostgreSQL
// implementation and an in-memory one.
package users

import (
	"context"

	"github.com/dmitrijs2005/credkeeper/internal/server/models"
)

// Repository is the credential store used by the users service.
//
// GetUserByEmail returns common.ErrorNotFound when no record matches. Email
// is not unique; when several records share it the oldest one is returned.
// Create fills ID and CreatedAt on the given record and returns it.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
