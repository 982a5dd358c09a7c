// Package users implements the credential flows: verifying an email and
// password against the stored record, issuing access tokens, and
// registering new records with a salted password hash.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/server/auth"
	"github.com/dmitrijs2005/credkeeper/internal/server/models"
	usersrepo "github.com/dmitrijs2005/credkeeper/internal/server/repositories/users"
)

// LoginResult is a verified record together with the token issued for it.
type LoginResult struct {
	Token string
	User  *models.User
}

// Service holds no per-request state; one instance serves all requests.
type Service struct {
	repo      usersrepo.Repository
	hasher    auth.Hasher
	jwtSecret []byte
	logger    logging.Logger

	// dummyHash is compared against when the email is unknown, so that a
	// missing account costs about as much time as a wrong password.
	dummyHash string
}

func NewService(repo usersrepo.Repository, hasher auth.Hasher, secretKey string, logger logging.Logger) *Service {
	s := &Service{
		repo:      repo,
		hasher:    hasher,
		jwtSecret: []byte(secretKey),
		logger:    logger.With("module", "users"),
	}
	if pw, err := common.MakeRandHexString(16); err == nil {
		s.dummyHash, _ = hasher.Hash(pw)
	}
	return s
}

// Verify checks password against the record stored for email.
//
// Unknown email and wrong password both yield common.ErrorInvalidCredentials.
// Store failures yield a *common.InternalError carrying the store's message.
// On success the whole stored record is returned, hash included.
func (s *Service) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnCompare(password)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.NewInternalError(err)
	}

	ok, err := s.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		s.logger.Warn(ctx, "stored password hash is unusable", "user_id", user.ID, "error", err.Error())
		return nil, common.ErrorInvalidCredentials
	}
	if !ok {
		return nil, common.ErrorInvalidCredentials
	}

	return user, nil
}

func (s *Service) burnCompare(password string) {
	if s.dummyHash == "" {
		return
	}
	_, _ = s.hasher.Compare(password, s.dummyHash)
}

// IssueToken signs an access token for userID.
func (s *Service) IssueToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret)
	if err != nil {
		return "", common.NewInternalError(err)
	}
	return token, nil
}

// Login verifies the credentials and issues a token for the matched record.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Register hashes password with a fresh salt and stores a new record.
// Existing records with the same email are not checked for.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	case email == "":
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	case password == "":
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return nil, common.NewInternalError(err)
	}

	user, err := s.repo.Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, common.NewInternalError(err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// UserIDFromToken returns the identity reference embedded in token.
func (s *Service) UserIDFromToken(token string) (string, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return id, nil
}
