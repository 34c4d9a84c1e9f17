package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edutax/edutax-backend/internal/data/repos"
	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/apierr"
	"github.com/edutax/edutax-backend/internal/platform/ctxutil"
	"github.com/edutax/edutax-backend/internal/platform/dbctx"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

type UserService interface {
	UpsertUser(ctx context.Context, profile types.UserProfile) (*types.User, error)
	GetUser(ctx context.Context, id string) (*types.User, error)
	// GetMe loads the caller attached to ctx by the auth middleware.
	GetMe(ctx context.Context) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (s *userService) UpsertUser(ctx context.Context, profile types.UserProfile) (*types.User, error) {
	profile.Subject = strings.TrimSpace(profile.Subject)
	if profile.Subject == "" {
		return nil, apierr.InvalidRequest("missing_subject", "Identity provider returned no subject")
	}
	u, err := s.userRepo.Upsert(dbctx.New(ctx), profile.ToUser())
	if err != nil {
		s.log.Error("UpsertUser failed", "error", err, "user_id", profile.Subject)
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*types.User, error) {
	u, err := s.userRepo.GetByID(dbctx.New(ctx), id)
	if err != nil {
		s.log.Error("GetUser failed", "error", err, "user_id", id)
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *userService) GetMe(ctx context.Context) (*types.User, error) {
	id := ctxutil.UserID(ctx)
	if id == "" {
		return nil, apierr.Unauthorized()
	}
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apierr.ErrUserNotFound
	}
	return u, nil
}
