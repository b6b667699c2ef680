package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	userDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/user"
)

type Repository interface {
	// GetByID returns nil, nil when the user does not exist.
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, internal.NewStoreError("failed to load user", err)
	}
	if row == nil {
		return nil, internal.NewNotFoundError(fmt.Sprintf("user %s not found", id), internal.ErrCodeUserNotFound)
	}
	return FromDataModel(row), nil
}
