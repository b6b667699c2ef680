package auth

import (
	"context"
	"errors"

	userDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetActiveByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ? AND is_active = ?", email, true).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Upsert creates the user or refreshes its name and password hash, keyed on email.
func (r *Repository) Upsert(ctx context.Context, u *userDatamodel.User) error {
	var existing userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", u.Email).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(u).Error
	case err != nil:
		return err
	}
	u.ID = existing.ID
	u.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(u).Error
}
