package auth

import (
	"context"

	autherrors "github.com/YugandharPise/SME-HR/internal/auth/errors"
	"github.com/YugandharPise/SME-HR/internal/store"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*store.User, error)
	GetByID(ctx context.Context, id int64) (*store.User, error)
}

type repository struct {
	store store.Store
}

func NewRepository(st store.Store) Repository {
	return &repository{store: st}
}

// GetByEmail matches the email exactly; no case folding or trimming.
func (r *repository) GetByEmail(ctx context.Context, email string) (*store.User, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := snap.UserByEmail(email)
	if !ok {
		return nil, autherrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*store.User, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := snap.UserByID(id)
	if !ok {
		return nil, autherrors.ErrUserNotFound
	}
	return &u, nil
}
