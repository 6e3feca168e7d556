package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/huddleup-labs/huddleup-api/internal/domain"
	"github.com/huddleup-labs/huddleup-api/internal/repository/dao"
)

var (
	ErrUserNotFound = dao.ErrUserNotFound
)

type UserDAO interface {
	Upsert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id string) (dao.User, error)
	FindByWallet(ctx context.Context, wallet string) (dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// UpsertByWallet creates the user on first sight of the wallet address and
// refreshes lastLoginAt and profile fields on every later call.
func (r *UserRepository) UpsertByWallet(ctx context.Context, wallet string, method domain.ConnectionMethod, profile domain.UserProfile) (domain.User, error) {
	upserted, err := r.dao.Upsert(ctx, dao.User{
		ID:               uuid.NewString(),
		WalletAddress:    strings.ToLower(wallet),
		ConnectionMethod: string(method),
		Name:             profile.Name,
		Email:            profile.Email,
		ProfileImage:     profile.ProfileImage,
		LastLoginAt:      time.Now().UTC(),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return r.daoToDomain(upserted), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByWallet(ctx context.Context, wallet string) (domain.User, error) {
	found, err := r.dao.FindByWallet(ctx, strings.ToLower(wallet))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByWallet -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:               u.ID,
		WalletAddress:    u.WalletAddress,
		ConnectionMethod: domain.ConnectionMethod(u.ConnectionMethod),
		Name:             u.Name,
		Email:            u.Email,
		ProfileImage:     u.ProfileImage,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		LastLoginAt:      u.LastLoginAt,
	}
}
