package service

import (
	"context"
	"fmt"

	"github.com/huddleup-labs/huddleup-api/internal/domain"
	"github.com/huddleup-labs/huddleup-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	UpsertByWallet(ctx context.Context, wallet string, method domain.ConnectionMethod, profile domain.UserProfile) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByWallet(ctx context.Context, wallet string) (domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetUserByWallet(ctx context.Context, wallet string) (domain.User, error) {
	user, err := s.repo.FindByWallet(ctx, wallet)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByWallet -> %w", err)
	}

	return user, nil
}
