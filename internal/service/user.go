package service

import (
	"context"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/pagination"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/repository"
	"fmt"
)

type UserService interface {
	GetAssets(ctx context.Context, userID string) ([]*model.UserAsset, error)
	ListUsers(ctx context.Context, q string, page int) (pagination.Page[*model.User], error)
	ToggleBan(ctx context.Context, userID string) (*model.User, error)
	ToggleAdmin(ctx context.Context, userID string) (*model.User, error)
	Purge(ctx context.Context, actor *model.User, userID string) error
}

type userServiceImpl struct {
	userRepo  repository.UserRepository
	assetRepo repository.AssetRepository
	hub       publisher
	pageSize  int
}

func NewUserService(
	userRepo repository.UserRepository,
	assetRepo repository.AssetRepository,
	hub *realtime.Hub,
	pageSize int,
) UserService {
	return &userServiceImpl{
		userRepo:  userRepo,
		assetRepo: assetRepo,
		hub:       hub,
		pageSize:  pageSize,
	}
}

func (s *userServiceImpl) GetAssets(ctx context.Context, userID string) ([]*model.UserAsset, error) {
	return s.assetRepo.ListByUser(ctx, userID)
}

func (s *userServiceImpl) ListUsers(ctx context.Context, q string, page int) (pagination.Page[*model.User], error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return pagination.Page[*model.User]{}, fmt.Errorf("list users: %w", err)
	}

	users = pagination.Filter(users, func(u *model.User) bool {
		return pagination.ContainsFold(u.DisplayName, q) || pagination.ContainsFold(u.Email, q)
	})
	return pagination.Paginate(users, page, s.pageSize), nil
}

func (s *userServiceImpl) ToggleBan(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.SetSuspended(ctx, userID, !user.IsSuspended); err != nil {
		return nil, fmt.Errorf("set suspended: %w", err)
	}
	user.IsSuspended = !user.IsSuspended

	publish(ctx, s.hub, realtime.CollectionUsers, realtime.OpUpdated, user.ID, user.ID, user)
	return user, nil
}

func (s *userServiceImpl) ToggleAdmin(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.SetAdmin(ctx, userID, !user.IsAdmin); err != nil {
		return nil, fmt.Errorf("set admin: %w", err)
	}
	user.IsAdmin = !user.IsAdmin

	publish(ctx, s.hub, realtime.CollectionUsers, realtime.OpUpdated, user.ID, user.ID, user)
	return user, nil
}

func (s *userServiceImpl) Purge(ctx context.Context, actor *model.User, userID string) error {
	if actor.ID == userID {
		return ErrSelfPurge
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionUsers, realtime.OpDeleted, userID, userID, nil)
	return nil
}
