package service

import (
	"context"
	"time"

	"ai-journal-be/internal/dto"
	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/repository/unitofwork"
)

type IUserService interface {
	// Touch upserts the caller's profile from verified token claims; called
	// on every authenticated request so last_seen_at tracks activity.
	Touch(ctx context.Context, uid, email, fullName string, avatarURL *string) error
	Me(ctx context.Context, uid string) (*dto.UserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (c *userService) Touch(ctx context.Context, uid, email, fullName string, avatarURL *string) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	now := time.Now().UTC()
	user := entity.User{
		Uid:        uid,
		Email:      email,
		FullName:   fullName,
		AvatarURL:  avatarURL,
		LastSeenAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return uow.UserRepository().Upsert(ctx, &user)
}

func (c *userService) Me(ctx context.Context, uid string) (*dto.UserResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByUid(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &dto.UserResponse{
		Uid:        user.Uid,
		Email:      user.Email,
		FullName:   user.FullName,
		AvatarURL:  user.AvatarURL,
		LastSeenAt: user.LastSeenAt,
	}, nil
}
