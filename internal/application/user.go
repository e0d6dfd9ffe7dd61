package app

import (
	"context"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// BeginAnnotation ждёт изображение для разметки. Открытый сеанс сохраняется до прихода нового.
func (s *UserService) BeginAnnotation(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingImage)
}

// Attach открывает пользователю сеанс разметки.
func (s *UserService) Attach(ctx context.Context, user *entity.User, session *entity.AnnotationSession) error {
	user.Attach(session)
	return s.repo.Save(ctx, user)
}

// Cancel закрывает сеанс без сохранения и возвращает пользователя в меню.
func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.Detach()
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Forget удаляет пользователя вместе с сеансом.
func (s *UserService) Forget(ctx context.Context, userID int64) error {
	return s.repo.Delete(ctx, userID)
}
