package port

import (
	"context"

	"sam-annotator/internal/domain/entity"
)

// UserRepository интерфейс хранилища аннотаторов и их открытых сеансов
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние пользователя
	Save(ctx context.Context, user *entity.User) error

	// Delete забывает пользователя вместе с его сеансом
	Delete(ctx context.Context, userID int64) error
}
