package storage

import (
	"context"
	"sync"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище аннотаторов
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]*entity.User),
	}
}

// Get возвращает пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.RLock()
	user, exists := r.users[userID]
	r.mu.RUnlock()

	if exists {
		return user, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Пока ждали блокировку, пользователя мог создать другой вызов.
	if user, exists := r.users[userID]; exists {
		return user, nil
	}
	newUser := entity.NewUser(userID, chatID)
	r.users[userID] = newUser

	return newUser, nil
}

// Save сохраняет состояние пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	r.users[user.ID] = user
	r.mu.Unlock()

	return nil
}

// Delete удаляет пользователя и его сеанс
func (r *MemoryUserRepository) Delete(ctx context.Context, userID int64) error {
	r.mu.Lock()
	delete(r.users, userID)
	r.mu.Unlock()

	return nil
}

// ActiveSessions число пользователей с открытым сеансом разметки
func (r *MemoryUserRepository) ActiveSessions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, u := range r.users {
		if u.Session != nil {
			n++
		}
	}
	return n
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
