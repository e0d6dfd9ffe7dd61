package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

const defaultRedisPrefix = "sam-annotator:annotation:"

// RedisRepository хранит файлы разметки в Redis: один JSON на изображение.
type RedisRepository struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption настройка RedisRepository.
type RedisOption func(*RedisRepository)

// WithTTL задаёт время жизни записи. 0 — без срока.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *RedisRepository) {
		r.ttl = ttl
	}
}

// WithPrefix задаёт префикс ключей.
func WithPrefix(prefix string) RedisOption {
	return func(r *RedisRepository) {
		r.prefix = prefix
	}
}

// NewRedisRepository подключается к Redis по адресу.
func NewRedisRepository(addr, password string, db int, opts ...RedisOption) *RedisRepository {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisRepositoryFromClient(client, opts...)
}

// NewRedisRepositoryFromClient создаёт хранилище поверх готового клиента.
func NewRedisRepositoryFromClient(client *backend.Client, opts ...RedisOption) *RedisRepository {
	r := &RedisRepository{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key ключ записи изображения; совпадает с именем файла разметки.
func (r *RedisRepository) Key(imagePath string) string {
	return r.prefix + AnnotationFileName(imagePath)
}

// Load читает разметку изображения.
func (r *RedisRepository) Load(ctx context.Context, imagePath string) (*entity.AnnotationDocument, error) {
	data, err := r.client.Get(ctx, r.Key(imagePath)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, entity.ErrAnnotationNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return DecodeAnnotation(data)
}

// Save записывает разметку изображения.
func (r *RedisRepository) Save(ctx context.Context, doc *entity.AnnotationDocument) error {
	data, err := EncodeAnnotation(doc)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.Key(doc.ImagePath), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Ping проверяет соединение.
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close закрывает клиента Redis.
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Проверка реализации интерфейса
var _ port.AnnotationRepository = (*RedisRepository)(nil)
