package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"momo-analysis/internal/logger"
	"momo-analysis/internal/storage"
)

// Registry сопоставляет имя категории стабильному идентификатору типа транзакции.
// Создается один раз на процесс и разделяется всеми батчами.
type Registry struct {
	store storage.TypeRepository

	mu    sync.RWMutex
	cache map[string]int64

	group singleflight.Group
}

func New(store storage.TypeRepository) *Registry {
	return &Registry{
		store: store,
		cache: make(map[string]int64),
	}
}

// Description описание, с которым создается новый тип
func Description(name string) string {
	return "Transaction type for " + name
}

// Resolve возвращает id типа, создавая его при первом обращении.
// Параллельные вызовы с одним новым именем приводят к одной вставке.
func (r *Registry) Resolve(ctx context.Context, name string) (int64, error) {
	if id, ok := r.cached(name); ok {
		return id, nil
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		return r.lookupOrCreate(ctx, name)
	})
	if err != nil {
		return 0, err
	}

	id := v.(int64)
	r.mu.Lock()
	r.cache[name] = id
	r.mu.Unlock()

	return id, nil
}

func (r *Registry) cached(name string) (int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.cache[name]
	return id, ok
}

func (r *Registry) lookupOrCreate(ctx context.Context, name string) (int64, error) {
	existing, err := r.store.GetTypeByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to lookup transaction type %q: %w", name, err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	created, err := r.store.CreateType(ctx, name, Description(name))
	if err == nil {
		log.Info().Str("type", name).Int64("type_id", created.ID).Msg("Registered transaction type")
		logger.LogEvent(logger.EventTypeRegistered, "pipeline", "registry", map[string]interface{}{
			"type_name": name,
			"type_id":   created.ID,
		})
		return created.ID, nil
	}

	// Тип создан другим процессом между поиском и вставкой: перечитываем один раз
	if errors.Is(err, storage.ErrTypeExists) {
		existing, err = r.store.GetTypeByName(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("failed to refetch transaction type %q: %w", name, err)
		}
		if existing != nil {
			return existing.ID, nil
		}
		return 0, fmt.Errorf("transaction type %q reported as existing but not found", name)
	}

	return 0, fmt.Errorf("failed to create transaction type %q: %w", name, err)
}
