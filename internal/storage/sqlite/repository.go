package sqlite

import (
	"momo-analysis/internal/storage"
)

// Repository реализует storage.Repository поверх SQLite
type Repository struct {
	*SQLiteStorage
}

// NewRepository создает новый репозиторий SQLite
func NewRepository(s *SQLiteStorage) storage.Repository {
	return &Repository{SQLiteStorage: s}
}
