package importer

import (
	"fmt"

	"momo-analysis/internal/models"
)

// PersistenceError сбой хранилища при сохранении одного сообщения (после повторной попытки)
type PersistenceError struct {
	Message models.RawMessage
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// BatchDecodeError пакет целиком не удалось превратить в список сообщений
type BatchDecodeError struct {
	Source string
	Err    error
}

func (e *BatchDecodeError) Error() string {
	return fmt.Sprintf("batch decode error (%s): %v", e.Source, e.Err)
}

func (e *BatchDecodeError) Unwrap() error {
	return e.Err
}
