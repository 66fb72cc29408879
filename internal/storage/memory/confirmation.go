package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/c3pio89/Board/internal/confirmation"
	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/permission"
)

type ConfirmationMemoryStorage struct {
	mu    sync.Mutex
	codes map[uint]*model.ConfirmationCode // по userID, строго одна запись на пользователя
	perm  permission.Checker
}

func NewConfirmationMemoryStorage(perm permission.Checker) *ConfirmationMemoryStorage {
	return &ConfirmationMemoryStorage{
		codes: make(map[uint]*model.ConfirmationCode),
		perm:  perm,
	}
}

// CreateForUser выпускает код при регистрации; повторный вызов для того же
// пользователя возвращает уже существующую запись
func (s *ConfirmationMemoryStorage) CreateForUser(userID uint) *model.ConfirmationCode {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, exists := s.codes[userID]
	if exists {
		return code
	}

	code = &model.ConfirmationCode{
		UserID:      fmt.Sprint(userID),
		UserCode:    confirmation.GenerateCode(),
		CodeEntered: "",
		UserStatus:  false,
	}
	s.codes[userID] = code
	return code
}

func (s *ConfirmationMemoryStorage) findOwnCode(userID uint) (*model.ConfirmationCode, error) {
	code, exists := s.codes[userID]
	if !exists {
		return nil, fmt.Errorf("confirmation code for user %d: %w", userID, model.ErrNotFound)
	}
	return code, nil
}

// SubmitCode сохраняет введенный код только в собственной записи
// действующего пользователя. user_status здесь не меняется.
func (s *ConfirmationMemoryStorage) SubmitCode(ctx context.Context, entered string) (*model.ConfirmationCode, error) {
	userID, err := permission.Require(ctx, s.perm, permission.ConfirmAccount)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.findOwnCode(userID)
	if err != nil {
		return nil, err
	}

	code.CodeEntered = entered
	return code, nil
}

func (s *ConfirmationMemoryStorage) GetCode(ctx context.Context) (*model.ConfirmationCode, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findOwnCode(userID)
}

// MarkVerified выставляет user_status, только если введенный код совпал
func (s *ConfirmationMemoryStorage) MarkVerified(ctx context.Context) (*model.ConfirmationCode, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.findOwnCode(userID)
	if err != nil {
		return nil, err
	}

	if !code.Matches() {
		return nil, model.ErrCodeMismatch
	}

	code.UserStatus = true
	return code, nil
}
