package postgres

import (
	"context"
	"fmt"

	"github.com/c3pio89/Board/internal/auth"
	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/permission"
	"github.com/c3pio89/Board/models"
	"github.com/jinzhu/gorm"
)

type ConfirmationPostgresStorage struct {
	perm permission.Checker
}

func NewConfirmationPostgresStorage(perm permission.Checker) *ConfirmationPostgresStorage {
	return &ConfirmationPostgresStorage{perm: perm}
}

func toModelConfirmationCode(c *models.ConfirmationCode) *model.ConfirmationCode {
	return &model.ConfirmationCode{
		UserID:      fmt.Sprint(c.UserID),
		UserCode:    c.UserCode,
		CodeEntered: c.CodeEntered,
		UserStatus:  c.UserStatus,
	}
}

func (s *ConfirmationPostgresStorage) findOwnCode(userID uint) (*models.ConfirmationCode, error) {
	var code models.ConfirmationCode
	err := DB.Where("user_id = ?", userID).First(&code).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("confirmation code for user %d: %w", userID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get confirmation code: %w", err)
	}
	return &code, nil
}

// SubmitCode сохраняет введенный код только в собственной записи
// действующего пользователя. user_status здесь не меняется.
func (s *ConfirmationPostgresStorage) SubmitCode(ctx context.Context, entered string) (*model.ConfirmationCode, error) {
	userID, err := permission.Require(ctx, s.perm, permission.ConfirmAccount)
	if err != nil {
		return nil, err
	}

	code, err := s.findOwnCode(userID)
	if err != nil {
		return nil, err
	}

	code.CodeEntered = entered
	err = DB.Save(code).Error
	if err != nil {
		return nil, fmt.Errorf("could not save entered code: %w", err)
	}

	return toModelConfirmationCode(code), nil
}

func (s *ConfirmationPostgresStorage) GetCode(ctx context.Context) (*model.ConfirmationCode, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}

	code, err := s.findOwnCode(userID)
	if err != nil {
		return nil, err
	}

	return toModelConfirmationCode(code), nil
}

// MarkVerified выставляет user_status, только если введенный код совпал
func (s *ConfirmationPostgresStorage) MarkVerified(ctx context.Context) (*model.ConfirmationCode, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}

	code, err := s.findOwnCode(userID)
	if err != nil {
		return nil, err
	}

	result := toModelConfirmationCode(code)
	if !result.Matches() {
		return nil, model.ErrCodeMismatch
	}

	code.UserStatus = true
	err = DB.Save(code).Error
	if err != nil {
		return nil, fmt.Errorf("could not mark code verified: %w", err)
	}

	result.UserStatus = true
	return result, nil
}
