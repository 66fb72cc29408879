package validation

import "github.com/c3pio89/Board/internal/model"

// NotEmpty проверяет обязательное текстовое поле до сохранения
func NotEmpty(field, value string) error {
	if value == "" {
		return model.NewValidationError(field)
	}
	return nil
}
