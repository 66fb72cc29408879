package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/c3pio89/Board/internal/mocks"
	"github.com/c3pio89/Board/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsletterMemoryStorage_CreateNewsletter(t *testing.T) {
	t.Run("Successful newsletter creation", func(t *testing.T) {
		storage := NewNewsletterMemoryStorage(mocks.NewAllowAllPermissionChecker())

		item, err := storage.CreateNewsletter(createUserContext(1), "Новости недели", "Содержимое рассылки")
		require.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, "1", item.UserID)
		assert.False(t, item.CreatedAt.IsZero())
	})

	t.Run("Empty title", func(t *testing.T) {
		storage := NewNewsletterMemoryStorage(mocks.NewAllowAllPermissionChecker())

		_, err := storage.CreateNewsletter(createUserContext(1), "", "текст")
		var validationErr *model.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "title", validationErr.Field)
	})

	t.Run("Empty text", func(t *testing.T) {
		storage := NewNewsletterMemoryStorage(mocks.NewAllowAllPermissionChecker())

		_, err := storage.CreateNewsletter(createUserContext(1), "Заголовок", "")
		var validationErr *model.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "text", validationErr.Field)
	})

	t.Run("Denied without permission", func(t *testing.T) {
		storage := NewNewsletterMemoryStorage(mocks.NewMockPermissionChecker())

		_, err := storage.CreateNewsletter(createUserContext(1), "Заголовок", "текст")
		assert.True(t, errors.Is(err, model.ErrPermissionDenied))
	})

	t.Run("Unauthorized without context user", func(t *testing.T) {
		storage := NewNewsletterMemoryStorage(mocks.NewAllowAllPermissionChecker())

		_, err := storage.CreateNewsletter(context.Background(), "Заголовок", "текст")
		assert.True(t, errors.Is(err, model.ErrUnauthorized))
	})
}
