package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/c3pio89/Board/internal/auth"
	"github.com/c3pio89/Board/internal/mocks"
	"github.com/c3pio89/Board/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserContext(userID uint) context.Context {
	ctx := context.Background()
	return auth.WithUserID(ctx, userID)
}

func TestNewsMemoryStorage_CreateNews(t *testing.T) {
	storage := NewNewsMemoryStorage(mocks.NewAllowAllPermissionChecker())

	t.Run("Successful news creation", func(t *testing.T) {
		ctx := createUserContext(1)

		newsItem, err := storage.CreateNews(ctx, "Tanks", "Ищем танка", "Подробности", "")
		require.NoError(t, err)
		assert.NotEmpty(t, newsItem.ID)
		assert.NotEmpty(t, newsItem.AuthorID)
		assert.Equal(t, "Tanks", newsItem.Category)
		assert.False(t, newsItem.CreatedAt.IsZero())
	})

	t.Run("Validation error on empty title", func(t *testing.T) {
		ctx := createUserContext(1)

		_, err := storage.CreateNews(ctx, "Tanks", "", "текст", "")
		var validationErr *model.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "title", validationErr.Field)
	})

	t.Run("Unknown category rejected", func(t *testing.T) {
		ctx := createUserContext(1)

		_, err := storage.CreateNews(ctx, "Necromancers", "Заголовок", "текст", "")
		assert.True(t, errors.Is(err, model.ErrUnknownCategory))
	})

	t.Run("Unauthorized without context user", func(t *testing.T) {
		_, err := storage.CreateNews(context.Background(), "Tanks", "Заголовок", "текст", "")
		assert.True(t, errors.Is(err, model.ErrUnauthorized))
	})
}

func TestNewsMemoryStorage_AuthorGetOrCreate(t *testing.T) {
	t.Run("Repeated creation reuses the author", func(t *testing.T) {
		storage := NewNewsMemoryStorage(mocks.NewAllowAllPermissionChecker())
		ctx := createUserContext(7)

		first, err := storage.CreateNews(ctx, "Tanks", "Первое", "текст", "")
		require.NoError(t, err)
		second, err := storage.CreateNews(ctx, "Healers", "Второе", "текст", "")
		require.NoError(t, err)

		assert.Equal(t, first.AuthorID, second.AuthorID)
	})

	t.Run("Concurrent first posts never create two authors", func(t *testing.T) {
		storage := NewNewsMemoryStorage(mocks.NewAllowAllPermissionChecker())
		ctx := createUserContext(42)

		const goroutines = 16
		results := make([]*model.News, goroutines)
		errs := make([]error, goroutines)

		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = storage.CreateNews(ctx, "Tanks", "Гонка", "текст", "")
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		authorID := results[0].AuthorID
		for _, r := range results {
			assert.Equal(t, authorID, r.AuthorID)
		}

		author, err := storage.GetAuthorByUserId(42)
		require.NoError(t, err)
		assert.Equal(t, authorID, author.ID)
	})
}

func TestNewsMemoryStorage_GetNewsById(t *testing.T) {
	storage := NewNewsMemoryStorage(mocks.NewAllowAllPermissionChecker())
	ctx := createUserContext(1)

	created, err := storage.CreateNews(ctx, "Tanks", "Заголовок", "текст", "")
	require.NoError(t, err)

	t.Run("Existing news", func(t *testing.T) {
		newsItem, err := storage.GetNewsById(created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, newsItem.ID)
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := storage.GetNewsById("999")
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})
}

func TestNewsMemoryStorage_UpdateAndDelete(t *testing.T) {
	t.Run("Author updates own news", func(t *testing.T) {
		storage := NewNewsMemoryStorage(mocks.NewAllowAllPermissionChecker())
		ctx := createUserContext(1)

		created, err := storage.CreateNews(ctx, "Tanks", "Старый", "текст", "")
		require.NoError(t, err)

		updated, err := storage.UpdateNews(ctx, created.ID, "Healers", "Новый", "новый текст", "")
		require.NoError(t, err)
		assert.Equal(t, "Новый", updated.Title)
		assert.Equal(t, "Healers", updated.Category)
	})

	t.Run("Forbidden for another user", func(t *testing.T) {
		storage := NewNewsMemoryStorage(mocks.NewAllowAllPermissionChecker())

		created, err := storage.CreateNews(createUserContext(1), "Tanks", "Заголовок", "текст", "")
		require.NoError(t, err)

		// второй пользователь тоже автор, но не владелец
		_, err = storage.CreateNews(createUserContext(2), "Tanks", "Чужое", "текст", "")
		require.NoError(t, err)

		_, err = storage.UpdateNews(createUserContext(2), created.ID, "Tanks", "Взлом", "текст", "")
		assert.True(t, errors.Is(err, model.ErrPermissionDenied))

		err = storage.DeleteNewsById(createUserContext(2), created.ID)
		assert.True(t, errors.Is(err, model.ErrPermissionDenied))
	})

	t.Run("Delete removes news", func(t *testing.T) {
		storage := NewNewsMemoryStorage(mocks.NewAllowAllPermissionChecker())
		ctx := createUserContext(1)

		created, err := storage.CreateNews(ctx, "Tanks", "Заголовок", "текст", "")
		require.NoError(t, err)

		err = storage.DeleteNewsById(ctx, created.ID)
		require.NoError(t, err)

		_, err = storage.GetNewsById(created.ID)
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})
}

func TestNewsMemoryStorage_ListNews(t *testing.T) {
	storage := NewNewsMemoryStorage(mocks.NewAllowAllPermissionChecker())
	ctx := createUserContext(1)

	var lastID string
	for i := 0; i < 12; i++ {
		newsItem, err := storage.CreateNews(ctx, "Tanks", "Объявление", "текст", "")
		require.NoError(t, err)
		lastID = newsItem.ID
	}

	t.Run("First page is full and newest first", func(t *testing.T) {
		page, err := storage.ListNews(1)
		require.NoError(t, err)
		assert.Len(t, page.Items, 10)
		assert.True(t, page.HasMore)
		assert.Equal(t, lastID, page.Items[0].ID)
	})

	t.Run("Second page holds the remainder", func(t *testing.T) {
		page, err := storage.ListNews(2)
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.False(t, page.HasMore)
	})

	t.Run("Page past the end is empty", func(t *testing.T) {
		page, err := storage.ListNews(5)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasMore)
	})
}
