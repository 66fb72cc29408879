package newsletter

import (
	"context"

	"github.com/c3pio89/Board/internal/model"
)

// Публикация рассылки на этом уровне и есть событие отправки,
// транспорт до подписчиков — внешний
type NewsletterStorage interface {
	CreateNewsletter(ctx context.Context, title, text string) (*model.Newsletter, error)
}
