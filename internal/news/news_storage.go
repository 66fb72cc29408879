package news

import (
	"context"

	"github.com/c3pio89/Board/internal/model"
)

// PageSize — размер страницы списка новостей
const PageSize = 10

type NewsStorage interface {
	CreateNews(ctx context.Context, category, title, text, upload string) (*model.News, error)
	GetNewsById(id string) (*model.News, error)
	ListNews(page int) (*model.NewsPage, error)
	UpdateNews(ctx context.Context, id, category, title, text, upload string) (*model.News, error)
	DeleteNewsById(ctx context.Context, id string) error
	// GetAuthorByUserId возвращает профиль автора пользователя,
	// model.ErrNotFound — если пользователь еще ничего не публиковал
	GetAuthorByUserId(userID uint) (*model.Author, error)
}
