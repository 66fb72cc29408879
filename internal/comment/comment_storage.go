package comment

import (
	"context"
	"time"

	"github.com/c3pio89/Board/internal/model"
)

// PageSize — размер страницы списков откликов
const PageSize = 4

// Filter — необязательные условия очереди модерации, комбинируются по AND
type Filter struct {
	CreatedAfter *time.Time // строго позже
	TextContains string     // подстрока без учета регистра
}

type CommentStorage interface {
	CreateComment(ctx context.Context, newsID, text string) (*model.Comment, error)
	SearchComments(ctx context.Context, filter Filter, page int) (*model.CommentPage, error)
	AcceptComment(ctx context.Context, id string) (*model.CommentConfirmation, error)
	DeleteCommentById(ctx context.Context, id string) (*model.CommentConfirmation, error)
	ListAcceptedComments(ctx context.Context, newsID string, page int) (*model.CommentPage, error)
}
