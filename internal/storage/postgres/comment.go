package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/c3pio89/Board/internal/comment"
	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/permission"
	"github.com/c3pio89/Board/models"
	"github.com/jinzhu/gorm"
)

const (
	acceptMessage = "Вы успешно приняли отклик на свое объявление"
	deleteMessage = "Вы успешно удалили отклик на свое объявление"
)

type CommentPostgresStorage struct {
	perm permission.Checker
}

func NewCommentPostgresStorage(perm permission.Checker) *CommentPostgresStorage {
	return &CommentPostgresStorage{perm: perm}
}

func toModelComment(c *models.Comment) *model.Comment {
	return &model.Comment{
		ID:        fmt.Sprint(c.ID),
		NewsID:    fmt.Sprint(c.NewsID),
		UserID:    fmt.Sprint(c.UserID),
		Text:      c.Text,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, newsID, text string) (*model.Comment, error) {
	userID, err := permission.Require(ctx, s.perm, permission.AddComment)
	if err != nil {
		return nil, err
	}

	var newsRow models.News
	err = DB.First(&newsRow, newsID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("news with id %s: %w", newsID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get news by id: %w", err)
	}

	commentRow := &models.Comment{
		NewsID: newsRow.ID,
		UserID: userID,
		Text:   text,
		Status: false,
	}

	err = DB.Create(commentRow).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	return toModelComment(commentRow), nil
}

// SearchComments — очередь модерации автора: только отклики на его
// собственные новости, отсекается на уровне запроса
func (s *CommentPostgresStorage) SearchComments(ctx context.Context, filter comment.Filter, page int) (*model.CommentPage, error) {
	userID, err := permission.Require(ctx, s.perm, permission.AddComment, permission.AddPost)
	if err != nil {
		return nil, err
	}

	var author models.Author
	err = DB.Where("user_id = ?", userID).First(&author).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("author profile for user %d: %w", userID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not look up author: %w", err)
	}

	if page < 1 {
		page = 1
	}

	query := DB.Where("news_id IN (SELECT id FROM news WHERE author_id = ?)", author.ID)
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.TextContains != "" {
		query = query.Where("LOWER(text) LIKE ?", "%"+strings.ToLower(filter.TextContains)+"%")
	}

	var rows []models.Comment
	err = query.Order("created_at desc, id desc").
		Limit(comment.PageSize + 1).
		Offset((page - 1) * comment.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not search comments: %w", err)
	}

	hasMore := len(rows) > comment.PageSize
	if hasMore {
		rows = rows[:comment.PageSize]
	}

	items := make([]*model.Comment, 0, len(rows))
	for i := range rows {
		items = append(items, toModelComment(&rows[i]))
	}

	return &model.CommentPage{
		Items:    items,
		HasMore:  hasMore,
		NextPage: page + 1,
	}, nil
}

func (s *CommentPostgresStorage) AcceptComment(ctx context.Context, id string) (*model.CommentConfirmation, error) {
	_, err := permission.Require(ctx, s.perm, permission.AcceptComment)
	if err != nil {
		return nil, err
	}

	var commentRow models.Comment
	err = DB.First(&commentRow, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("comment with id %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get comment by id: %w", err)
	}

	commentRow.Status = true
	err = DB.Save(&commentRow).Error
	if err != nil {
		return nil, fmt.Errorf("could not accept comment: %w", err)
	}

	return &model.CommentConfirmation{
		Comment: toModelComment(&commentRow),
		Message: acceptMessage,
	}, nil
}

// DeleteCommentById удаляет отклик безвозвратно, независимо от статуса
func (s *CommentPostgresStorage) DeleteCommentById(ctx context.Context, id string) (*model.CommentConfirmation, error) {
	_, err := permission.Require(ctx, s.perm, permission.DeleteComment)
	if err != nil {
		return nil, err
	}

	var commentRow models.Comment
	err = DB.First(&commentRow, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("comment with id %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get comment by id: %w", err)
	}

	err = DB.Unscoped().Delete(&commentRow).Error
	if err != nil {
		return nil, fmt.Errorf("could not delete comment: %w", err)
	}

	// в подтверждении — последние известные значения удаленного отклика
	return &model.CommentConfirmation{
		Comment: toModelComment(&commentRow),
		Message: deleteMessage,
	}, nil
}

func (s *CommentPostgresStorage) ListAcceptedComments(ctx context.Context, newsID string, page int) (*model.CommentPage, error) {
	_, err := permission.Require(ctx, s.perm, permission.ViewComment, permission.ViewPost)
	if err != nil {
		return nil, err
	}

	var newsRow models.News
	err = DB.First(&newsRow, newsID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("news with id %s: %w", newsID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get news by id: %w", err)
	}

	if page < 1 {
		page = 1
	}

	var rows []models.Comment
	err = DB.Where("news_id = ? AND status = ?", newsRow.ID, true).
		Order("created_at desc, id desc").
		Limit(comment.PageSize + 1).
		Offset((page - 1) * comment.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not list comments: %w", err)
	}

	hasMore := len(rows) > comment.PageSize
	if hasMore {
		rows = rows[:comment.PageSize]
	}

	items := make([]*model.Comment, 0, len(rows))
	for i := range rows {
		items = append(items, toModelComment(&rows[i]))
	}

	return &model.CommentPage{
		Items:    items,
		NewsText: newsRow.Text,
		HasMore:  hasMore,
		NextPage: page + 1,
	}, nil
}
