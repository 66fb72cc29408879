package postgres

import (
	"context"
	"fmt"

	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/news"
	"github.com/c3pio89/Board/internal/permission"
	"github.com/c3pio89/Board/internal/validation"
	"github.com/c3pio89/Board/models"
	"github.com/jinzhu/gorm"
)

type NewsPostgresStorage struct {
	perm permission.Checker
}

func NewNewsPostgresStorage(perm permission.Checker) *NewsPostgresStorage {
	return &NewsPostgresStorage{perm: perm}
}

func toModelNews(n *models.News) *model.News {
	return &model.News{
		ID:        fmt.Sprint(n.ID),
		AuthorID:  fmt.Sprint(n.AuthorID),
		Category:  n.Category,
		Title:     n.Title,
		Text:      n.Text,
		Upload:    n.Upload,
		CreatedAt: n.CreatedAt,
	}
}

func validateNews(category, title, text string) error {
	if !model.IsValidCategory(category) {
		return fmt.Errorf("%w: %s", model.ErrUnknownCategory, category)
	}
	if err := validation.NotEmpty("title", title); err != nil {
		return err
	}
	if err := validation.NotEmpty("text", text); err != nil {
		return err
	}
	return nil
}

// getOrCreateAuthor полагается на unique_index по user_id: проигравший
// гонку Create перечитывает созданную параллельно запись
func getOrCreateAuthor(userID uint) (*models.Author, error) {
	var author models.Author
	err := DB.Where("user_id = ?", userID).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("could not look up author: %w", err)
	}

	author = models.Author{UserID: userID}
	err = DB.Create(&author).Error
	if err != nil {
		retryErr := DB.Where("user_id = ?", userID).First(&author).Error
		if retryErr != nil {
			return nil, fmt.Errorf("could not create author: %w", err)
		}
	}

	return &author, nil
}

func (s *NewsPostgresStorage) CreateNews(ctx context.Context, category, title, text, upload string) (*model.News, error) {
	userID, err := permission.Require(ctx, s.perm, permission.AddPost)
	if err != nil {
		return nil, err
	}

	if err := validateNews(category, title, text); err != nil {
		return nil, err
	}

	author, err := getOrCreateAuthor(userID)
	if err != nil {
		return nil, err
	}

	newsRow := &models.News{
		AuthorID: author.ID,
		Category: category,
		Title:    title,
		Text:     text,
		Upload:   upload,
	}

	err = DB.Create(newsRow).Error
	if err != nil {
		return nil, fmt.Errorf("could not create news: %w", err)
	}

	return toModelNews(newsRow), nil
}

func (s *NewsPostgresStorage) GetNewsById(id string) (*model.News, error) {
	var newsRow models.News
	err := DB.First(&newsRow, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("news with id %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get news by id: %w", err)
	}

	return toModelNews(&newsRow), nil
}

func (s *NewsPostgresStorage) ListNews(page int) (*model.NewsPage, error) {
	if page < 1 {
		page = 1
	}

	var rows []models.News
	err := DB.Order("created_at desc, id desc").
		Limit(news.PageSize + 1).
		Offset((page - 1) * news.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not list news: %w", err)
	}

	hasMore := len(rows) > news.PageSize
	if hasMore {
		rows = rows[:news.PageSize]
	}

	items := make([]*model.News, 0, len(rows))
	for i := range rows {
		items = append(items, toModelNews(&rows[i]))
	}

	return &model.NewsPage{
		Items:    items,
		HasMore:  hasMore,
		NextPage: page + 1,
	}, nil
}

func (s *NewsPostgresStorage) UpdateNews(ctx context.Context, id, category, title, text, upload string) (*model.News, error) {
	userID, err := permission.Require(ctx, s.perm, permission.ChangePost)
	if err != nil {
		return nil, err
	}

	var newsRow models.News
	err = DB.First(&newsRow, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("news with id %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get news by id: %w", err)
	}

	if err := s.requireOwnership(userID, &newsRow); err != nil {
		return nil, err
	}

	if err := validateNews(category, title, text); err != nil {
		return nil, err
	}

	newsRow.Category = category
	newsRow.Title = title
	newsRow.Text = text
	newsRow.Upload = upload

	err = DB.Save(&newsRow).Error
	if err != nil {
		return nil, fmt.Errorf("could not update news: %w", err)
	}

	return toModelNews(&newsRow), nil
}

func (s *NewsPostgresStorage) DeleteNewsById(ctx context.Context, id string) error {
	userID, err := permission.Require(ctx, s.perm, permission.DeletePost)
	if err != nil {
		return err
	}

	var newsRow models.News
	err = DB.First(&newsRow, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return fmt.Errorf("news with id %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("could not get news by id: %w", err)
	}

	if err := s.requireOwnership(userID, &newsRow); err != nil {
		return err
	}

	// новость удаляется вместе со своими откликами
	tx := DB.Begin()
	err = tx.Unscoped().Where("news_id = ?", newsRow.ID).Delete(&models.Comment{}).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete comments of news: %w", err)
	}
	err = tx.Unscoped().Delete(&newsRow).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete news: %w", err)
	}

	return tx.Commit().Error
}

func (s *NewsPostgresStorage) GetAuthorByUserId(userID uint) (*model.Author, error) {
	var author models.Author
	err := DB.Where("user_id = ?", userID).First(&author).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("author profile for user %d: %w", userID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not look up author: %w", err)
	}

	return &model.Author{
		ID:     fmt.Sprint(author.ID),
		UserID: fmt.Sprint(author.UserID),
	}, nil
}

func (s *NewsPostgresStorage) requireOwnership(userID uint, newsRow *models.News) error {
	var author models.Author
	err := DB.Where("user_id = ?", userID).First(&author).Error
	if gorm.IsRecordNotFoundError(err) || (err == nil && author.ID != newsRow.AuthorID) {
		return fmt.Errorf("%w: you are not the author of this news", model.ErrPermissionDenied)
	}
	if err != nil {
		return fmt.Errorf("could not look up author: %w", err)
	}
	return nil
}
