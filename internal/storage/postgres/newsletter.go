package postgres

import (
	"context"
	"fmt"

	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/permission"
	"github.com/c3pio89/Board/internal/validation"
	"github.com/c3pio89/Board/models"
)

type NewsletterPostgresStorage struct {
	perm permission.Checker
}

func NewNewsletterPostgresStorage(perm permission.Checker) *NewsletterPostgresStorage {
	return &NewsletterPostgresStorage{perm: perm}
}

func (s *NewsletterPostgresStorage) CreateNewsletter(ctx context.Context, title, text string) (*model.Newsletter, error) {
	userID, err := permission.Require(ctx, s.perm, permission.AddNewsletter)
	if err != nil {
		return nil, err
	}

	if err := validation.NotEmpty("title", title); err != nil {
		return nil, err
	}
	if err := validation.NotEmpty("text", text); err != nil {
		return nil, err
	}

	row := &models.Newsletter{
		UserID: userID,
		Title:  title,
		Text:   text,
	}

	err = DB.Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("could not create newsletter: %w", err)
	}

	return &model.Newsletter{
		ID:        fmt.Sprint(row.ID),
		UserID:    fmt.Sprint(row.UserID),
		Title:     row.Title,
		Text:      row.Text,
		CreatedAt: row.CreatedAt,
	}, nil
}
