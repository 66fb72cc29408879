package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/news"
	"github.com/c3pio89/Board/internal/permission"
	"github.com/c3pio89/Board/internal/validation"
)

type NewsMemoryStorage struct {
	mu           sync.Mutex
	news         map[string]*model.News
	authors      map[uint]*model.Author // по userID, строго один автор на пользователя
	nextNewsID   int
	nextAuthorID int
	perm         permission.Checker
}

func NewNewsMemoryStorage(perm permission.Checker) *NewsMemoryStorage {
	return &NewsMemoryStorage{
		news:         make(map[string]*model.News),
		authors:      make(map[uint]*model.Author),
		nextNewsID:   1,
		nextAuthorID: 1,
		perm:         perm,
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

// getOrCreateAuthor вызывается под мьютексом — повторный вызов для того же
// пользователя всегда возвращает уже созданный профиль
func (s *NewsMemoryStorage) getOrCreateAuthor(userID uint) *model.Author {
	author, exists := s.authors[userID]
	if exists {
		return author
	}

	author = &model.Author{
		ID:     strconv.Itoa(s.nextAuthorID),
		UserID: fmt.Sprint(userID),
	}
	s.nextAuthorID++
	s.authors[userID] = author
	return author
}

func (s *NewsMemoryStorage) CreateNews(ctx context.Context, category, title, text, upload string) (*model.News, error) {
	userID, err := permission.Require(ctx, s.perm, permission.AddPost)
	if err != nil {
		return nil, err
	}

	if err := validateNews(category, title, text); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	author := s.getOrCreateAuthor(userID)

	id := strconv.Itoa(s.nextNewsID)
	s.nextNewsID++

	newsItem := &model.News{
		ID:        id,
		AuthorID:  author.ID,
		Category:  category,
		Title:     title,
		Text:      text,
		Upload:    upload,
		CreatedAt: time.Now(),
	}

	s.news[id] = newsItem
	return newsItem, nil
}

func (s *NewsMemoryStorage) GetNewsById(id string) (*model.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newsItem, exists := s.news[id]
	if !exists {
		return nil, fmt.Errorf("news with id %s: %w", id, model.ErrNotFound)
	}

	return newsItem, nil
}

func (s *NewsMemoryStorage) ListNews(page int) (*model.NewsPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}

	items := make([]*model.News, 0, len(s.news))
	for _, n := range s.news {
		items = append(items, n)
	}
	sortNewsDesc(items)

	start := (page - 1) * news.PageSize
	if start >= len(items) {
		return &model.NewsPage{Items: []*model.News{}, HasMore: false, NextPage: page + 1}, nil
	}

	end := start + news.PageSize
	if end > len(items) {
		end = len(items)
	}

	return &model.NewsPage{
		Items:    items[start:end],
		HasMore:  end < len(items),
		NextPage: page + 1,
	}, nil
}

func (s *NewsMemoryStorage) UpdateNews(ctx context.Context, id, category, title, text, upload string) (*model.News, error) {
	userID, err := permission.Require(ctx, s.perm, permission.ChangePost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newsItem, exists := s.news[id]
	if !exists {
		return nil, fmt.Errorf("news with id %s: %w", id, model.ErrNotFound)
	}

	if err := s.requireOwnership(userID, newsItem); err != nil {
		return nil, err
	}

	if err := validateNews(category, title, text); err != nil {
		return nil, err
	}

	newsItem.Category = category
	newsItem.Title = title
	newsItem.Text = text
	newsItem.Upload = upload

	return newsItem, nil
}

func (s *NewsMemoryStorage) DeleteNewsById(ctx context.Context, id string) error {
	userID, err := permission.Require(ctx, s.perm, permission.DeletePost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newsItem, exists := s.news[id]
	if !exists {
		return fmt.Errorf("news with id %s: %w", id, model.ErrNotFound)
	}

	if err := s.requireOwnership(userID, newsItem); err != nil {
		return err
	}

	delete(s.news, id)
	return nil
}

func (s *NewsMemoryStorage) GetAuthorByUserId(userID uint) (*model.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	author, exists := s.authors[userID]
	if !exists {
		return nil, fmt.Errorf("author profile for user %d: %w", userID, model.ErrNotFound)
	}

	return author, nil
}

func (s *NewsMemoryStorage) requireOwnership(userID uint, newsItem *model.News) error {
	author, exists := s.authors[userID]
	if !exists || author.ID != newsItem.AuthorID {
		return fmt.Errorf("%w: you are not the author of this news", model.ErrPermissionDenied)
	}
	return nil
}

func sortNewsDesc(items []*model.News) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return numericID(items[i].ID) > numericID(items[j].ID)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func numericID(id string) int {
	n, _ := strconv.Atoi(id)
	return n
}
