package mocks

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/c3pio89/Board/internal/auth"
	"github.com/c3pio89/Board/internal/model"
)

// MockNewsStorage — урезанное хранилище новостей без проверки прав,
// для тестов хранилища откликов
type MockNewsStorage struct {
	mu           sync.Mutex
	news         map[string]*model.News
	authors      map[uint]*model.Author
	nextAuthorID int
}

func NewMockNewsStorage() *MockNewsStorage {
	return &MockNewsStorage{
		news:         make(map[string]*model.News),
		authors:      make(map[uint]*model.Author),
		nextAuthorID: 1,
	}
}

func (m *MockNewsStorage) CreateNews(ctx context.Context, category, title, text, upload string) (*model.News, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	author, exists := m.authors[userID]
	if !exists {
		author = &model.Author{
			ID:     strconv.Itoa(m.nextAuthorID),
			UserID: fmt.Sprint(userID),
		}
		m.nextAuthorID++
		m.authors[userID] = author
	}

	id := strconv.Itoa(len(m.news) + 1)
	newsItem := &model.News{
		ID:        id,
		AuthorID:  author.ID,
		Category:  category,
		Title:     title,
		Text:      text,
		Upload:    upload,
		CreatedAt: time.Now(),
	}
	m.news[id] = newsItem
	return newsItem, nil
}

func (m *MockNewsStorage) GetNewsById(id string) (*model.News, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	newsItem, ok := m.news[id]
	if !ok {
		return nil, fmt.Errorf("news with id %s: %w", id, model.ErrNotFound)
	}
	return newsItem, nil
}

func (m *MockNewsStorage) ListNews(page int) (*model.NewsPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]*model.News, 0, len(m.news))
	for _, n := range m.news {
		items = append(items, n)
	}
	return &model.NewsPage{Items: items, HasMore: false, NextPage: page + 1}, nil
}

func (m *MockNewsStorage) UpdateNews(ctx context.Context, id, category, title, text, upload string) (*model.News, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	newsItem, ok := m.news[id]
	if !ok {
		return nil, fmt.Errorf("news with id %s: %w", id, model.ErrNotFound)
	}
	newsItem.Category = category
	newsItem.Title = title
	newsItem.Text = text
	newsItem.Upload = upload
	return newsItem, nil
}

func (m *MockNewsStorage) DeleteNewsById(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.news[id]; !ok {
		return fmt.Errorf("news with id %s: %w", id, model.ErrNotFound)
	}
	delete(m.news, id)
	return nil
}

func (m *MockNewsStorage) GetAuthorByUserId(userID uint) (*model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	author, ok := m.authors[userID]
	if !ok {
		return nil, fmt.Errorf("author profile for user %d: %w", userID, model.ErrNotFound)
	}
	return author, nil
}
