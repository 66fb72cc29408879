package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/permission"
	"github.com/c3pio89/Board/internal/validation"
)

type NewsletterMemoryStorage struct {
	mu          sync.Mutex
	newsletters map[string]*model.Newsletter
	nextID      int
	perm        permission.Checker
}

func NewNewsletterMemoryStorage(perm permission.Checker) *NewsletterMemoryStorage {
	return &NewsletterMemoryStorage{
		newsletters: make(map[string]*model.Newsletter),
		nextID:      1,
		perm:        perm,
	}
}

func (s *NewsletterMemoryStorage) CreateNewsletter(ctx context.Context, title, text string) (*model.Newsletter, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	item := &model.Newsletter{
		ID:        id,
		UserID:    fmt.Sprint(userID),
		Title:     title,
		Text:      text,
		CreatedAt: time.Now(),
	}

	s.newsletters[id] = item
	return item, nil
}
