package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/c3pio89/Board/internal/comment"
	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/news"
	"github.com/c3pio89/Board/internal/permission"
)

const (
	acceptMessage = "Вы успешно приняли отклик на свое объявление"
	deleteMessage = "Вы успешно удалили отклик на свое объявление"
)

type CommentMemoryStorage struct {
	mu          sync.Mutex
	comments    map[string]*model.Comment
	nextID      int
	newsStorage news.NewsStorage // внедрение зависимости (DI)
	perm        permission.Checker
}

func NewCommentMemoryStorage(newsStore news.NewsStorage, perm permission.Checker) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments:    make(map[string]*model.Comment),
		nextID:      1,
		newsStorage: newsStore,
		perm:        perm,
	}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, newsID, text string) (*model.Comment, error) {
	userID, err := permission.Require(ctx, s.perm, permission.AddComment)
	if err != nil {
		return nil, err
	}

	_, err = s.newsStorage.GetNewsById(newsID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	commentItem := &model.Comment{
		ID:        id,
		NewsID:    newsID,
		UserID:    fmt.Sprint(userID),
		Text:      text,
		Status:    false,
		CreatedAt: time.Now(),
	}

	s.comments[id] = commentItem
	return commentItem, nil
}

// SearchComments — очередь модерации: только отклики на новости автора,
// чужие отклики не попадают в выдачу ни при каких фильтрах
func (s *CommentMemoryStorage) SearchComments(ctx context.Context, filter comment.Filter, page int) (*model.CommentPage, error) {
	userID, err := permission.Require(ctx, s.perm, permission.AddComment, permission.AddPost)
	if err != nil {
		return nil, err
	}

	author, err := s.newsStorage.GetAuthorByUserId(userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}

	var matched []*model.Comment
	for _, c := range s.comments {
		newsItem, err := s.newsStorage.GetNewsById(c.NewsID)
		if err != nil || newsItem.AuthorID != author.ID {
			continue
		}
		if filter.CreatedAfter != nil && !c.CreatedAt.After(*filter.CreatedAfter) {
			continue
		}
		if filter.TextContains != "" &&
			!strings.Contains(strings.ToLower(c.Text), strings.ToLower(filter.TextContains)) {
			continue
		}
		matched = append(matched, c)
	}

	sortCommentsDesc(matched)
	return paginateComments(matched, page, ""), nil
}

func (s *CommentMemoryStorage) AcceptComment(ctx context.Context, id string) (*model.CommentConfirmation, error) {
	_, err := permission.Require(ctx, s.perm, permission.AcceptComment)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	commentItem, exists := s.comments[id]
	if !exists {
		return nil, fmt.Errorf("comment with id %s: %w", id, model.ErrNotFound)
	}

	commentItem.Status = true
	return &model.CommentConfirmation{
		Comment: commentItem,
		Message: acceptMessage,
	}, nil
}

// DeleteCommentById удаляет отклик безвозвратно, независимо от статуса
func (s *CommentMemoryStorage) DeleteCommentById(ctx context.Context, id string) (*model.CommentConfirmation, error) {
	_, err := permission.Require(ctx, s.perm, permission.DeleteComment)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	commentItem, exists := s.comments[id]
	if !exists {
		return nil, fmt.Errorf("comment with id %s: %w", id, model.ErrNotFound)
	}

	delete(s.comments, id)

	// в подтверждении — последние известные значения удаленного отклика
	return &model.CommentConfirmation{
		Comment: commentItem,
		Message: deleteMessage,
	}, nil
}

func (s *CommentMemoryStorage) ListAcceptedComments(ctx context.Context, newsID string, page int) (*model.CommentPage, error) {
	_, err := permission.Require(ctx, s.perm, permission.ViewComment, permission.ViewPost)
	if err != nil {
		return nil, err
	}

	newsItem, err := s.newsStorage.GetNewsById(newsID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}

	var accepted []*model.Comment
	for _, c := range s.comments {
		if c.NewsID == newsID && c.Status {
			accepted = append(accepted, c)
		}
	}

	sortCommentsDesc(accepted)
	return paginateComments(accepted, page, newsItem.Text), nil
}

func sortCommentsDesc(items []*model.Comment) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return numericID(items[i].ID) > numericID(items[j].ID)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func paginateComments(items []*model.Comment, page int, newsText string) *model.CommentPage {
	start := (page - 1) * comment.PageSize
	if start >= len(items) {
		return &model.CommentPage{
			Items:    []*model.Comment{},
			NewsText: newsText,
			HasMore:  false,
			NextPage: page + 1,
		}
	}

	end := start + comment.PageSize
	if end > len(items) {
		end = len(items)
	}

	return &model.CommentPage{
		Items:    items[start:end],
		NewsText: newsText,
		HasMore:  end < len(items),
		NextPage: page + 1,
	}
}
