package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/c3pio89/Board/internal/auth"
	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/permission"
)

func userIDFromContext(ctx context.Context) (uint, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}
	return userID, nil
}

// GroupMemoryStore хранит членство пользователей в группах
type GroupMemoryStore struct {
	mu     sync.Mutex
	groups map[uint][]string
}

func NewGroupMemoryStore() *GroupMemoryStore {
	return &GroupMemoryStore{
		groups: make(map[uint][]string),
	}
}

func (s *GroupMemoryStore) AddUserToGroup(userID uint, group string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups[userID] {
		if g == group {
			return
		}
	}
	s.groups[userID] = append(s.groups[userID], group)
}

func (s *GroupMemoryStore) HasPermission(userID uint, perm string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, group := range s.groups[userID] {
		if permission.GroupHasPermission(group, perm) {
			return true, nil
		}
	}
	return false, nil
}
