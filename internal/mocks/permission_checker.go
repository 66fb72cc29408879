package mocks

import "sync"

// MockPermissionChecker отдает разрешения из заранее заданных наборов.
// AllowAll удобен там, где права не предмет теста.
type MockPermissionChecker struct {
	mu       sync.Mutex
	AllowAll bool
	perms    map[uint]map[string]bool
}

func NewMockPermissionChecker() *MockPermissionChecker {
	return &MockPermissionChecker{
		perms: make(map[uint]map[string]bool),
	}
}

func NewAllowAllPermissionChecker() *MockPermissionChecker {
	return &MockPermissionChecker{
		AllowAll: true,
		perms:    make(map[uint]map[string]bool),
	}
}

func (m *MockPermissionChecker) Grant(userID uint, perms ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.perms[userID] == nil {
		m.perms[userID] = make(map[string]bool)
	}
	for _, p := range perms {
		m.perms[userID][p] = true
	}
}

func (m *MockPermissionChecker) HasPermission(userID uint, perm string) (bool, error) {
	if m.AllowAll {
		return true, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.perms[userID][perm], nil
}
