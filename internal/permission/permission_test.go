package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/c3pio89/Board/internal/auth"
	"github.com/c3pio89/Board/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	perms map[string]bool
	err   error
}

func (f *fakeChecker) HasPermission(userID uint, perm string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.perms[perm], nil
}

func TestGroupHasPermission(t *testing.T) {
	t.Run("Common users can comment but not post", func(t *testing.T) {
		assert.True(t, GroupHasPermission(GroupCommonUsers, AddComment))
		assert.True(t, GroupHasPermission(GroupCommonUsers, ConfirmAccount))
		assert.False(t, GroupHasPermission(GroupCommonUsers, AddPost))
		assert.False(t, GroupHasPermission(GroupCommonUsers, AcceptComment))
	})

	t.Run("Authors moderate their comments", func(t *testing.T) {
		assert.True(t, GroupHasPermission(GroupAuthors, AddPost))
		assert.True(t, GroupHasPermission(GroupAuthors, AcceptComment))
		assert.True(t, GroupHasPermission(GroupAuthors, DeleteComment))
	})

	t.Run("Unknown group has nothing", func(t *testing.T) {
		assert.False(t, GroupHasPermission("admins", AddPost))
	})
}

func TestRequire(t *testing.T) {
	checker := &fakeChecker{perms: map[string]bool{AddComment: true}}

	t.Run("Unauthorized without context user", func(t *testing.T) {
		_, err := Require(context.Background(), checker, AddComment)
		assert.True(t, errors.Is(err, model.ErrUnauthorized))
	})

	t.Run("Granted permission passes through the user ID", func(t *testing.T) {
		ctx := auth.WithUserID(context.Background(), 7)

		userID, err := Require(ctx, checker, AddComment)
		require.NoError(t, err)
		assert.Equal(t, uint(7), userID)
	})

	t.Run("Missing permission is a hard denial", func(t *testing.T) {
		ctx := auth.WithUserID(context.Background(), 7)

		_, err := Require(ctx, checker, AddComment, AcceptComment)
		assert.True(t, errors.Is(err, model.ErrPermissionDenied))
		assert.Contains(t, err.Error(), AcceptComment)
	})

	t.Run("Checker failure is not a denial", func(t *testing.T) {
		broken := &fakeChecker{err: errors.New("connection lost")}
		ctx := auth.WithUserID(context.Background(), 7)

		_, err := Require(ctx, broken, AddComment)
		require.Error(t, err)
		assert.False(t, errors.Is(err, model.ErrPermissionDenied))
	})

	t.Run("No permissions required still needs a user", func(t *testing.T) {
		ctx := auth.WithUserID(context.Background(), 7)

		userID, err := Require(ctx, checker)
		require.NoError(t, err)
		assert.Equal(t, uint(7), userID)
	})
}
