package permission

import (
	"context"
	"fmt"

	"github.com/c3pio89/Board/internal/auth"
	"github.com/c3pio89/Board/internal/model"
)

// Имена разрешений. Модерация и подтверждение аккаунта получили
// собственные имена вместо переиспользования delete_comment и change_post.
const (
	AddPost        = "add_post"
	ChangePost     = "change_post"
	DeletePost     = "delete_post"
	AddComment     = "add_comment"
	AcceptComment  = "accept_comment"
	DeleteComment  = "delete_comment"
	ViewComment    = "view_comment"
	ViewPost       = "view_post"
	AddNewsletter  = "add_newsletter"
	ConfirmAccount = "confirm_account"
)

const (
	GroupCommonUsers = "common users"
	GroupAuthors     = "authors"
)

// Наборы разрешений групп. Членство в группах хранится в БД,
// сами наборы — здесь.
var groupPermissions = map[string][]string{
	GroupCommonUsers: {
		AddComment, ViewComment, ViewPost, AddNewsletter, ConfirmAccount,
	},
	GroupAuthors: {
		AddPost, ChangePost, DeletePost,
		AddComment, AcceptComment, DeleteComment, ViewComment, ViewPost,
		AddNewsletter, ConfirmAccount,
	},
}

func GroupHasPermission(group, perm string) bool {
	for _, p := range groupPermissions[group] {
		if p == perm {
			return true
		}
	}
	return false
}

// Checker отвечает, есть ли у пользователя разрешение (через его группы)
type Checker interface {
	HasPermission(userID uint, perm string) (bool, error)
}

// Require — общая точка входа контроля доступа: достает пользователя из
// контекста и требует все перечисленные разрешения. Отсутствие любого —
// жесткий отказ, а не пустой результат.
func Require(ctx context.Context, checker Checker, perms ...string) (uint, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}

	for _, perm := range perms {
		ok, err := checker.HasPermission(userID, perm)
		if err != nil {
			return 0, fmt.Errorf("could not check permission %s: %w", perm, err)
		}
		if !ok {
			return 0, fmt.Errorf("%w: missing permission %s", model.ErrPermissionDenied, perm)
		}
	}

	return userID, nil
}
