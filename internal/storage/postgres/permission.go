package postgres

import (
	"fmt"

	"github.com/c3pio89/Board/internal/permission"
	"github.com/c3pio89/Board/models"
	"github.com/jinzhu/gorm"
)

// PermissionPostgresStore проверяет разрешения по группам пользователя
type PermissionPostgresStore struct{}

func NewPermissionPostgresStore() *PermissionPostgresStore {
	return &PermissionPostgresStore{}
}

func (s *PermissionPostgresStore) HasPermission(userID uint, perm string) (bool, error) {
	var user models.User
	err := DB.Preload("Groups").First(&user, userID).Error
	if gorm.IsRecordNotFoundError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not load user groups: %w", err)
	}

	for _, group := range user.Groups {
		if permission.GroupHasPermission(group.Name, perm) {
			return true, nil
		}
	}
	return false, nil
}

// AddUserToGroup включает пользователя в группу (группа должна существовать)
func AddUserToGroup(userID uint, groupName string) error {
	var group models.Group
	err := DB.Where("name = ?", groupName).First(&group).Error
	if err != nil {
		return fmt.Errorf("group %s not found: %w", groupName, err)
	}

	var user models.User
	err = DB.First(&user, userID).Error
	if err != nil {
		return fmt.Errorf("user %d not found: %w", userID, err)
	}

	err = DB.Model(&user).Association("Groups").Append(&group).Error
	if err != nil {
		return fmt.Errorf("could not add user to group %s: %w", groupName, err)
	}

	return nil
}
