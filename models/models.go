package models

import "github.com/jinzhu/gorm"

type User struct {
	gorm.Model
	Username  string `gorm:"unique"`
	Email     string `gorm:"unique"`
	FirstName string
	LastName  string
	Password  string
	Groups    []Group `gorm:"many2many:user_groups"`
}

type Group struct {
	gorm.Model
	Name  string `gorm:"unique"`
	Users []User `gorm:"many2many:user_groups"`
}

// Author — профиль с правом публикации, строго 1:1 с User
type Author struct {
	gorm.Model
	UserID uint   `gorm:"unique_index"`
	News   []News `gorm:"foreignkey:AuthorID"`
}

type News struct {
	gorm.Model
	AuthorID uint
	Category string
	Title    string
	Text     string
	Upload   string
	Comments []Comment `gorm:"foreignkey:NewsID"`
}

type Comment struct {
	gorm.Model
	NewsID uint
	UserID uint
	Text   string
	Status bool `gorm:"default:false"`
}

// ConfirmationCode — строго 1:1 с User, код генерируется для каждой записи отдельно
type ConfirmationCode struct {
	gorm.Model
	UserID      uint   `gorm:"unique_index"`
	UserCode    string `gorm:"size:4"`
	CodeEntered string `gorm:"size:4"`
	UserStatus  bool   `gorm:"default:false"`
}

type Newsletter struct {
	gorm.Model
	UserID uint
	Title  string
	Text   string
}
