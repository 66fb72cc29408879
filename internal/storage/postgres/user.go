package postgres

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/c3pio89/Board/internal/confirmation"
	"github.com/c3pio89/Board/internal/mail"
	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/permission"
	"github.com/c3pio89/Board/models"
	"github.com/golang-jwt/jwt"

	"golang.org/x/crypto/bcrypt"
)

type UserPostgresStorage struct {
	mailer  mail.Mailer
	siteURL string
}

func NewUserPostgresStorage(mailer mail.Mailer, siteURL string) *UserPostgresStorage {
	return &UserPostgresStorage{mailer: mailer, siteURL: siteURL}
}

// RegisterUser создает пользователя в группе "common users" вместе с его
// кодом подтверждения и отправляет код письмом. Ошибка отправки
// возвращается вызывающему, но созданный аккаунт не откатывается.
func (s *UserPostgresStorage) RegisterUser(username, email, firstName, lastName, password string) (*model.User, error) {
	// проверка - существует ли такой пользователь
	var existUser models.User
	err := DB.Where("username = ?", username).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("user with username %s already exists", username)
	}
	err = DB.Where("email = ?", email).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("user with email %s already exists", email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(hashedPassword),
	}

	code := confirmation.GenerateCode()

	tx := DB.Begin()

	err = tx.Create(user).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	var group models.Group
	err = tx.FirstOrCreate(&group, models.Group{Name: permission.GroupCommonUsers}).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to get default group: %w", err)
	}

	err = tx.Model(user).Association("Groups").Append(&group).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to add user to default group: %w", err)
	}

	codeRow := &models.ConfirmationCode{
		UserID:   user.ID,
		UserCode: code,
	}
	err = tx.Create(codeRow).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create confirmation code: %w", err)
	}

	err = tx.Commit().Error
	if err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	body, err := mail.ComposeConfirmation(s.siteURL, user.Username, code)
	if err != nil {
		return nil, err
	}
	err = s.mailer.Send([]string{user.Email}, mail.ConfirmationSubject, body)
	if err != nil {
		return nil, fmt.Errorf("could not send confirmation mail: %w", err)
	}

	return &model.User{
		ID:        fmt.Sprint(user.ID),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func (s *UserPostgresStorage) LoginUser(username, password string) (string, error) {
	// проверка - существует ли такой пользователь
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return "", fmt.Errorf("user with username %s not found", username)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return "", fmt.Errorf("invalid password or username: %w", err)
	}

	// достаем из .env jwtSecret
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET is not set in environment")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
