package memory

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/c3pio89/Board/internal/mail"
	"github.com/c3pio89/Board/internal/model"
	"github.com/c3pio89/Board/internal/permission"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	mu        sync.Mutex
	users     map[string]*model.User // по username
	passwords map[string]string
	nextID    int

	groups  *GroupMemoryStore
	codes   *ConfirmationMemoryStorage
	mailer  mail.Mailer
	siteURL string
}

func NewUserMemoryStorage(groups *GroupMemoryStore, codes *ConfirmationMemoryStorage, mailer mail.Mailer, siteURL string) *UserMemoryStorage {
	return &UserMemoryStorage{
		users:     make(map[string]*model.User),
		passwords: make(map[string]string),
		nextID:    1,
		groups:    groups,
		codes:     codes,
		mailer:    mailer,
		siteURL:   siteURL,
	}
}

// RegisterUser создает пользователя в группе "common users" вместе с его
// кодом подтверждения и отправляет код письмом. Ошибка отправки
// возвращается вызывающему, но созданный аккаунт остается.
func (s *UserMemoryStorage) RegisterUser(username, email, firstName, lastName, password string) (*model.User, error) {
	s.mu.Lock()

	_, exists := s.users[username]
	if exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("user with username %s already exists", username)
	}
	for _, u := range s.users {
		if u.Email == email {
			s.mu.Unlock()
			return nil, fmt.Errorf("user with email %s already exists", email)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := s.nextID
	s.nextID++

	user := &model.User{
		ID:        strconv.Itoa(id),
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}

	s.users[username] = user
	s.passwords[username] = string(hashedPassword)
	s.mu.Unlock()

	s.groups.AddUserToGroup(uint(id), permission.GroupCommonUsers)
	code := s.codes.CreateForUser(uint(id))

	body, err := mail.ComposeConfirmation(s.siteURL, user.Username, code.UserCode)
	if err != nil {
		return nil, err
	}
	err = s.mailer.Send([]string{user.Email}, mail.ConfirmationSubject, body)
	if err != nil {
		return nil, fmt.Errorf("could not send confirmation mail: %w", err)
	}

	return user, nil
}

func (s *UserMemoryStorage) LoginUser(username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return "", fmt.Errorf("user with username %s not found", username)
	}

	hashedPassword, ok := s.passwords[username]
	if !ok {
		return "", fmt.Errorf("password for user %s not found", username)
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return "", fmt.Errorf("invalid password or username: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET is not set in environment")
	}

	userIDInt, err := strconv.Atoi(user.ID)
	if err != nil {
		return "", fmt.Errorf("invalid user id: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userIDInt,
		"username": user.Username,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
