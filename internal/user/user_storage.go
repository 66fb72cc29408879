package user

import (
	"github.com/c3pio89/Board/internal/model"
)

type UserStorage interface {
	RegisterUser(username, email, firstName, lastName, password string) (*model.User, error)
	LoginUser(username, password string) (string, error) // JWT
}
