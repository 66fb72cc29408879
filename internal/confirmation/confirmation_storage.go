package confirmation

import (
	"context"

	"github.com/c3pio89/Board/internal/model"
)

// ConfirmationStorage работает только с кодом действующего пользователя:
// запись привязывается к владельцу при регистрации, чужую изменить нельзя.
//
// SubmitCode сохраняет введенный код и НЕ выставляет user_status —
// сверку делает потребитель через Matches и MarkVerified.
type ConfirmationStorage interface {
	SubmitCode(ctx context.Context, entered string) (*model.ConfirmationCode, error)
	GetCode(ctx context.Context) (*model.ConfirmationCode, error)
	MarkVerified(ctx context.Context) (*model.ConfirmationCode, error)
}
