package model

import "time"

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Author — профиль публикации, связан 1:1 с пользователем
type Author struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

type News struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Upload    string    `json:"upload,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewsPage struct {
	Items    []*News `json:"items"`
	HasMore  bool    `json:"hasMore"`
	NextPage int     `json:"nextPage"`
}

type Comment struct {
	ID        string    `json:"id"`
	NewsID    string    `json:"newsId"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentPage — страница откликов; NewsText заполняется только в выдаче
// принятых откликов конкретной новости
type CommentPage struct {
	Items    []*Comment `json:"items"`
	NewsText string     `json:"newsText,omitempty"`
	HasMore  bool       `json:"hasMore"`
	NextPage int        `json:"nextPage"`
}

// CommentConfirmation — результат модерации: отклик и сообщение для автора
type CommentConfirmation struct {
	Comment *Comment `json:"comment"`
	Message string   `json:"message"`
}

type ConfirmationCode struct {
	UserID      string `json:"userId"`
	UserCode    string `json:"-"`
	CodeEntered string `json:"codeEntered"`
	UserStatus  bool   `json:"userStatus"`
}

// Matches — пустой введенный код никогда не совпадает
func (c *ConfirmationCode) Matches() bool {
	return c.CodeEntered != "" && c.CodeEntered == c.UserCode
}

type Newsletter struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
