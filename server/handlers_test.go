package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c3pio89/Board/internal/mocks"
	"github.com/c3pio89/Board/internal/permission"
	"github.com/c3pio89/Board/internal/storage/memory"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	router *gin.Engine
	groups *memory.GroupMemoryStore
	codes  *memory.ConfirmationMemoryStorage
	mailer *mocks.MockMailer
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	groups := memory.NewGroupMemoryStore()
	codes := memory.NewConfirmationMemoryStorage(groups)
	mailer := mocks.NewMockMailer()

	newsStore := memory.NewNewsMemoryStorage(groups)
	commentStore := memory.NewCommentMemoryStorage(newsStore, groups)
	userStore := memory.NewUserMemoryStorage(groups, codes, mailer, "http://localhost:8080")
	newsletterStore := memory.NewNewsletterMemoryStorage(groups)

	srv := &Server{
		NewsStore:         newsStore,
		CommentStore:      commentStore,
		UserStore:         userStore,
		NewsletterStore:   newsletterStore,
		ConfirmationStore: codes,
	}

	return &testEnv{
		router: srv.Router(),
		groups: groups,
		codes:  codes,
		mailer: mailer,
	}
}

func tokenFor(t *testing.T, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(t *testing.T, method, path, body string, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, userID))
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", testJWTSecret)
	code := m.Run()
	os.Unsetenv("JWT_SECRET")
	os.Exit(code)
}

func TestSignupAndConfirmFlow(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/signup",
		`{"username":"anton","email":"anton@example.com","password":"password123"}`, 0)
	require.Equal(t, http.StatusCreated, w.Code)

	sent := env.mailer.Sent()
	require.Len(t, sent, 1)

	// код из хранилища, в письме он же
	code := env.codes.CreateForUser(1)
	assert.Contains(t, sent[0].Body, code.UserCode)

	t.Run("Signup without required fields", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/signup", `{"username":"x"}`, 0)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Login issues a token", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/login",
			`{"username":"anton","password":"password123"}`, 0)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("Login with wrong password", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/login",
			`{"username":"anton","password":"wrong"}`, 0)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Wrong code does not verify", func(t *testing.T) {
		wrong := "0000"
		if wrong == code.UserCode {
			wrong = "0001"
		}
		w := env.do(t, http.MethodPost, "/confirm", fmt.Sprintf(`{"code":%q}`, wrong), 1)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["verified"])
	})

	t.Run("Exact code verifies the account", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/confirm", fmt.Sprintf(`{"code":%q}`, code.UserCode), 1)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["verified"])
	})

	t.Run("Confirm without token", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/confirm", `{"code":"1234"}`, 0)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestNewsEndpoints(t *testing.T) {
	env := newTestEnv()
	env.groups.AddUserToGroup(1, permission.GroupAuthors)
	env.groups.AddUserToGroup(2, permission.GroupCommonUsers)

	t.Run("Unauthenticated creation", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/news",
			`{"category":"Tanks","title":"Ищем танка","text":"текст"}`, 0)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Common user cannot post", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/news",
			`{"category":"Tanks","title":"Ищем танка","text":"текст"}`, 2)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	var newsID string

	t.Run("Author creates news", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/news",
			`{"category":"Tanks","title":"Ищем танка","text":"текст"}`, 1)
		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		newsID, _ = body["id"].(string)
		require.NotEmpty(t, newsID)
	})

	t.Run("Unknown category", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/news",
			`{"category":"Necromancers","title":"Заголовок","text":"текст"}`, 1)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("List is public", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/news", "", 0)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		items, ok := body["items"].([]interface{})
		require.True(t, ok)
		assert.Len(t, items, 1)
	})

	t.Run("Get missing news", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/news/999", "", 0)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Update by another author is forbidden", func(t *testing.T) {
		env.groups.AddUserToGroup(3, permission.GroupAuthors)
		// второй автор с собственным профилем
		w := env.do(t, http.MethodPost, "/news",
			`{"category":"Healers","title":"Чужое","text":"текст"}`, 3)
		require.Equal(t, http.StatusCreated, w.Code)

		w = env.do(t, http.MethodPut, "/news/"+newsID,
			`{"category":"Tanks","title":"Взлом","text":"текст"}`, 3)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Owner deletes the news", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/news/"+newsID, "", 1)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = env.do(t, http.MethodGet, "/news/"+newsID, "", 0)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentEndpoints(t *testing.T) {
	env := newTestEnv()
	env.groups.AddUserToGroup(1, permission.GroupAuthors)
	env.groups.AddUserToGroup(2, permission.GroupCommonUsers)

	w := env.do(t, http.MethodPost, "/news",
		`{"category":"Tanks","title":"Ищем танка","text":"Текст объявления"}`, 1)
	require.Equal(t, http.StatusCreated, w.Code)
	newsID := decodeBody(t, w)["id"].(string)

	var commentID string

	t.Run("Common user leaves a pending comment", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/news/"+newsID+"/comments",
			`{"text":"Возьмите меня"}`, 2)
		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		commentID = body["id"].(string)
		assert.Equal(t, false, body["status"])
	})

	t.Run("Pending comment is not listed publicly", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/news/"+newsID+"/comments", "", 2)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		items, ok := body["items"].([]interface{})
		require.True(t, ok)
		assert.Empty(t, items)
	})

	t.Run("Author sees it in the moderation queue", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/comments?text=возьмите", "", 1)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		items := body["items"].([]interface{})
		assert.Len(t, items, 1)
	})

	t.Run("Bad added_after filter", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/comments?added_after=yesterday", "", 1)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Common user cannot moderate", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/comments/"+commentID+"/accept", "", 2)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Author accepts the comment", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/comments/"+commentID+"/accept", "", 1)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Contains(t, body["message"], "приняли")
	})

	t.Run("Accepted comment shows up with the news text", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/news/"+newsID+"/comments", "", 2)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		items := body["items"].([]interface{})
		require.Len(t, items, 1)
		assert.Equal(t, "Текст объявления", body["newsText"])
	})

	t.Run("Author deletes the comment", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/comments/"+commentID, "", 1)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Contains(t, body["message"], "удалили")

		w = env.do(t, http.MethodPost, "/comments/"+commentID+"/accept", "", 1)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNewsletterEndpoint(t *testing.T) {
	env := newTestEnv()
	env.groups.AddUserToGroup(1, permission.GroupCommonUsers)

	t.Run("Subscribed user creates a newsletter entry", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/newsletters",
			`{"title":"Новости недели","text":"Содержимое"}`, 1)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Empty title", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/newsletters", `{"title":"","text":"x"}`, 1)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/newsletters",
			`{"title":"Заголовок","text":"текст"}`, 0)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
