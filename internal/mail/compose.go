package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

const ConfirmationSubject = "Вы успешно зарегистрировались на нашем сайте!"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<p>Здравствуйте, {{.Username}}!</p>
<p>Ваш код подтверждения: <b>{{.Code}}</b></p>
<p>Введите его на странице <a href="{{.Link}}">{{.Link}}</a>, чтобы подтвердить аккаунт.</p>`))

// ComposeConfirmation собирает тело письма с кодом подтверждения
func ComposeConfirmation(siteURL, username, code string) (string, error) {
	data := struct {
		Username string
		Code     string
		Link     string
	}{
		Username: username,
		Code:     code,
		Link:     siteURL + "/confirm/",
	}

	var buf bytes.Buffer
	err := confirmationTemplate.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("could not render confirmation mail: %w", err)
	}

	return buf.String(), nil
}
