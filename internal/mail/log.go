package mail

import (
	"github.com/sirupsen/logrus"
)

// LogMailer пишет письма в лог вместо отправки — для локального запуска
// и in-memory режима, когда SMTP не настроен
type LogMailer struct {
	log *logrus.Logger
}

func NewLogMailer(log *logrus.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(to []string, subject, htmlBody string) error {
	m.log.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("mail dispatched to log")
	m.log.Debug(htmlBody)
	return nil
}
