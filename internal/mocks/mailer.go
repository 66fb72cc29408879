package mocks

import "sync"

type SentMail struct {
	To      []string
	Subject string
	Body    string
}

// MockMailer запоминает отправленные письма; FailWith позволяет
// сымитировать отказ почтового коллаборатора
type MockMailer struct {
	mu       sync.Mutex
	sent     []SentMail
	FailWith error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(to []string, subject, htmlBody string) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]SentMail, len(m.sent))
	copy(result, m.sent)
	return result
}
