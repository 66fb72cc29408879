package mail

// Mailer — внешний почтовый коллаборатор
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}
