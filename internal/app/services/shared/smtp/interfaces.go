package smtp

type SMTPService interface {
	SendHTMLEmail(to, subject, htmlBody string) error
	ValidateEmail(email string) bool
}
