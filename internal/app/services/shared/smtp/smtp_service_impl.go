package smtp

import (
	"fmt"
	"medplus-service/internal/app/drivers/mailer"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/exceptions"
	"net/smtp"
	"regexp"
)

type smtpService struct {
	Client *mailer.SMTPClient
}

func NewSmtpService(client *mailer.SMTPClient) SMTPService {
	return &smtpService{
		Client: client,
	}
}

func (svc *smtpService) SendHTMLEmail(to, subject, htmlBody string) error {
	from := svc.Client.Sender
	msg := []byte(fmt.Sprintf(constvars.EmailSendHTMLFormat, to, subject, htmlBody))
	addr := fmt.Sprintf("%s:%d", svc.Client.Host, svc.Client.Port)
	err := smtp.SendMail(addr, svc.Client.Auth, from, []string{to}, msg)
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, svc.Client.Host)
	}
	return nil
}

func (svc *smtpService) ValidateEmail(email string) bool {
	re := regexp.MustCompile(constvars.RegexEmail)
	return re.MatchString(email)
}
