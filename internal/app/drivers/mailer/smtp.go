package mailer

import (
	"medplus-service/internal/app/config"
	"net/smtp"
)

type SMTPClient struct {
	Host     string
	Port     int
	Sender   string
	Auth     smtp.Auth
}

func NewSMTPClient(driverConfig *config.DriverConfig) *SMTPClient {
	auth := smtp.PlainAuth("", driverConfig.SMTP.Username, driverConfig.SMTP.Password, driverConfig.SMTP.Host)
	return &SMTPClient{
		Host:   driverConfig.SMTP.Host,
		Port:   driverConfig.SMTP.Port,
		Sender: driverConfig.SMTP.EmailSender,
		Auth:   auth,
	}
}
