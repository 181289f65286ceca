package constvars

const (
	EmailSendHTMLFormat = "To: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n"

	EmailVerificationSubject    = "Verify your MedPlus account"
	EmailVerificationBodyFormat = "<p>Hi %s,</p><p>Your verification code is <b>%s</b>. It expires in %d minutes.</p>"

	EmailResetPasswordSubject    = "Reset your MedPlus password"
	EmailResetPasswordBodyFormat = "<p>Hi %s,</p><p>Your password reset code is <b>%s</b>. It expires in %d minutes.</p>"

	PushReminderTitle      = "Upcoming appointment"
	PushReminderBodyFormat = "Your appointment starts at %s."
)
