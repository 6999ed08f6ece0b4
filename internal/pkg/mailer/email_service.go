package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendPremiumActivated(toEmail, plan string, expiry *time.Time) error
}

type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      Sender
	senderEmail string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		clientURL:   clientURL,
	}
}

func NewEmailServiceWithSender(sender Sender, senderEmail, clientURL string) IEmailService {
	return &emailService{
		dialer:      sender,
		senderEmail: senderEmail,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendPremiumActivated(toEmail, plan string, expiry *time.Time) error {
	if toEmail == "" {
		return fmt.Errorf("no recipient")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your DocGentor Premium plan is active")

	until := "until you cancel"
	if expiry != nil {
		until = "until " + expiry.UTC().Format("2 January 2006")
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thanks for upgrading!</h2>
			<p>Your <strong>%s</strong> plan is active %s.</p>
			<p>All premium tools are now unlocked on your dashboard:</p>
			<a href="%s/dashboard" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open dashboard</a>
		</div>
	`, html.EscapeString(displayPlan(plan)), until, s.clientURL)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func displayPlan(plan string) string {
	if plan == "" {
		return plan
	}
	return strings.ToUpper(plan[:1]) + plan[1:]
}
