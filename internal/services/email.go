package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/gymsuite/backend/internal/config"
	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/pkg/logger"
)

// EmailService sends transactional mail. With SMTP disabled it logs
// and returns nil so local setups work without a mail server.
type EmailService struct {
	smtp    config.SMTPConfig
	baseURL string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{smtp: cfg.SMTP, baseURL: strings.TrimRight(cfg.App.BaseURL, "/")}
}

func (s *EmailService) SendVerificationEmail(user *models.User, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Hi %s,</h2>", user.FirstName))
	sb.WriteString("<p>Thanks for signing up. Please confirm your email address to activate your account.</p>")
	sb.WriteString(fmt.Sprintf("<p><a href=\"%s\">Verify Email Address</a></p>", link))
	sb.WriteString("<p>If you did not create an account, no further action is required.</p>")
	sb.WriteString("</body></html>")

	return s.send([]string{user.Email}, "Verify your email address", sb.String())
}

func (s *EmailService) SendPasswordResetEmail(email, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s", s.baseURL, token, email)

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString("<h2>Password Reset</h2>")
	sb.WriteString("<p>You are receiving this email because we received a password reset request for your account.</p>")
	sb.WriteString(fmt.Sprintf("<p><a href=\"%s\">Reset Password</a></p>", link))
	sb.WriteString("<p>This link expires in one hour. If you did not request a password reset, no further action is required.</p>")
	sb.WriteString("</body></html>")

	return s.send([]string{email}, "Reset your password", sb.String())
}

func (s *EmailService) send(to []string, subject, body string) error {
	if !s.smtp.Enabled || s.smtp.Host == "" {
		logger.Infof("[Email] SMTP disabled, skipping %q to %v", subject, to)
		return nil
	}

	from := s.smtp.From
	if from == "" {
		from = s.smtp.Username
	}

	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(to, ","),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.smtp.Host, s.smtp.Port)

	var auth smtp.Auth
	if s.smtp.Username != "" && s.smtp.Password != "" {
		auth = smtp.PlainAuth("", s.smtp.Username, s.smtp.Password, s.smtp.Host)
	}

	var err error
	if s.smtp.UseTLS {
		err = s.sendTLS(addr, auth, from, to, message.String())
	} else {
		err = smtp.SendMail(addr, auth, from, to, []byte(message.String()))
	}

	if err != nil {
		logger.Errorf("[Email] Failed to send %q: %v", subject, err)
		return err
	}

	logger.Infof("[Email] Sent %q to %v", subject, to)
	return nil
}

func (s *EmailService) sendTLS(addr string, auth smtp.Auth, from string, to []string, message string) error {
	tlsConfig := &tls.Config{
		ServerName: s.smtp.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.smtp.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}

	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	if _, err = w.Write([]byte(message)); err != nil {
		return err
	}

	return w.Close()
}
