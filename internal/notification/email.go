package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"mime"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/bher20/evtariff/internal/config"
)

// NewEmail returns the email channel for cfg.Provider, or nil when email is
// disabled.
func NewEmail(cfg config.EmailConfig) (Channel, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "sendgrid":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("sendgrid: api key is required")
		}
		return &SendGrid{cfg: cfg}, nil
	case "smtp":
		if cfg.Host == "" {
			return nil, fmt.Errorf("smtp: host is required")
		}
		return &SMTP{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}

func htmlBody(e CheapestChanged) string {
	var b strings.Builder
	b.WriteString("<h2>" + html.EscapeString(e.Subject()) + "</h2>\n<ol>\n")
	for _, t := range e.Ranking {
		fmt.Fprintf(&b, "<li>%s: %s</li>\n", html.EscapeString(t.Name), html.EscapeString(formatCost(t.AnnualCost)))
	}
	b.WriteString("</ol>\n")
	return b.String()
}

type SendGrid struct {
	cfg config.EmailConfig
}

func (s *SendGrid) Name() string { return "email:sendgrid" }

func (s *SendGrid) Send(ctx context.Context, e CheapestChanged) error {
	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromAddress)
	to := mail.NewEmail("", s.cfg.To)
	message := mail.NewSingleEmail(from, e.Subject(), to, e.Text(), htmlBody(e))
	client := sendgrid.NewSendClient(s.cfg.APIKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: %d %s", resp.StatusCode, resp.Body)
	}
	return nil
}

type SMTP struct {
	cfg config.EmailConfig
}

func (s *SMTP) Name() string { return "email:smtp" }

func (s *SMTP) message(e CheapestChanged) []byte {
	return []byte(fmt.Sprintf("From: %s <%s>\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
		"\r\n"+
		"%s\r\n", mime.QEncoding.Encode("utf-8", s.cfg.FromName), s.cfg.FromAddress, s.cfg.To,
		mime.QEncoding.Encode("utf-8", e.Subject()), htmlBody(e)))
}

func (s *SMTP) Send(ctx context.Context, e CheapestChanged) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	msg := s.message(e)

	if s.cfg.Encryption == "" || s.cfg.Encryption == "none" {
		var auth smtp.Auth
		if s.cfg.Username != "" {
			auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		}
		return smtp.SendMail(addr, auth, s.cfg.FromAddress, []string{s.cfg.To}, msg)
	}

	var c *smtp.Client
	if s.cfg.Encryption == "ssl" {
		conn, err := (&tls.Dialer{Config: &tls.Config{ServerName: s.cfg.Host}}).DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		if c, err = smtp.NewClient(conn, s.cfg.Host); err != nil {
			conn.Close()
			return err
		}
	} else {
		var err error
		if c, err = smtp.Dial(addr); err != nil {
			return err
		}
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
				c.Close()
				return err
			}
		}
	}
	defer c.Quit()

	if s.cfg.Username != "" && s.cfg.Password != "" {
		if err := c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err := c.Mail(s.cfg.FromAddress); err != nil {
		return err
	}
	if err := c.Rcpt(s.cfg.To); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
