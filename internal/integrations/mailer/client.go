package mailer

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// sendFunc сигнатура smtp.SendMail
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Client отправляет письма через SMTP
type Client struct {
	cfg  Config
	send sendFunc
	now  func() time.Time
	log  Logger
}

// NewClient создает новый экземпляр клиента SMTP
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		cfg:  cfg,
		send: smtp.SendMail,
		now:  time.Now,
		log:  log,
	}
}

// SendPaymentConfirmation отправляет письмо о платеже
func (c *Client) SendPaymentConfirmation(ctx context.Context, m *PaymentConfirmation) error {
	if c.cfg.Host == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	html, err := renderHTML(m)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	msg := c.buildMessage(m.To, subjectFor(m), html)

	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
	if err := c.send(addr, auth, c.sender(), []string{m.To}, msg); err != nil {
		c.log.Error("Failed to send payment confirmation to %s: %v", m.To, err)
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	c.log.Info("Payment confirmation sent to %s for booking %s", m.To, m.BookingNumber)
	return nil
}

func (c *Client) sender() string {
	if c.cfg.From != "" {
		return c.cfg.From
	}
	return c.cfg.Username
}

func (c *Client) buildMessage(to, subject, html string) []byte {
	from := c.sender()
	if c.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", c.cfg.FromName), from)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + c.now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	return []byte(b.String())
}
