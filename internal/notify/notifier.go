package notify

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Notifier delivers one rendered notice.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// Multi sends to every notifier and joins the failures.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, subject, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type EmailNotifier struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailNotifier(host string, port int, user, pass, from string, to ...string) *EmailNotifier {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &EmailNotifier{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		auth: auth,
		from: from,
		to:   to,
		send: smtp.SendMail,
	}
}

func (e *EmailNotifier) Notify(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.send(e.addr, e.auth, e.from, e.to, e.message(subject, body)); err != nil {
		return fmt.Errorf("email: %w", err)
	}
	return nil
}

func (e *EmailNotifier) message(subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(e.to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerLine.Replace(subject)))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(lineBreaks.Replace(body), "\n", "\r\n"))
	return []byte(b.String())
}

var (
	// headerLine folds any line break in a header value into a space.
	headerLine = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
	lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// MaxTelegramLen is the Bot API limit for one message.
const MaxTelegramLen = 4096

type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type TelegramNotifier struct {
	sender messageSender
	chatID int64
}

// NewTelegramNotifier builds a send-only client; no updates are polled.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramNotifier{sender: b, chatID: chatID}, nil
}

func (t *TelegramNotifier) Notify(ctx context.Context, subject, body string) error {
	text := "🔔 " + subject + "\n\n" + body
	if r := []rune(text); len(r) > MaxTelegramLen {
		text = string(r[:MaxTelegramLen-20]) + "\n\n... (truncated)"
	}

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := t.sender.SendMessage(cctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   text,
	}); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	return nil
}
