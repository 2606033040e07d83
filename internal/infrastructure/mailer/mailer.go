package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/pkg/config"
	"github.com/EddyKilonzo/shopie/pkg/logger"
)

// SMTPMailer sends order-confirmation emails over SMTP via gomail.
// With an empty SMTP host it runs in dry mode: messages are logged, not sent,
// so local development does not need a mail server.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logger.Logger
}

// NewSMTPMailer builds the mailer from configuration.
func NewSMTPMailer(cfg config.SMTPConfig, log *logger.Logger) *SMTPMailer {
	var dialer *gomail.Dialer
	if cfg.Host != "" {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return &SMTPMailer{dialer: dialer, from: cfg.From, log: log}
}

// SendOrderConfirmation delivers the confirmation for one order.
func (m *SMTPMailer) SendOrderConfirmation(to, userName string, summary entity.OrderSummary) error {
	subject := "Order Confirmation"
	body := buildBody(userName, summary)

	if m.dialer == nil {
		m.log.Info().
			Str("to", to).
			Str("order_id", summary.OrderID).
			Msg("SMTP not configured, skipping order confirmation email")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}
	return nil
}

func buildBody(userName string, summary entity.OrderSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", userName)
	fmt.Fprintf(&b, "Thanks for your order %s. Here is what you bought:\n\n", summary.OrderID)
	for _, item := range summary.Items {
		fmt.Fprintf(&b, "  %d x %s = %s\n", item.Quantity, item.ProductName, item.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n\nShopie\n", summary.TotalAmount.StringFixed(2))
	return b.String()
}
