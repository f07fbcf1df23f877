package notify

import (
	"bytes"
	"context"
	"fmt"
	"html"

	"parttrack/config"

	"gopkg.in/gomail.v2"
)

// OverShipLine is one BOM line that was shipped beyond its on-hand stock.
type OverShipLine struct {
	Description string
	Requested   int
	Applied     int
}

// OverShipment is reported after a shipment commits with clamped lines.
type OverShipment struct {
	JobNumber   string
	ContainerID string
	ShippedBy   string
	Lines       []OverShipLine
}

type Notifier interface {
	OverShipped(ctx context.Context, report OverShipment) error
}

// New returns a mail notifier when SMTP is configured, otherwise Nop.
func New(cfg config.MailConfig) Notifier {
	if !cfg.Enabled() {
		return Nop{}
	}
	return NewMailNotifier(cfg)
}

type Nop struct{}

func (Nop) OverShipped(context.Context, OverShipment) error { return nil }

type MailNotifier struct {
	dialer *gomail.Dialer
	from   string
	to     []string
}

func NewMailNotifier(cfg config.MailConfig) *MailNotifier {
	return &MailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		to:     cfg.To,
	}
}

func (m *MailNotifier) OverShipped(ctx context.Context, report OverShipment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(m.message(report)); err != nil {
		return fmt.Errorf("send over-shipment mail for job %s: %w", report.JobNumber, err)
	}
	return nil
}

func (m *MailNotifier) message(report OverShipment) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", fmt.Sprintf("Over-shipment on job %s", report.JobNumber))
	msg.SetBody("text/html", overShipmentBody(report))
	return msg
}

func overShipmentBody(report OverShipment) string {
	var b bytes.Buffer
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "<h3>Container %s shipped more than was on hand</h3>\n", html.EscapeString(report.ContainerID))
	fmt.Fprintf(&b, "<p>Job: <strong>%s</strong>", html.EscapeString(report.JobNumber))
	if report.ShippedBy != "" {
		fmt.Fprintf(&b, " &middot; shipped by %s", html.EscapeString(report.ShippedBy))
	}
	b.WriteString("</p>\n<table border=\"1\" cellpadding=\"4\">\n")
	b.WriteString("<tr><th>Description</th><th>Shipped</th><th>Deducted from on-hand</th></tr>\n")
	for _, l := range report.Lines {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%d</td></tr>\n", html.EscapeString(l.Description), l.Requested, l.Applied)
	}
	b.WriteString("</table>\n<p>On-hand was set to zero. Please recount these parts.</p>\n")
	b.WriteString("<p>This is an auto-generated email. Please do not reply.</p>\n</body></html>\n")
	return b.String()
}
