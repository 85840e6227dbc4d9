// Package smtpalert delivers the end-of-run blacklist alert by mail, one
// message per configured recipient.
package smtpalert

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"bytemomo/dnsblwatch/internal/domain"
)

const subject = "DNS Block List Alert"

// transient dial/handshake failures are retried a couple of times; permanent
// SMTP rejections come back to the caller on the first attempt that sees them.
const maxRetries = 2

type Mailer struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

// Send mails the listing summary to every recipient and reports per-recipient
// results. The caller decides what to do with failures; Send never aborts the
// remaining recipients because of an earlier one.
func (m *Mailer) Send(listed []domain.Listing) []domain.Delivery {
	body := renderBody(listed)
	addr := net.JoinHostPort(m.Host, strconv.Itoa(m.Port))

	deliveries := make([]domain.Delivery, 0, len(m.Recipients))
	for _, recipient := range m.Recipients {
		msg := buildMessage(m.From, recipient, subject, body)
		err := m.deliver(addr, recipient, msg)
		deliveries = append(deliveries, domain.Delivery{Recipient: recipient, Err: err})
	}
	return deliveries
}

func (m *Mailer) deliver(addr, recipient, msg string) error {
	var auth sasl.Client
	if m.Username != "" {
		auth = sasl.NewPlainClient("", m.Username, m.Password)
	}

	send := func() error {
		return smtp.SendMail(addr, auth, m.From, []string{recipient}, strings.NewReader(msg))
	}
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries)
	if err := backoff.Retry(send, policy); err != nil {
		return fmt.Errorf("send to %s via %s: %w", recipient, addr, err)
	}
	return nil
}

func renderBody(listed []domain.Listing) string {
	var b strings.Builder
	b.WriteString("The following IP addresses were found on one or more DNS blacklists:\n\n")
	for _, item := range listed {
		fmt.Fprintf(&b, "%s ===> %s\n", item.IP, strings.Join(item.Zones, ", "))
	}
	return b.String()
}

func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return b.String()
}
