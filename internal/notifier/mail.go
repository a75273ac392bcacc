package notifier

import (
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pfrederiksen/frontdesk-watch/internal/appointment"
)

// Environment keys for the mail relay configuration. All four required
// keys must be present for mail to function.
const (
	EnvMailSender    = "APPT_MAIL_SENDER"
	EnvMailRecipient = "APPT_MAIL_RECIPIENT"
	EnvMailServer    = "APPT_MAIL_SMTP_SERVER"
	EnvMailPort      = "APPT_MAIL_SMTP_PORT"
	EnvMailUser      = "APPT_MAIL_SMTP_USER"
	EnvMailPassword  = "APPT_MAIL_SMTP_PASSWORD"
)

// sendMail is swapped out in tests; smtp.SendMail performs the
// EHLO/STARTTLS/AUTH/send sequence against the relay.
var sendMail = smtp.SendMail

// MailConfig holds the mail relay settings, read from the environment.
type MailConfig struct {
	Sender    string `env:"APPT_MAIL_SENDER"`
	Recipient string `env:"APPT_MAIL_RECIPIENT"`
	Server    string `env:"APPT_MAIL_SMTP_SERVER"`
	Port      int    `env:"APPT_MAIL_SMTP_PORT" env-default:"587"`
	Username  string `env:"APPT_MAIL_SMTP_USER"`
	Password  string `env:"APPT_MAIL_SMTP_PASSWORD"`
}

// LoadMailConfig reads the mail configuration from the environment. The
// relay username falls back to the sender address when unset.
func LoadMailConfig() (MailConfig, error) {
	var cfg MailConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return MailConfig{}, fmt.Errorf("reading mail environment: %w", err)
	}
	if cfg.Username == "" {
		cfg.Username = cfg.Sender
	}
	return cfg, nil
}

// MissingKeys returns the names of required environment keys that are not
// set. An empty result means mail can be sent.
func (c MailConfig) MissingKeys() []string {
	var missing []string
	for _, kv := range []struct {
		key   string
		value string
	}{
		{EnvMailSender, c.Sender},
		{EnvMailRecipient, c.Recipient},
		{EnvMailServer, c.Server},
		{EnvMailPassword, c.Password},
	} {
		if kv.value == "" {
			missing = append(missing, kv.key)
		}
	}
	return missing
}

// MailNotifier sends availability summaries over an authenticated,
// TLS-upgraded SMTP session to a single recipient.
type MailNotifier struct {
	cfg MailConfig
}

// NewMailNotifier creates a mail notifier from the given configuration.
// Returns an error naming the missing environment keys if the
// configuration is incomplete.
func NewMailNotifier(cfg MailConfig) (*MailNotifier, error) {
	if missing := cfg.MissingKeys(); len(missing) > 0 {
		return nil, fmt.Errorf("missing mail configuration: %s", strings.Join(missing, ", "))
	}
	return &MailNotifier{cfg: cfg}, nil
}

// Name implements Notifier.
func (n *MailNotifier) Name() string {
	return "mail"
}

// Notify sends one plain-text message summarizing the check result.
func (n *MailNotifier) Notify(res *appointment.CheckResult) error {
	msg := n.buildMessage(res)
	addr := net.JoinHostPort(n.cfg.Server, strconv.Itoa(n.cfg.Port))
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Server)

	if err := sendMail(addr, auth, n.cfg.Sender, []string{n.cfg.Recipient}, msg); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}
	return nil
}

// buildMessage assembles the RFC 5322 message bytes.
func (n *MailNotifier) buildMessage(res *appointment.CheckResult) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.cfg.Sender)
	fmt.Fprintf(&b, "To: %s\r\n", n.cfg.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(Summary(res))
	return []byte(b.String())
}
