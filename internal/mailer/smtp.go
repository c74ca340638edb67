package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/storelab/review-gateway/internal/util"
)

// ErrBreakerOpen is returned without touching the network while the SMTP
// breaker is open; it lands in the affected order's outcome like any
// other send failure.
var ErrBreakerOpen = fmt.Errorf("smtp breaker open")

type SMTPOpts struct {
	Host           string
	Port           int
	Username       string // empty disables AUTH (dev mailboxes)
	Password       string
	From           string
	FromName       string
	PreviewURLBase string
	FailThreshold  int
	OpenForMs      int
}

// SMTP sends messages through a single SMTP endpoint, guarded by a
// circuit breaker.
type SMTP struct {
	addr        string
	host        string
	auth        smtp.Auth
	from        string
	fromName    string
	previewBase string
	br          *Breaker

	// seam for tests; defaults to smtp.SendMail
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(opts SMTPOpts) *SMTP {
	if opts.FailThreshold <= 0 {
		opts.FailThreshold = 3
	}

	if opts.OpenForMs <= 0 {
		opts.OpenForMs = 15000
	}

	var auth smtp.Auth
	if opts.Username != "" {
		auth = smtp.PlainAuth("", opts.Username, opts.Password, opts.Host)
	}

	return &SMTP{
		addr:        net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		host:        opts.Host,
		auth:        auth,
		from:        opts.From,
		fromName:    opts.FromName,
		previewBase: strings.TrimSuffix(opts.PreviewURLBase, "/"),
		br:          NewBreaker(opts.FailThreshold, time.Duration(opts.OpenForMs)*time.Millisecond),
		sendMail:    smtp.SendMail,
	}
}

// Send hands one message to the SMTP server. The context is accepted for
// interface symmetry; net/smtp offers no cancellation, so the transport
// relies on the server connection timing out.
func (s *SMTP) Send(_ context.Context, msg Message) (Receipt, error) {
	if !s.br.TryAcquire() {
		return Receipt{}, ErrBreakerOpen
	}

	id := util.NewULID()
	raw := s.buildMessage(id, msg)

	if err := s.sendMail(s.addr, s.auth, s.from, []string{msg.To}, raw); err != nil {
		s.br.OnFailure()
		return Receipt{}, fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}

	s.br.OnSuccess()

	r := Receipt{MessageID: id}
	if s.previewBase != "" {
		r.PreviewURL = s.previewBase + "/" + id
	}

	return r, nil
}

func (s *SMTP) buildMessage(id string, msg Message) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.fromName, s.from)
	fmt.Fprintf(&b, "To: %s <%s>\r\n", msg.ToName, msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", id, s.host)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Text)

	return []byte(b.String())
}
