// Package notifier sends approval-workflow emails. Delivery is best
// effort: callers log failures and carry on, a lost email never blocks
// generation or publishing.
package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/smtp"
	"strings"

	"threadflow/internal/domain"
)

const previewLength = 200

// Config holds SMTP settings and the addresses involved.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	// To is the reviewer's address.
	To string
	// BaseURL is the app's public base URL, used for approve/reject links.
	BaseURL string
}

// EmailNotifier delivers review requests and publish confirmations over SMTP.
type EmailNotifier struct {
	config Config
	auth   smtp.Auth
	logger *slog.Logger
}

// NewEmailNotifier creates a notifier. It returns an error when the
// configuration is too incomplete to ever deliver mail.
func NewEmailNotifier(config Config, logger *slog.Logger) (*EmailNotifier, error) {
	if config.Host == "" || config.To == "" {
		return nil, fmt.Errorf("notifier: smtp host and recipient are required")
	}

	var auth smtp.Auth
	if config.User != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.User, config.Password, config.Host)
	}

	return &EmailNotifier{
		config: config,
		auth:   auth,
		logger: logger,
	}, nil
}

// NotifyPending asks the reviewer to approve or reject a new draft.
func (n *EmailNotifier) NotifyPending(ctx context.Context, draft *domain.Draft) error {
	preview := draft.Text
	if runes := []rune(preview); len(runes) > previewLength {
		preview = string(runes[:previewLength]) + "..."
	}

	approveURL := fmt.Sprintf("%s/api/posts/%s/approve", strings.TrimRight(n.config.BaseURL, "/"), draft.ID)
	rejectURL := fmt.Sprintf("%s/api/posts/%s/reject", strings.TrimRight(n.config.BaseURL, "/"), draft.ID)

	subject := fmt.Sprintf("Post ready for review (%s)", draft.Mode)
	body := fmt.Sprintf(`<html><body>
<h2>New post awaiting approval</h2>
<p><em>%s</em></p>
<blockquote style="border-left:3px solid #ccc;padding-left:1em;white-space:pre-wrap">%s</blockquote>
<p>
  <a href="%s">Approve</a> &nbsp;|&nbsp; <a href="%s">Reject</a>
</p>
<p style="color:#888">Full post: %d characters</p>
</body></html>`,
		html.EscapeString(preview),
		html.EscapeString(draft.Text),
		approveURL, rejectURL,
		len([]rune(draft.Text)))

	if err := n.send(ctx, subject, body); err != nil {
		return fmt.Errorf("send review request: %w", err)
	}
	n.logger.Info("review request sent", "draft_id", draft.ID, "to", n.config.To)
	return nil
}

// ConfirmPublished tells the reviewer a draft went live.
func (n *EmailNotifier) ConfirmPublished(ctx context.Context, draft *domain.Draft, threadURL string) error {
	subject := "Post published to Threads"
	link := ""
	if threadURL != "" {
		link = fmt.Sprintf(`<p><a href="%s">View on Threads</a></p>`, threadURL)
	}
	body := fmt.Sprintf(`<html><body>
<h2>Published</h2>
<blockquote style="border-left:3px solid #ccc;padding-left:1em;white-space:pre-wrap">%s</blockquote>
%s
</body></html>`,
		html.EscapeString(draft.Text), link)

	if err := n.send(ctx, subject, body); err != nil {
		return fmt.Errorf("send publish confirmation: %w", err)
	}
	n.logger.Info("publish confirmation sent", "draft_id", draft.ID, "to", n.config.To)
	return nil
}

func (n *EmailNotifier) send(_ context.Context, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%s", n.config.Host, n.config.Port)
	from := n.config.User
	if from == "" {
		from = n.config.To
	}

	msg := []string{
		fmt.Sprintf("From: %s", sanitizeHeader(from)),
		fmt.Sprintf("To: %s", sanitizeHeader(n.config.To)),
		fmt.Sprintf("Subject: %s", sanitizeHeader(subject)),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		htmlBody,
	}

	return smtp.SendMail(addr, n.auth, from, []string{n.config.To}, []byte(strings.Join(msg, "\r\n")))
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}
