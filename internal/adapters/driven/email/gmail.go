package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/google"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Ensure GmailTransport implements the interface.
var _ driven.EmailTransport = (*GmailTransport)(nil)

// GmailTransport sends mail as the authorised user via users.messages.send.
type GmailTransport struct {
	svc     *gmail.Service
	limiter *google.RateLimiter
	now     func() time.Time
}

// NewGmailTransport creates a Gmail client. Callers pass credentials as
// client options, normally from google.ClientOptions.
func NewGmailTransport(ctx context.Context, opts ...option.ClientOption) (*GmailTransport, error) {
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &GmailTransport{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceGmail),
		now:     time.Now,
	}, nil
}

// Send delivers msg.
func (g *GmailTransport) Send(ctx context.Context, msg domain.EmailData) error {
	data, err := compose("", msg, g.now())
	if err != nil {
		return err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	sent, err := g.svc.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(data),
	}).Context(ctx).Do()
	if err != nil {
		return google.WrapError(err, domain.ErrEmailUnavailable)
	}

	logger.Debug("gmail: sent invitation to %s (message %s)", msg.To, sent.Id)
	return nil
}
