package driven

import (
	"context"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// EmailTransport delivers rendered invitations.
// This is an optional service - when nil, invitations are left for manual sending.
type EmailTransport interface {
	// Send delivers the message to msg.To.
	Send(ctx context.Context, msg domain.EmailData) error
}
