package memory

import (
	"context"

	"github.com/bookverse/bookverse-api/internal/application/auth"
	"github.com/bookverse/bookverse-api/internal/logger"
)

// NoopPublisher logs email events instead of publishing them. Dev fallback
// when RabbitMQ is unavailable.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishVerifyEmail(ctx context.Context, evt auth.VerifyEmailEvent) error {
	logger.WithCtx(ctx).Info().
		Str("email", evt.Email).
		Str("url", evt.URL).
		Msg("verify email event (noop publisher)")
	return nil
}

func (p *NoopPublisher) PublishPasswordReset(ctx context.Context, evt auth.PasswordResetEvent) error {
	logger.WithCtx(ctx).Info().
		Str("email", evt.Email).
		Str("url", evt.URL).
		Msg("password reset event (noop publisher)")
	return nil
}
