package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"fyno/internal/logging"
	"fyno/internal/metrics"
)

const newsletterWelcomeMessage = "Welcome to the Fyno family!"

// NewsletterService manages newsletter sign-ups. Signing up twice with the
// same address succeeds both times and stores one subscription.
type NewsletterService struct {
	store  SubscriptionStore
	logger *logging.Logger
}

func NewNewsletterService(store SubscriptionStore, logger *logging.Logger) *NewsletterService {
	return &NewsletterService{store: store, logger: logger.Named("newsletter")}
}

// Subscribe validates and stores an address.
func (s *NewsletterService) Subscribe(ctx context.Context, p *NewsletterSubscribePayload) (*NewsletterSubscribeResult, error) {
	ctx, span := tracer.Start(ctx, "newsletter.subscribe")
	defer span.End()
	log := s.logger.Ctx(ctx)

	email, verr := validateNewsletter(p)
	if verr != nil {
		log.Info("newsletter sign-up rejected", "fields", verr.Fields)
		return nil, validationFailure(span, "newsletter", verr)
	}

	created, err := s.store.CreateSubscription(ctx, email)
	if err != nil {
		log.Error("failed to store newsletter subscription", "error", err)
		return nil, storageFailure(span, "newsletter", err)
	}

	span.SetAttributes(attribute.Bool("fyno.subscription_created", created))
	metrics.RecordNewsletterSubscription(created)
	log.Info("newsletter sign-up accepted", "email", email, "new", created)

	return &NewsletterSubscribeResult{Message: newsletterWelcomeMessage}, nil
}
