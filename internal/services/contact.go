package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"fyno/internal/logging"
	"fyno/internal/metrics"
)

const contactReceivedMessage = "Message received! We'll reach out within 24 hours."

// ContactService records contact inquiries from the site.
type ContactService struct {
	store    InquiryStore
	notifier Notifier
	logger   *logging.Logger
}

// NewContactService creates a new contact service. notifier may be nil.
func NewContactService(store InquiryStore, notifier Notifier, logger *logging.Logger) *ContactService {
	return &ContactService{
		store:    store,
		notifier: notifier,
		logger:   logger.Named("contact"),
	}
}

// Submit validates and stores an inquiry, then tells staff about it in the
// background. Nothing is stored when validation fails.
func (s *ContactService) Submit(ctx context.Context, p *ContactSubmitPayload) (*ContactSubmitResult, error) {
	ctx, span := tracer.Start(ctx, "contact.submit")
	defer span.End()
	log := s.logger.Ctx(ctx)

	inquiry, verr := validateContact(p)
	if verr != nil {
		log.Info("contact inquiry rejected", "fields", verr.Fields)
		return nil, validationFailure(span, "contact", verr)
	}
	span.SetAttributes(attribute.String("fyno.service", string(inquiry.Service)))

	if err := s.store.CreateInquiry(ctx, &inquiry); err != nil {
		log.Error("failed to store contact inquiry", "error", err)
		return nil, storageFailure(span, "contact", err)
	}

	span.SetAttributes(attribute.Int("fyno.inquiry_id", int(inquiry.ID)))
	log.Info("contact inquiry stored", "inquiry_id", inquiry.ID, "service", inquiry.Service, "email", inquiry.Email)
	metrics.RecordContactSubmission(string(inquiry.Service))

	if s.notifier != nil {
		s.notifier.NotifyAsync(inquiry)
	}

	return &ContactSubmitResult{
		ID:      int(inquiry.ID),
		Message: contactReceivedMessage,
	}, nil
}
