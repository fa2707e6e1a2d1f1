package services

import (
	"context"

	"fyno/internal/domain"
)

// ContactSubmitPayload is the contact form as posted by the site.
type ContactSubmitPayload struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Service string  `json:"service"`
	Message string  `json:"message"`
}

// ContactSubmitResult confirms a stored inquiry.
type ContactSubmitResult struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// NewsletterSubscribePayload is the footer sign-up form.
type NewsletterSubscribePayload struct {
	Email string `json:"email"`
}

// NewsletterSubscribeResult confirms a sign-up.
type NewsletterSubscribeResult struct {
	Message string `json:"message"`
}

// StoryResult is a client story as served to the site.
type StoryResult struct {
	ID             string `json:"id"`
	FounderName    string `json:"founder_name"`
	Company        string `json:"company"`
	Challenge      string `json:"challenge"`
	TurningPoint   string `json:"turning_point"`
	Transformation string `json:"transformation"`
	ServiceUsed    string `json:"service_used"`
}

// HealthResult reports service health.
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// InquiryStore persists contact inquiries.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, inquiry *domain.ContactInquiry) error
}

// SubscriptionStore persists newsletter sign-ups.
type SubscriptionStore interface {
	CreateSubscription(ctx context.Context, email string) (created bool, err error)
}

// StoryStore reads and seeds client stories.
type StoryStore interface {
	ListStories(ctx context.Context) ([]domain.ClientStory, error)
	SeedStories(ctx context.Context, stories []domain.ClientStory) (int, error)
	ReplaceStories(ctx context.Context, stories []domain.ClientStory) (int, error)
}

// StoryCache is an optional read-through cache for the story list.
type StoryCache interface {
	Get(ctx context.Context) (stories []domain.ClientStory, gen int64, ok bool, err error)
	Set(ctx context.Context, gen int64, stories []domain.ClientStory) error
	Invalidate(ctx context.Context) error
}

// Notifier is told about every stored inquiry.
type Notifier interface {
	NotifyAsync(inquiry domain.ContactInquiry)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
