package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fyno/internal/domain"
	"fyno/internal/logging"
	"fyno/internal/metrics"
)

const defaultSendTimeout = 15 * time.Second

// InquiryNotifier emails the staff inbox about each stored inquiry. Sending
// happens in the background and never affects the caller.
type InquiryNotifier struct {
	sender  EmailSender
	to      string
	timeout time.Duration
	logger  *logging.Logger
	wg      sync.WaitGroup
}

// NewInquiryNotifier sends to the given staff address.
func NewInquiryNotifier(sender EmailSender, to string, logger *logging.Logger) *InquiryNotifier {
	return &InquiryNotifier{
		sender:  sender,
		to:      to,
		timeout: defaultSendTimeout,
		logger:  logger.Named("notify"),
	}
}

// NotifyAsync starts a send with its own timeout. Failures are logged.
func (n *InquiryNotifier) NotifyAsync(inquiry domain.ContactInquiry) {
	if n == nil || n.sender == nil || n.to == "" {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		err := n.sender.Send(ctx, InquiryMessage(n.to, inquiry))
		metrics.RecordNotification(err)
		if err != nil {
			n.logger.Warn("inquiry notification failed", "inquiry_id", inquiry.ID, "error", err)
			return
		}
		n.logger.Debug("inquiry notification sent", "inquiry_id", inquiry.ID)
	}()
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (n *InquiryNotifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InquiryMessage renders the staff email for one inquiry.
func InquiryMessage(to string, inquiry domain.ContactInquiry) EmailMessage {
	phone := "not provided"
	if inquiry.Phone != nil && *inquiry.Phone != "" {
		phone = *inquiry.Phone
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A new inquiry was submitted on the website.\n\n")
	fmt.Fprintf(&b, "Inquiry: #%d\n", inquiry.ID)
	fmt.Fprintf(&b, "Name:    %s\n", inquiry.Name)
	fmt.Fprintf(&b, "Email:   %s\n", inquiry.Email)
	fmt.Fprintf(&b, "Phone:   %s\n", phone)
	fmt.Fprintf(&b, "Service: %s\n", inquiry.Service)
	fmt.Fprintf(&b, "Received: %s\n\n", inquiry.CreatedAt.UTC().Format(time.RFC1123))
	fmt.Fprintf(&b, "%s\n", inquiry.Message)

	return EmailMessage{
		To:      to,
		ToName:  "Fyno Team",
		Subject: headerSafe(fmt.Sprintf("New %s inquiry from %s", inquiry.Service, inquiry.Name)),
		Body:    b.String(),
	}
}

var headerReplacer = strings.NewReplacer("\r", " ", "\n", " ")

// headerSafe strips line breaks so user input cannot add mail headers.
func headerSafe(s string) string {
	return headerReplacer.Replace(s)
}
