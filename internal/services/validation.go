package services

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	goa "goa.design/goa/v3/pkg"

	"fyno/internal/domain"
	apperrors "fyno/pkg/errors"
)

const (
	maxNameLength    = 100
	maxEmailLength   = 254
	maxPhoneLength   = 32
	maxMessageLength = 5000
)

// violations collects every problem with one request so the caller can fix
// them in a single round trip.
type violations struct {
	fields   []string
	messages []string
}

func (v *violations) add(field, format string, args ...any) {
	v.fields = append(v.fields, field)
	v.messages = append(v.messages, fmt.Sprintf(format, args...))
}

func (v *violations) err() *apperrors.AppError {
	if len(v.fields) == 0 {
		return nil
	}
	return apperrors.Validation(strings.Join(v.messages, "; "), v.fields...)
}

func (v *violations) requireText(field, value string, max int) {
	switch {
	case value == "":
		v.add(field, "%s is required", field)
	case utf8.RuneCountInString(value) > max:
		v.add(field, "%s must not exceed %d characters", field, max)
	}
}

func (v *violations) requireEmail(field, value string) {
	switch {
	case value == "":
		v.add(field, "%s is required", field)
	case utf8.RuneCountInString(value) > maxEmailLength:
		v.add(field, "%s must not exceed %d characters", field, maxEmailLength)
	case !isEmail(value):
		v.add(field, "%s must be a valid email address", field)
	}
}

// isInvisible reports control and format runes (NUL, zero-width space, ...).
// Line breaks and tabs are only kept in multi-line text.
func isInvisible(r rune) bool {
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}

// cleanLine drops invisible runes and trims surrounding whitespace.
func cleanLine(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if isInvisible(r) {
			return -1
		}
		return r
	}, s))
}

// cleanText is cleanLine for multi-line input: newlines and tabs survive.
func cleanText(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r == '\r' || isInvisible(r) {
			return -1
		}
		return r
	}, s))
}

// isEmail accepts a bare address: exactly one "@", non-empty local part and
// domain, no whitespace or invisible runes, and an address goa's email format accepts.
func isEmail(s string) bool {
	if strings.Count(s, "@") != 1 || strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || isInvisible(r)
	}) >= 0 {
		return false
	}
	local, domainPart, _ := strings.Cut(s, "@")
	if local == "" || domainPart == "" || strings.ContainsAny(s, "<>") {
		return false
	}
	return goa.ValidateFormat("email", s, goa.FormatEmail) == nil
}

// normalizeEmail trims and lower-cases an address for storage.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateContact(p *ContactSubmitPayload) (domain.ContactInquiry, *apperrors.AppError) {
	var v violations
	inquiry := domain.ContactInquiry{
		Name:    cleanLine(p.Name),
		Email:   normalizeEmail(p.Email),
		Message: cleanText(p.Message),
	}

	v.requireText("name", inquiry.Name, maxNameLength)
	v.requireEmail("email", inquiry.Email)

	if p.Phone != nil {
		if phone := cleanLine(*p.Phone); phone != "" {
			if utf8.RuneCountInString(phone) > maxPhoneLength {
				v.add("phone", "phone must not exceed %d characters", maxPhoneLength)
			}
			inquiry.Phone = &phone
		}
	}

	service := strings.TrimSpace(p.Service)
	if service == "" {
		v.add("service", "service is required")
	} else if c, ok := domain.ParseServiceCategory(service); ok {
		inquiry.Service = c
	} else {
		v.add("service", "service must be one of: %s", strings.Join(domain.ServiceCategoryNames(), ", "))
	}

	v.requireText("message", inquiry.Message, maxMessageLength)

	return inquiry, v.err()
}

func validateNewsletter(p *NewsletterSubscribePayload) (string, *apperrors.AppError) {
	var v violations
	email := normalizeEmail(p.Email)
	v.requireEmail("email", email)
	return email, v.err()
}
