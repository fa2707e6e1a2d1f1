package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	goahttp "goa.design/goa/v3/http"

	"fyno/internal/services"
	apperrors "fyno/pkg/errors"
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Detail string   `json:"detail"`
	Fields []string `json:"fields,omitempty"`
}

const (
	malformedBodyMessage   = "request body must be a valid JSON object"
	unsupportedTypeMessage = "request body must be sent as application/json"
)

var errTrailingData = errors.New("unexpected data after JSON object")

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	res, ok := s.svc.Health.Check(r.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	s.encode(r.Context(), w, status, res)
}

func (s *server) submitContact(w http.ResponseWriter, r *http.Request) {
	var p services.ContactSubmitPayload
	if !s.decode(w, r, &p) {
		return
	}
	res, err := s.svc.Contact.Submit(r.Context(), &p)
	if err != nil {
		s.encodeError(r.Context(), w, err)
		return
	}
	s.encode(r.Context(), w, http.StatusCreated, res)
}

func (s *server) subscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var p services.NewsletterSubscribePayload
	if !s.decode(w, r, &p) {
		return
	}
	res, err := s.svc.Newsletter.Subscribe(r.Context(), &p)
	if err != nil {
		s.encodeError(r.Context(), w, err)
		return
	}
	s.encode(r.Context(), w, http.StatusCreated, res)
}

func (s *server) listStories(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Stories.List(r.Context())
	if err != nil {
		s.encodeError(r.Context(), w, err)
		return
	}
	s.encode(r.Context(), w, http.StatusOK, res)
}

func (s *server) listCatalog(w http.ResponseWriter, r *http.Request) {
	s.encode(r.Context(), w, http.StatusOK, s.svc.Catalog.List(r.Context()))
}

func (s *server) getCatalogEntry(mux goahttp.Muxer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.svc.Catalog.Get(r.Context(), mux.Vars(r)["slug"])
		if err != nil {
			s.encodeError(r.Context(), w, err)
			return
		}
		s.encode(r.Context(), w, http.StatusOK, res)
	}
}

// decode reads a single JSON object into v. Anything else is answered here
// (415, 413 or 400) and decode reports false.
func (s *server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if !isJSONContentType(r.Header.Get("Content-Type")) {
		s.encode(r.Context(), w, http.StatusUnsupportedMediaType, errorResponse{Detail: unsupportedTypeMessage})
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(v)
	if err == nil {
		var tail json.RawMessage
		switch tailErr := dec.Decode(&tail); {
		case errors.Is(tailErr, io.EOF):
			return true
		case tailErr != nil:
			err = tailErr
		default:
			err = errTrailingData
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.encode(r.Context(), w, http.StatusRequestEntityTooLarge, errorResponse{Detail: "request body is too large"})
		return false
	}
	if errors.Is(err, io.EOF) {
		s.encodeError(r.Context(), w, apperrors.Validation("request body is required"))
		return false
	}
	s.encodeError(r.Context(), w, apperrors.Validation(malformedBodyMessage))
	return false
}

// isJSONContentType accepts application/json, any +json type, and a missing
// header.
func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func (s *server) encode(ctx context.Context, w http.ResponseWriter, status int, v any) {
	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		s.logger.Ctx(ctx).Error("failed to encode response", "error", err)
	}
}

// encodeError maps service errors to status codes. Storage causes are logged
// by the services and never reach the client.
func (s *server) encodeError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		s.logger.Ctx(ctx).Error("unclassified error", "error", err)
		s.encode(ctx, w, http.StatusInternalServerError, errorResponse{Detail: services.StorageFailureMessage})
		return
	}

	switch appErr.Code {
	case apperrors.ErrCodeValidation:
		s.encode(ctx, w, http.StatusBadRequest, errorResponse{Detail: appErr.Message, Fields: appErr.Fields})
	case apperrors.ErrCodeNotFound:
		s.encode(ctx, w, http.StatusNotFound, errorResponse{Detail: appErr.Message})
	case apperrors.ErrCodeStorage:
		s.encode(ctx, w, http.StatusServiceUnavailable, errorResponse{Detail: services.StorageFailureMessage})
	default:
		s.logger.Ctx(ctx).Error("unexpected error code", "code", appErr.Code, "error", err)
		s.encode(ctx, w, http.StatusInternalServerError, errorResponse{Detail: services.StorageFailureMessage})
	}
}
