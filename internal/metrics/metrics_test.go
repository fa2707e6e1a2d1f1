package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordNewsletterSubscription(t *testing.T) {
	beforeNew := testutil.ToFloat64(newsletterSubscriptionsTotal.WithLabelValues("new"))
	beforeDup := testutil.ToFloat64(newsletterSubscriptionsTotal.WithLabelValues("duplicate"))

	RecordNewsletterSubscription(true)
	RecordNewsletterSubscription(false)
	RecordNewsletterSubscription(false)

	assert.Equal(t, beforeNew+1, testutil.ToFloat64(newsletterSubscriptionsTotal.WithLabelValues("new")))
	assert.Equal(t, beforeDup+2, testutil.ToFloat64(newsletterSubscriptionsTotal.WithLabelValues("duplicate")))
}

func TestRecordValidationFailure_PerField(t *testing.T) {
	beforeName := testutil.ToFloat64(validationFailuresTotal.WithLabelValues("contact", "name"))
	beforeBody := testutil.ToFloat64(validationFailuresTotal.WithLabelValues("contact", "body"))

	RecordValidationFailure("contact", []string{"name", "email"})
	RecordValidationFailure("contact", nil)

	assert.Equal(t, beforeName+1, testutil.ToFloat64(validationFailuresTotal.WithLabelValues("contact", "name")))
	assert.Equal(t, beforeBody+1, testutil.ToFloat64(validationFailuresTotal.WithLabelValues("contact", "body")))
}

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(dbQueriesTotal.WithLabelValues("list_stories", "error"))

	RecordDBQuery("list_stories", 3*time.Millisecond, errors.New("down"))

	assert.Equal(t, before+1, testutil.ToFloat64(dbQueriesTotal.WithLabelValues("list_stories", "error")))
}

func TestPrometheusMiddleware_RecordsStatus(t *testing.T) {
	h := PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/newsletter", "201"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/newsletter", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/newsletter", "201")))
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/api/contact", endpointLabel("/api/contact"))
	assert.Equal(t, "/api/services/{slug}", endpointLabel("/api/services/gst"))
	assert.Equal(t, "other", endpointLabel("/wp-admin.php"))
}
