// Package design describes the public HTTP API. The transport in
// internal/server implements these routes and shapes by hand on the goa
// runtime.
package design

import (
	. "goa.design/goa/v3/dsl"

	"fyno/internal/domain"
)

var _ = API("fyno", func() {
	Title("Fyno API")
	Description("Data API behind the Fyno Financial Services website")
	Version("1.0.0")
	Server("api", func() {
		Host("localhost", func() {
			URI("http://localhost:8000")
		})
	})
})

// serviceCategoryEnum mirrors the categories the contact form accepts.
var serviceCategoryEnum = func() []any {
	names := domain.ServiceCategoryNames()
	enum := make([]any, len(names))
	for i, n := range names {
		enum[i] = n
	}
	return enum
}()

// Common error types
var ErrorDetail = Type("ErrorDetail", func() {
	Description("Error body returned with every non-2xx status")
	Attribute("detail", String, "Human readable description", func() {
		Example("email must be a valid email address")
	})
	Attribute("fields", ArrayOf(String), "Offending request fields (validation errors only)", func() {
		Example([]string{"email"})
	})
	Required("detail")
})

// Health check
var _ = Service("health", func() {
	Description("Health check service")
	Error("unavailable", ErrorDetail)

	Method("check", func() {
		Result(HealthResult)
		HTTP(func() {
			GET("/health")
			Response(StatusOK)
			Response("unavailable", StatusServiceUnavailable)
		})
	})
})

var HealthResult = ResultType("HealthResult", func() {
	Attribute("status", String, "Service status", func() {
		Enum("healthy", "unhealthy")
		Example("healthy")
	})
	Attribute("service", String, "Service name", func() {
		Example("Fyno API")
	})
	Required("status", "service")
})

// Contact service
var _ = Service("contact", func() {
	Description("Contact form submissions")
	Error("bad_request", ErrorDetail)
	Error("unavailable", ErrorDetail)

	Method("submit", func() {
		Description("Record a contact inquiry")
		Payload(ContactSubmitPayload)
		Result(ContactSubmitResult)
		HTTP(func() {
			POST("/api/contact")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
			Response("unavailable", StatusServiceUnavailable)
		})
	})
})

var ContactSubmitPayload = Type("ContactSubmitPayload", func() {
	Attribute("name", String, "Full name", func() {
		MinLength(1)
		MaxLength(100)
		Example("Priya Sharma")
	})
	Attribute("email", String, "Email address", func() {
		Format(FormatEmail)
		Example("priya@example.com")
	})
	Attribute("phone", String, "Phone number (optional)", func() {
		MaxLength(32)
	})
	Attribute("service", String, "Service the inquiry is about", func() {
		Enum(serviceCategoryEnum...)
		Example("GST Filing")
	})
	Attribute("message", String, "Message", func() {
		MinLength(1)
		MaxLength(5000)
		Example("We need help with our quarterly GST returns.")
	})
	Required("name", "email", "service", "message")
})

var ContactSubmitResult = ResultType("ContactSubmitResult", func() {
	Attribute("id", Int, "Contact inquiry ID")
	Attribute("message", String, "Success message", func() {
		Example("Message received! We'll reach out within 24 hours.")
	})
	Required("id", "message")
})

// Newsletter service
var _ = Service("newsletter", func() {
	Description("Newsletter sign-ups. Subscribing an address twice succeeds.")
	Error("bad_request", ErrorDetail)
	Error("unavailable", ErrorDetail)

	Method("subscribe", func() {
		Payload(func() {
			Attribute("email", String, "Email address", func() {
				Format(FormatEmail)
				Example("reader@example.com")
			})
			Required("email")
		})
		Result(NewsletterSubscribeResult)
		HTTP(func() {
			POST("/api/newsletter")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
			Response("unavailable", StatusServiceUnavailable)
		})
	})
})

var NewsletterSubscribeResult = ResultType("NewsletterSubscribeResult", func() {
	Attribute("message", String, "Success message", func() {
		Example("Welcome to the Fyno family!")
	})
	Required("message")
})

// Stories service
var _ = Service("stories", func() {
	Description("Client success stories, in seed order")
	Error("unavailable", ErrorDetail)

	Method("list", func() {
		Result(ArrayOf(StoryResult))
		HTTP(func() {
			GET("/api/stories")
			Response(StatusOK)
			Response("unavailable", StatusServiceUnavailable)
		})
	})
})

var StoryResult = ResultType("StoryResult", func() {
	Attribute("id", String, "Story ID", func() {
		Format(FormatUUID)
	})
	Attribute("founder_name", String, "Founder")
	Attribute("company", String, "Company")
	Attribute("challenge", String, "Where the business started")
	Attribute("turning_point", String, "What changed")
	Attribute("transformation", String, "Where the business is now")
	Attribute("service_used", String, "Service that helped")
	Required("id", "founder_name", "company", "challenge", "turning_point", "transformation", "service_used")
})

// Service catalogue
var _ = Service("catalog", func() {
	Description("The fixed service catalogue")
	Error("not_found", ErrorDetail)

	Method("list", func() {
		Result(ArrayOf(CatalogEntry))
		HTTP(func() {
			GET("/api/services")
			Response(StatusOK)
		})
	})

	Method("get", func() {
		Payload(func() {
			Attribute("slug", String, "Catalogue slug", func() {
				Example("gst")
			})
			Required("slug")
		})
		Result(CatalogEntry)
		HTTP(func() {
			GET("/api/services/{slug}")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
		})
	})
})

var CatalogEntry = ResultType("CatalogEntry", func() {
	Attribute("id", String, "Slug", func() {
		Example("virtual-cfo")
	})
	Attribute("title", String)
	Attribute("hero", String)
	Attribute("problem", String)
	Attribute("solution", String)
	Attribute("description", String)
	Attribute("features", ArrayOf(String))
	Attribute("narrative", String)
	Attribute("transformation", String)
	Attribute("outcome", String)
	Attribute("includes", ArrayOf(String))
	Required("id", "title")
})
