package domain

import "strings"

// ServiceCategory is the closed set of topics a contact inquiry can be about.
type ServiceCategory string

const (
	ServiceVirtualCFO          ServiceCategory = "Virtual CFO"
	ServiceGSTFiling           ServiceCategory = "GST Filing"
	ServiceCompanyRegistration ServiceCategory = "Company Registration"
	ServiceIncomeTax           ServiceCategory = "Income Tax"
	ServiceROCCompliance       ServiceCategory = "ROC Compliance"
	ServiceAudit               ServiceCategory = "Audit"
	ServiceOther               ServiceCategory = "Other"
)

// ServiceCategories lists every accepted category in form order; Other is last.
var ServiceCategories = []ServiceCategory{
	ServiceVirtualCFO,
	ServiceGSTFiling,
	ServiceCompanyRegistration,
	ServiceIncomeTax,
	ServiceROCCompliance,
	ServiceAudit,
	ServiceOther,
}

var catalogSlugs = map[ServiceCategory]string{
	ServiceVirtualCFO:          "virtual-cfo",
	ServiceGSTFiling:           "gst",
	ServiceCompanyRegistration: "registration",
	ServiceIncomeTax:           "income-tax",
	ServiceROCCompliance:       "roc-compliance",
	ServiceAudit:               "audit",
}

// ParseServiceCategory matches s against the known categories, ignoring case
// and surrounding whitespace.
func ParseServiceCategory(s string) (ServiceCategory, bool) {
	s = strings.TrimSpace(s)
	for _, c := range ServiceCategories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Slug returns the catalogue slug for the category, or "" for Other.
func (c ServiceCategory) Slug() string {
	return catalogSlugs[c]
}

// ServiceCategoryNames returns the category names as plain strings.
func ServiceCategoryNames() []string {
	names := make([]string, len(ServiceCategories))
	for i, c := range ServiceCategories {
		names[i] = string(c)
	}
	return names
}
