package domain

// CatalogService is one entry of the public service catalogue.
type CatalogService struct {
	Slug           string   `json:"id" yaml:"slug"`
	Title          string   `json:"title" yaml:"title"`
	Hero           string   `json:"hero" yaml:"hero"`
	Problem        string   `json:"problem" yaml:"problem"`
	Solution       string   `json:"solution" yaml:"solution"`
	Description    string   `json:"description" yaml:"description"`
	Features       []string `json:"features" yaml:"features"`
	Narrative      string   `json:"narrative" yaml:"narrative"`
	Transformation string   `json:"transformation" yaml:"transformation"`
	Outcome        string   `json:"outcome" yaml:"outcome"`
	Includes       []string `json:"includes" yaml:"includes"`
}
