// Package seed loads the out-of-band content served by the API: client
// stories and the service catalogue. Default sets are embedded in the binary.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"fyno/internal/domain"
)

//go:embed stories.yaml
var defaultStories []byte

//go:embed catalog.yaml
var defaultCatalog []byte

type storiesFile struct {
	Stories []domain.ClientStory `yaml:"stories"`
}

type catalogFile struct {
	Services []domain.CatalogService `yaml:"services"`
}

// LoadStories decodes a stories document. Positions follow document order.
func LoadStories(r io.Reader) ([]domain.ClientStory, error) {
	var doc storiesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode stories: %w", err)
	}

	seen := make(map[string]bool, len(doc.Stories))
	for i := range doc.Stories {
		s := &doc.Stories[i]
		s.Position = i + 1
		if err := validateStory(s); err != nil {
			return nil, fmt.Errorf("story %d: %w", i+1, err)
		}
		if s.ID == "" {
			continue
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("story %d: duplicate id %s", i+1, s.ID)
		}
		seen[s.ID] = true
	}
	return doc.Stories, nil
}

func validateStory(s *domain.ClientStory) error {
	s.FounderName = strings.TrimSpace(s.FounderName)
	s.Company = strings.TrimSpace(s.Company)
	if s.FounderName == "" {
		return fmt.Errorf("founder_name is required")
	}
	if s.Company == "" {
		return fmt.Errorf("company is required")
	}
	if s.ServiceUsed = strings.TrimSpace(s.ServiceUsed); s.ServiceUsed != "" {
		c, ok := domain.ParseServiceCategory(s.ServiceUsed)
		if !ok {
			return fmt.Errorf("service_used %q is not a known service", s.ServiceUsed)
		}
		s.ServiceUsed = string(c)
	}
	if s.ID != "" {
		if _, err := uuid.Parse(s.ID); err != nil {
			return fmt.Errorf("id %q is not a UUID", s.ID)
		}
	}
	return nil
}

// LoadStoriesFile reads stories from path.
func LoadStoriesFile(path string) ([]domain.ClientStory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadStories(f)
}

// DefaultStories returns the embedded story set.
func DefaultStories() ([]domain.ClientStory, error) {
	return LoadStories(bytes.NewReader(defaultStories))
}

// Stories returns the stories in path, or the embedded set when path is empty.
func Stories(path string) ([]domain.ClientStory, error) {
	if path == "" {
		return DefaultStories()
	}
	return LoadStoriesFile(path)
}

// Catalog returns the embedded service catalogue in display order.
func Catalog() ([]domain.CatalogService, error) {
	return loadCatalog(bytes.NewReader(defaultCatalog))
}

// loadCatalog decodes a catalogue document. Every service category except
// Other must have an entry, so an inquiry topic always has a page to link to.
func loadCatalog(r io.Reader) ([]domain.CatalogService, error) {
	var doc catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	slugs := make(map[string]bool, len(doc.Services))
	for i, svc := range doc.Services {
		if svc.Slug == "" {
			return nil, fmt.Errorf("catalog entry %d: slug is required", i+1)
		}
		if slugs[svc.Slug] {
			return nil, fmt.Errorf("catalog entry %d: duplicate slug %s", i+1, svc.Slug)
		}
		slugs[svc.Slug] = true
	}
	for _, c := range domain.ServiceCategories {
		if slug := c.Slug(); slug != "" && !slugs[slug] {
			return nil, fmt.Errorf("catalog has no entry %q for service %q", slug, c)
		}
	}
	return doc.Services, nil
}
