package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseServiceCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   ServiceCategory
		wantOK bool
	}{
		{"GST Filing", ServiceGSTFiling, true},
		{"  gst filing ", ServiceGSTFiling, true},
		{"Other", ServiceOther, true},
		{"Audit", ServiceAudit, true},
		{"Crypto Advice", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseServiceCategory(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServiceCategory_Slug(t *testing.T) {
	assert.Equal(t, "gst", ServiceGSTFiling.Slug())
	assert.Equal(t, "virtual-cfo", ServiceVirtualCFO.Slug())
	assert.Equal(t, "", ServiceOther.Slug())
}

func TestServiceCategoryNames_OtherIsLast(t *testing.T) {
	names := ServiceCategoryNames()
	assert.Len(t, names, 7)
	assert.Equal(t, "Other", names[len(names)-1])
}
