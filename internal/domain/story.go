package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientStory is a published before/after case study. Stories are seeded
// out of band and listed in Position order.
type ClientStory struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id" yaml:"id"`
	FounderName    string    `gorm:"not null" json:"founder_name" yaml:"founder_name"`
	Company        string    `gorm:"not null" json:"company" yaml:"company"`
	Challenge      string    `gorm:"type:text" json:"challenge" yaml:"challenge"`
	TurningPoint   string    `gorm:"type:text" json:"turning_point" yaml:"turning_point"`
	Transformation string    `gorm:"type:text" json:"transformation" yaml:"transformation"`
	ServiceUsed    string    `json:"service_used" yaml:"service_used"`
	Position       int       `gorm:"not null;index" json:"-" yaml:"-"`
	CreatedAt      time.Time `json:"-" yaml:"-"`
}

// TableName specifies the table name for ClientStory
func (ClientStory) TableName() string {
	return "client_stories"
}

// BeforeCreate hook
func (s *ClientStory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return nil
}
