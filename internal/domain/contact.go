package domain

import (
	"time"

	"gorm.io/gorm"
)

// InquiryStatusNew is the status every inquiry is stored with.
const InquiryStatusNew = "new"

// ContactInquiry represents a contact form submission awaiting follow-up.
// Inquiries are immutable once created.
type ContactInquiry struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Email     string          `gorm:"size:254;not null;index" json:"email"`
	Phone     *string         `gorm:"size:32" json:"phone,omitempty"`
	Service   ServiceCategory `gorm:"size:64;not null;index" json:"service"`
	Message   string          `gorm:"type:text;not null" json:"message"`
	Status    string          `gorm:"size:16;default:'new'" json:"status"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for ContactInquiry
func (ContactInquiry) TableName() string {
	return "contact_inquiries"
}

// BeforeCreate hook
func (c *ContactInquiry) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.Status == "" {
		c.Status = InquiryStatusNew
	}
	return nil
}
