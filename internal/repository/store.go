// Package repository persists inquiries, subscriptions and stories through GORM.
package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fyno/internal/domain"
	"fyno/internal/metrics"
)

// Store is the only component that touches the database. It is safe for
// concurrent use.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateInquiry inserts an inquiry and fills in its ID.
func (s *Store) CreateInquiry(ctx context.Context, inquiry *domain.ContactInquiry) error {
	start := time.Now()
	err := s.db.WithContext(ctx).Create(inquiry).Error
	metrics.RecordDBQuery("create_inquiry", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("create contact inquiry: %w", err)
	}
	return nil
}

// CreateSubscription records email on the newsletter list. created is false
// when the address was already subscribed; that is not an error.
func (s *Store) CreateSubscription(ctx context.Context, email string) (created bool, err error) {
	start := time.Now()
	sub := domain.NewsletterSubscription{Email: email}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&sub)
	metrics.RecordDBQuery("create_subscription", time.Since(start), res.Error)
	if res.Error != nil {
		return false, fmt.Errorf("create newsletter subscription: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListStories returns every story in seed order.
func (s *Store) ListStories(ctx context.Context) ([]domain.ClientStory, error) {
	start := time.Now()
	stories := []domain.ClientStory{}
	err := s.db.WithContext(ctx).
		Order("position ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&stories).Error
	metrics.RecordDBQuery("list_stories", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list client stories: %w", err)
	}
	return stories, nil
}

// SeedStories inserts stories only when the table is empty and reports how
// many rows were written.
func (s *Store) SeedStories(ctx context.Context, stories []domain.ClientStory) (int, error) {
	if len(stories) == 0 {
		return 0, nil
	}
	inserted := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.ClientStory{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if err := tx.Create(&stories).Error; err != nil {
			return err
		}
		inserted = len(stories)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed client stories: %w", err)
	}
	return inserted, nil
}

// ReplaceStories deletes every stored story and writes stories in their place.
func (s *Store) ReplaceStories(ctx context.Context, stories []domain.ClientStory) (int, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.ClientStory{}).Error; err != nil {
			return err
		}
		if len(stories) == 0 {
			return nil
		}
		return tx.Create(&stories).Error
	})
	if err != nil {
		return 0, fmt.Errorf("replace client stories: %w", err)
	}
	return len(stories), nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
