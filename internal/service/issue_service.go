package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fixmycity/issue-service/internal/errs"
	"github.com/fixmycity/issue-service/internal/model"
	"gorm.io/gorm"
)

type IssueService struct {
	db *gorm.DB
}

func NewIssueService(db *gorm.DB) *IssueService {
	return &IssueService{db: db}
}

// Create validates the required fields, forces the initial status to
// pending and inserts the issue. The store assigns ID and timestamps.
func (s *IssueService) Create(ctx context.Context, issue *model.Issue) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", issue.Title},
		{"category", issue.Category},
		{"location", issue.Location},
		{"description", issue.Description},
		{"priority", issue.Priority},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", errs.ErrValidation, f.name)
		}
	}
	issue.Status = model.IssueStatusPending
	return s.db.WithContext(ctx).Create(issue).Error
}

func (s *IssueService) GetByID(ctx context.Context, id uint64) (*model.Issue, error) {
	var issue model.Issue
	if err := s.db.WithContext(ctx).First(&issue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrIssueNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// List returns issues newest first. filter holds parameterized predicates
// ("status = ?" -> value); only supplied keys constrain the result.
func (s *IssueService) List(ctx context.Context, filter map[string]interface{}) ([]model.Issue, error) {
	items := make([]model.Issue, 0)
	tx := s.db.WithContext(ctx).Model(&model.Issue{})
	for k, v := range filter {
		tx = tx.Where(k, v)
	}
	if err := tx.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus is the only mutation path for an issue after creation.
// It rejects unknown status values before touching the row.
func (s *IssueService) UpdateStatus(ctx context.Context, id uint64, status string) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("%w: invalid status %q", errs.ErrValidation, status)
	}
	var issue model.Issue
	if err := s.db.WithContext(ctx).First(&issue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrIssueNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Model(&issue).Update("status", status).Error
}
