package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fixmycity/issue-service/internal/errs"
	"github.com/fixmycity/issue-service/internal/model"
	"gorm.io/gorm"
)

// DefaultAuthor is recorded when a comment arrives without an author.
const DefaultAuthor = "Anonymous"

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Create appends a comment to an issue. The issue id is not checked for
// existence; an orphaned comment is accepted.
func (s *CommentService) Create(ctx context.Context, issueID uint64, text, author string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", errs.ErrValidation)
	}
	if strings.TrimSpace(author) == "" {
		author = DefaultAuthor
	}
	c := &model.Comment{
		IssueID: issueID,
		Comment: text,
		Author:  author,
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) ListByIssue(ctx context.Context, issueID uint64) ([]model.Comment, error) {
	items := make([]model.Comment, 0)
	err := s.db.WithContext(ctx).
		Where("issue_id = ?", issueID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
