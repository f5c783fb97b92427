package service

import (
	"context"
	"log"
	"sync"

	"github.com/fixmycity/issue-service/internal/model"
	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Compute fans out four independent count queries and joins before
// returning. A failed sub-count logs and reports 0 instead of failing
// the whole aggregate.
func (s *StatsService) Compute(ctx context.Context) model.StatusCounts {
	var counts model.StatusCounts
	var wg sync.WaitGroup

	countTotal := func(dst *int64) {
		defer wg.Done()
		if err := s.db.WithContext(ctx).Model(&model.Issue{}).Count(dst).Error; err != nil {
			log.Printf("stats: total count: %v", err)
			*dst = 0
		}
	}
	countByStatus := func(dst *int64, status model.IssueStatus) {
		defer wg.Done()
		err := s.db.WithContext(ctx).
			Model(&model.Issue{}).
			Where("status = ?", status).
			Count(dst).Error
		if err != nil {
			log.Printf("stats: count %s: %v", status, err)
			*dst = 0
		}
	}

	wg.Add(4)
	go countTotal(&counts.Total)
	go countByStatus(&counts.Pending, model.IssueStatusPending)
	go countByStatus(&counts.InProgress, model.IssueStatusInProgress)
	go countByStatus(&counts.Resolved, model.IssueStatusResolved)
	wg.Wait()

	return counts
}
