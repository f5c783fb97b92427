package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fixmycity/issue-service/internal/errs"
	"github.com/fixmycity/issue-service/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database and migrates the models.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// Single connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.Issue{}, &model.Comment{}); err != nil {
		t.Fatalf("migrate models: %v", err)
	}
	return db
}

func validIssue() *model.Issue {
	return &model.Issue{
		Title:       "Pothole on Main St",
		Category:    "roads",
		Location:    "Main St & 3rd Ave",
		Description: "Deep pothole in the right lane",
		Priority:    "high",
	}
}

func TestIssueCreate_SetsDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIssueService(db)

	issue := validIssue()
	issue.Status = model.IssueStatusResolved // must be overridden
	if err := svc.Create(context.Background(), issue); err != nil {
		t.Fatalf("create: %v", err)
	}
	if issue.ID == 0 {
		t.Fatal("expected store-assigned id")
	}

	saved, err := svc.GetByID(context.Background(), issue.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if saved.Status != model.IssueStatusPending {
		t.Errorf("status = %q, want %q", saved.Status, model.IssueStatusPending)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
	if !saved.UpdatedAt.Equal(saved.CreatedAt) {
		t.Errorf("updated_at = %v, want equal to created_at %v", saved.UpdatedAt, saved.CreatedAt)
	}
}

func TestIssueCreate_MissingRequiredField(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIssueService(db)

	cases := []struct {
		name   string
		mutate func(*model.Issue)
	}{
		{"title", func(i *model.Issue) { i.Title = "" }},
		{"category", func(i *model.Issue) { i.Category = "  " }},
		{"location", func(i *model.Issue) { i.Location = "" }},
		{"description", func(i *model.Issue) { i.Description = "\t" }},
		{"priority", func(i *model.Issue) { i.Priority = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issue := validIssue()
			tc.mutate(issue)
			err := svc.Create(context.Background(), issue)
			if !errors.Is(err, errs.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}

	var count int64
	db.Model(&model.Issue{}).Count(&count)
	if count != 0 {
		t.Errorf("rows persisted on validation failure: %d", count)
	}
}

func TestIssueGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIssueService(db)

	_, err := svc.GetByID(context.Background(), 42)
	if !errors.Is(err, errs.ErrIssueNotFound) {
		t.Fatalf("err = %v, want ErrIssueNotFound", err)
	}
}

func seedIssue(t *testing.T, db *gorm.DB, status model.IssueStatus, category, priority string, createdAt time.Time) *model.Issue {
	t.Helper()
	issue := &model.Issue{
		Title:       "seed",
		Category:    category,
		Location:    "somewhere",
		Description: "seeded issue",
		Priority:    priority,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := db.Create(issue).Error; err != nil {
		t.Fatalf("seed issue: %v", err)
	}
	return issue
}

func TestIssueList_FiltersAndOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIssueService(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := seedIssue(t, db, model.IssueStatusPending, "roads", "high", base)
	middle := seedIssue(t, db, model.IssueStatusResolved, "lighting", "low", base.Add(time.Hour))
	newest := seedIssue(t, db, model.IssueStatusResolved, "roads", "high", base.Add(2*time.Hour))

	// No filters: everything, newest first.
	all, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].ID != newest.ID || all[1].ID != middle.ID || all[2].ID != oldest.ID {
		t.Errorf("order = [%d %d %d], want [%d %d %d]",
			all[0].ID, all[1].ID, all[2].ID, newest.ID, middle.ID, oldest.ID)
	}

	// Single equality filter.
	resolved, err := svc.List(context.Background(), map[string]interface{}{"status = ?": "resolved"})
	if err != nil {
		t.Fatalf("list resolved: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("len = %d, want 2", len(resolved))
	}
	if resolved[0].ID != newest.ID || resolved[1].ID != middle.ID {
		t.Errorf("resolved order = [%d %d], want [%d %d]", resolved[0].ID, resolved[1].ID, newest.ID, middle.ID)
	}

	// Two filters combine with AND.
	both, err := svc.List(context.Background(), map[string]interface{}{
		"status = ?":   "resolved",
		"category = ?": "roads",
	})
	if err != nil {
		t.Fatalf("list intersection: %v", err)
	}
	if len(both) != 1 || both[0].ID != newest.ID {
		t.Fatalf("intersection = %v, want just issue %d", both, newest.ID)
	}

	// No matches is an empty slice, not an error.
	none, err := svc.List(context.Background(), map[string]interface{}{"status = ?": "rejected"})
	if err != nil {
		t.Fatalf("list none: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("no-match result = %#v, want empty slice", none)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIssueService(db)

	issue := validIssue()
	if err := svc.Create(context.Background(), issue); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, status := range []string{"in-progress", "resolved", "rejected", "pending"} {
		if err := svc.UpdateStatus(context.Background(), issue.ID, status); err != nil {
			t.Fatalf("update to %q: %v", status, err)
		}
		saved, err := svc.GetByID(context.Background(), issue.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(saved.Status) != status {
			t.Errorf("status = %q, want %q", saved.Status, status)
		}
	}
}

func TestUpdateStatus_RefreshesUpdatedAt(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIssueService(db)

	issue := validIssue()
	if err := svc.Create(context.Background(), issue); err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _ := svc.GetByID(context.Background(), issue.ID)

	time.Sleep(20 * time.Millisecond)
	if err := svc.UpdateStatus(context.Background(), issue.ID, "in-progress"); err != nil {
		t.Fatalf("update: %v", err)
	}
	after, _ := svc.GetByID(context.Background(), issue.ID)
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("updated_at not refreshed: before %v, after %v", before.UpdatedAt, after.UpdatedAt)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("created_at changed: before %v, after %v", before.CreatedAt, after.CreatedAt)
	}
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIssueService(db)

	issue := validIssue()
	if err := svc.Create(context.Background(), issue); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := svc.UpdateStatus(context.Background(), issue.ID, "done")
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	saved, _ := svc.GetByID(context.Background(), issue.ID)
	if saved.Status != model.IssueStatusPending {
		t.Errorf("row mutated on invalid status: %q", saved.Status)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIssueService(db)

	err := svc.UpdateStatus(context.Background(), 999, "resolved")
	if !errors.Is(err, errs.ErrIssueNotFound) {
		t.Fatalf("err = %v, want ErrIssueNotFound", err)
	}
}
