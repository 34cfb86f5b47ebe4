package service

import (
	"testing"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newContentService(db *gorm.DB) *ContentService {
	return NewContentService(
		repository.NewCategoryRepository(db),
		repository.NewCourseRepository(db),
		repository.NewSectionRepository(db),
		repository.NewStepRepository(db),
		db,
		nil,
	)
}

func newTaskService(db *gorm.DB) *TaskService {
	return NewTaskService(repository.NewTaskRepository(db), repository.NewStepRepository(db), db)
}

func newAttemptService(db *gorm.DB) *AttemptService {
	return NewAttemptService(
		repository.NewAttemptRepository(db),
		repository.NewTaskRepository(db),
		repository.NewStepRepository(db),
		db,
	)
}

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewTaskRepository(db),
		db,
	)
}

// seedStep 建出 category → course → section → step 链并返回步骤
func seedStep(t *testing.T, db *gorm.DB, maxScore int, maxAttempts *int) *model.Step {
	t.Helper()
	category := &model.Category{Name: "cat"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	course := &model.Course{Title: "course", CategoryID: category.ID}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	section := &model.Section{Title: "section", Position: 1, CourseID: course.ID}
	if err := db.Create(section).Error; err != nil {
		t.Fatalf("seed section: %v", err)
	}
	step := &model.Step{
		Title:       "step",
		MaxScore:    maxScore,
		MaxAttempts: maxAttempts,
		Position:    1,
		SectionID:   section.ID,
	}
	if err := db.Create(step).Error; err != nil {
		t.Fatalf("seed step: %v", err)
	}
	return step
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
