package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) ListByAttempt(attemptID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.DB.Where("attempt_id = ?", attemptID).Order("submission_time asc").Find(&reviews).Error
	return reviews, err
}

// PendingAttempts 评审队列：未完成评分的开放题提交，排除自己的提交和已评过的
func (r *ReviewRepository) PendingAttempts(reviewerID uint, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Model(&model.Attempt{}).
		Joins("JOIN open_ended_task ON open_ended_task.step_id = attempt.step_id").
		Where("attempt.score IS NULL").
		Where("attempt.user_id <> ?", reviewerID).
		Where("NOT EXISTS (SELECT 1 FROM review WHERE review.attempt_id = attempt.id AND review.user_id = ? AND review.deleted_at IS NULL)", reviewerID).
		Order("attempt.submission_time asc").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}
