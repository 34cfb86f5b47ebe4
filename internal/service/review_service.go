package service

import (
	"errors"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// ReviewService 开放题提交的评审聚合。每次提交是个小状态机：
// pending（score 为空）→ complete（score 写入一次，之后拒绝新评审）
type ReviewService struct {
	ReviewRepo  *repository.ReviewRepository
	AttemptRepo *repository.AttemptRepository
	TaskRepo    *repository.TaskRepository
	DB          *gorm.DB
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	attemptRepo *repository.AttemptRepository,
	taskRepo *repository.TaskRepository,
	db *gorm.DB,
) *ReviewService {
	return &ReviewService{
		ReviewRepo:  reviewRepo,
		AttemptRepo: attemptRepo,
		TaskRepo:    taskRepo,
		DB:          db,
	}
}

// SubmitReview 评审去重、计数和终态写入在同一事务内；attempt 行锁防止
// 两个并发评审同时当第 num_reviews 份通过
func (s *ReviewService) SubmitReview(reviewerID, attemptID uint, score float64) (*model.Review, error) {
	var review *model.Review
	finalized := false

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var attempt model.Attempt
		if err := lockForUpdate(tx).First(&attempt, attemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("attempt", attemptID)
			}
			return err
		}

		def, err := s.TaskRepo.DefinitionForStep(tx, attempt.StepID)
		if err != nil {
			return err
		}
		if def == nil || def.Kind != model.TaskKindOpenEnded {
			return util.ValidationError("attempt", attemptID, "attempt is not for an open-ended task")
		}

		if attempt.Score != nil {
			return util.StateError("attempt", attemptID, "review cycle already complete")
		}

		var step model.Step
		if err := tx.First(&step, attempt.StepID).Error; err != nil {
			return err
		}
		if score < 0 || score > float64(step.MaxScore) {
			return util.ValidationError("review", 0, "score out of range")
		}

		var dup int64
		if err := tx.Model(&model.Review{}).
			Where("user_id = ? AND attempt_id = ?", reviewerID, attemptID).Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return util.ConflictError("review", attemptID, "reviewer already reviewed this attempt")
		}

		review = &model.Review{
			Score:          score,
			SubmissionTime: time.Now(),
			UserID:         reviewerID,
			AttemptID:      attemptID,
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		var reviews []model.Review
		if err := tx.Where("attempt_id = ?", attemptID).Find(&reviews).Error; err != nil {
			return err
		}
		if len(reviews) >= def.OpenEnded.NumReviews {
			sum := 0.0
			for _, r := range reviews {
				sum += r.Score
			}
			final := RoundScore(sum / float64(len(reviews)))
			attempt.Score = &final
			if err := tx.Save(&attempt).Error; err != nil {
				return err
			}
			finalized = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if finalized {
		monitoring.ReviewsFinalized.Inc()
	}
	return review, nil
}

// PendingAttempts 评审人队列：待评的开放题提交，不含自己的和已评过的
func (s *ReviewService) PendingAttempts(reviewerID uint, limit int) ([]model.Attempt, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.ReviewRepo.PendingAttempts(reviewerID, limit)
}

func (s *ReviewService) ReviewsForAttempt(attemptID uint) ([]model.Review, error) {
	return s.ReviewRepo.ListByAttempt(attemptID)
}
