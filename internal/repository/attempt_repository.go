package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.DB.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) ListByUserStep(userID, stepID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ? AND step_id = ?", userID, stepID).
		Order("submission_time asc").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByUser(userID uint, page, limit int) ([]model.Attempt, int64, error) {
	var attempts []model.Attempt
	var total int64
	query := r.DB.Model(&model.Attempt{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("submission_time desc").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}

func (r *AttemptRepository) UserInput(attemptID uint) (*model.UserInput, error) {
	var input model.UserInput
	if err := r.DB.Where("attempt_id = ?", attemptID).First(&input).Error; err != nil {
		return nil, err
	}
	return &input, nil
}

func (r *AttemptRepository) TestSelections(attemptID uint) ([]model.AttemptTestOption, error) {
	var rows []model.AttemptTestOption
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&rows).Error
	return rows, err
}

func (r *AttemptRepository) SortingSelections(attemptID uint) ([]model.AttemptSortingOption, error) {
	var rows []model.AttemptSortingOption
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&rows).Error
	return rows, err
}
