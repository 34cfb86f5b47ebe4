package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type StepRepository struct {
	DB *gorm.DB
}

func NewStepRepository(db *gorm.DB) *StepRepository {
	return &StepRepository{DB: db}
}

func (r *StepRepository) Update(step *model.Step) error {
	return r.DB.Save(step).Error
}

func (r *StepRepository) FindByID(id uint) (*model.Step, error) {
	var step model.Step
	if err := r.DB.First(&step, id).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *StepRepository) ListBySection(sectionID uint) ([]model.Step, error) {
	var steps []model.Step
	err := r.DB.Where("section_id = ?", sectionID).Order("position asc").Find(&steps).Error
	return steps, err
}
