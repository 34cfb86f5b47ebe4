package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

func (r *SectionRepository) Update(section *model.Section) error {
	return r.DB.Save(section).Error
}

func (r *SectionRepository) FindByID(id uint) (*model.Section, error) {
	var section model.Section
	if err := r.DB.First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *SectionRepository) ListByCourse(courseID uint) ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.Where("course_id = ?", courseID).Order("position asc").Find(&sections).Error
	return sections, err
}
