package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.DB.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) ListByCategory(categoryID uint, page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64
	query := r.DB.Model(&model.Course{}).Where("category_id = ?", categoryID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) CreateStudying(row *model.UserStudyingCourse) error {
	return r.DB.Create(row).Error
}

// DeleteStudying 物理删除：唯一索引落在 (user_id, course_id) 上，软删行会
// 继续占着索引，挡住之后的重新报名
func (r *CourseRepository) DeleteStudying(userID, courseID uint) (int64, error) {
	res := r.DB.Unscoped().Where("user_id = ? AND course_id = ?", userID, courseID).Delete(&model.UserStudyingCourse{})
	return res.RowsAffected, res.Error
}

func (r *CourseRepository) IsStudying(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserStudyingCourse{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) CreateTeaching(row *model.UserTeachingCourse) error {
	return r.DB.Create(row).Error
}

func (r *CourseRepository) IsTeaching(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserTeachingCourse{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) ListStudents(courseID uint) ([]model.UserStudyingCourse, error) {
	var rows []model.UserStudyingCourse
	err := r.DB.Where("course_id = ?", courseID).Order("created_at asc").Find(&rows).Error
	return rows, err
}

func (r *CourseRepository) ListTeachers(courseID uint) ([]model.UserTeachingCourse, error) {
	var rows []model.UserTeachingCourse
	err := r.DB.Where("course_id = ?", courseID).Order("created_at asc").Find(&rows).Error
	return rows, err
}
