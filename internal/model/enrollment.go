package model

// UserStudyingCourse 学习关系，(user_id, course_id) 唯一，避免重复报名
// swagger:model UserStudyingCourse
type UserStudyingCourse struct {
	BaseModel

	UserID   uint `gorm:"uniqueIndex:idx_studying_user_course" json:"userId"`
	CourseID uint `gorm:"uniqueIndex:idx_studying_user_course" json:"courseId"`
}

func (UserStudyingCourse) TableName() string {
	return "user_studying_course"
}

// UserTeachingCourse 授课关系，同一用户可同时学习和讲授同一门课
// swagger:model UserTeachingCourse
type UserTeachingCourse struct {
	BaseModel

	UserID   uint `gorm:"uniqueIndex:idx_teaching_user_course" json:"userId"`
	CourseID uint `gorm:"uniqueIndex:idx_teaching_user_course" json:"courseId"`
}

func (UserTeachingCourse) TableName() string {
	return "user_teaching_course"
}
