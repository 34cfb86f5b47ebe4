package model

import "time"

// swagger:model Section
type Section struct {
	BaseModel

	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Position    int        `gorm:"default:0" json:"position"`
	CourseID    uint       `gorm:"index;not null" json:"courseId"`
}

func (Section) TableName() string {
	return "section"
}
