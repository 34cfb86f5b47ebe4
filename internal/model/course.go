package model

import "time"

// swagger:model Course
type Course struct {
	BaseModel

	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	CategoryID  uint       `gorm:"index;not null" json:"categoryId"`
}

func (Course) TableName() string {
	return "course"
}
