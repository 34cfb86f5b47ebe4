package model

import "time"

// Review 单个评审人对一次开放题提交的打分，(user_id, attempt_id) 唯一
// swagger:model Review
type Review struct {
	BaseModel

	Score          float64   `gorm:"not null" json:"score"`
	SubmissionTime time.Time `gorm:"not null" json:"submissionTime"`
	UserID         uint      `gorm:"uniqueIndex:idx_review_user_attempt" json:"userId"`
	AttemptID      uint      `gorm:"uniqueIndex:idx_review_user_attempt" json:"attemptId"`
}

func (Review) TableName() string {
	return "review"
}
