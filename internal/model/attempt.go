package model

import "time"

// Attempt 一次提交；开放题在评审集齐前 score 保持为空，且只会被写一次
// swagger:model Attempt
type Attempt struct {
	BaseModel

	Score          *float64  `json:"score,omitempty"`
	SubmissionTime time.Time `gorm:"not null" json:"submissionTime"`
	StepID         uint      `gorm:"index:idx_attempt_step_user" json:"stepId"`
	UserID         uint      `gorm:"index:idx_attempt_step_user" json:"userId"`
}

func (Attempt) TableName() string {
	return "attempt"
}

// UserInput 文本/开放题的提交正文，每次提交至多一条
// swagger:model UserInput
type UserInput struct {
	BaseModel

	Content   string `gorm:"type:text;not null" json:"content"`
	AttemptID uint   `gorm:"uniqueIndex" json:"attemptId"`
}

func (UserInput) TableName() string {
	return "user_input"
}

// swagger:model AttemptTestOption
type AttemptTestOption struct {
	BaseModel

	AttemptID uint `gorm:"uniqueIndex:idx_attempt_test_option" json:"attemptId"`
	OptionID  uint `gorm:"uniqueIndex:idx_attempt_test_option" json:"optionId"`
}

func (AttemptTestOption) TableName() string {
	return "attempt_test_option"
}

// swagger:model AttemptSortingOption
type AttemptSortingOption struct {
	BaseModel

	Position  int  `gorm:"not null" json:"position"`
	AttemptID uint `gorm:"uniqueIndex:idx_attempt_sorting_option" json:"attemptId"`
	OptionID  uint `gorm:"uniqueIndex:idx_attempt_sorting_option" json:"optionId"`
}

func (AttemptSortingOption) TableName() string {
	return "attempt_sorting_option"
}
