package model

// swagger:model TestOption
type TestOption struct {
	BaseModel

	Content   string `gorm:"type:text;not null" json:"content"`
	IsCorrect bool   `gorm:"not null" json:"isCorrect"`
	TaskID    uint   `gorm:"index;not null" json:"taskId"`
}

func (TestOption) TableName() string {
	return "test_option"
}

// SortingOption 正确位置在同一任务内构成 1..N 的连续排列
// swagger:model SortingOption
type SortingOption struct {
	BaseModel

	Content         string `gorm:"type:text;not null" json:"content"`
	CorrectPosition int    `gorm:"uniqueIndex:idx_sorting_task_position;not null" json:"correctPosition"`
	TaskID          uint   `gorm:"uniqueIndex:idx_sorting_task_position;index;not null" json:"taskId"`
}

func (SortingOption) TableName() string {
	return "sorting_option"
}
