package model

// Step 学习/考核的最小单元，最多挂一个任务变体
// swagger:model Step
type Step struct {
	BaseModel

	Title       string `gorm:"size:255;not null" json:"title"`
	Content     string `gorm:"type:text" json:"content"`
	MaxScore    int    `gorm:"not null" json:"maxScore"`
	MaxAttempts *int   `json:"maxAttempts,omitempty"` // 为空表示不限次数
	Position    int    `gorm:"default:0" json:"position"`
	SectionID   uint   `gorm:"index;not null" json:"sectionId"`
}

func (Step) TableName() string {
	return "step"
}
