package model

// TaskKind 任务变体，一个 Step 最多挂一种
type TaskKind string

const (
	TaskKindText      TaskKind = "text"
	TaskKindOpenEnded TaskKind = "open_ended"
	TaskKindTest      TaskKind = "test"
	TaskKindSorting   TaskKind = "sorting"
)

// TextTask 的 answer_type：答案按什么值域比较
const (
	AnswerTypeText   = 0
	AnswerTypeNumber = 1 // 按浮点数解析比较，criterion 不参与
)

// TextTask 的 criterion：文本比较方式
const (
	CriterionExact           = 0 // 去首尾空白后精确匹配
	CriterionCaseInsensitive = 1
	CriterionPattern         = 2 // 正则全匹配
)

// swagger:model TextTask
type TextTask struct {
	BaseModel

	AnswerType    int    `gorm:"not null" json:"answerType"`
	Criterion     int    `gorm:"not null" json:"criterion"`
	CorrectAnswer string `gorm:"type:text;not null" json:"correctAnswer"`
	StepID        uint   `gorm:"uniqueIndex" json:"stepId"`
}

func (TextTask) TableName() string {
	return "text_task"
}

// OpenEndedTask 人工评审任务，集齐 num_reviews 份评审后才有最终分
// swagger:model OpenEndedTask
type OpenEndedTask struct {
	BaseModel

	ReviewType int  `gorm:"not null" json:"reviewType"`
	NumReviews int  `gorm:"not null" json:"numReviews"`
	StepID     uint `gorm:"uniqueIndex" json:"stepId"`
}

func (OpenEndedTask) TableName() string {
	return "open_ended_task"
}

// swagger:model TestTask
type TestTask struct {
	BaseModel

	MultipleChoice bool `gorm:"not null" json:"multipleChoice"`
	PartialScore   bool `gorm:"not null" json:"partialScore"`
	StepID         uint `gorm:"uniqueIndex" json:"stepId"`
}

func (TestTask) TableName() string {
	return "test_task"
}

// swagger:model SortingTask
type SortingTask struct {
	BaseModel

	PartialScore bool `gorm:"not null" json:"partialScore"`
	StepID       uint `gorm:"uniqueIndex" json:"stepId"`
}

func (SortingTask) TableName() string {
	return "sorting_task"
}

// TaskDefinition 按 step 聚合出来的判别结果，四个指针里恰好一个非空
type TaskDefinition struct {
	Kind      TaskKind       `json:"kind"`
	Text      *TextTask      `json:"text,omitempty"`
	OpenEnded *OpenEndedTask `json:"openEnded,omitempty"`
	Test      *TestTask      `json:"test,omitempty"`
	Sorting   *SortingTask   `json:"sorting,omitempty"`
}
