package model

// Category 分类树节点，parent_id 为空即根节点
// swagger:model Category
type Category struct {
	BaseModel

	Name     string `gorm:"size:255;not null" json:"name"`
	ParentID *uint  `gorm:"index" json:"parentId,omitempty"`
}

func (Category) TableName() string {
	return "category"
}
