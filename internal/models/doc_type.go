package models

type DocType struct {
	BaseModel
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (DocType) TableName() string {
	return "doc_types"
}
