package models

type Department struct {
	BaseModel
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Department) TableName() string {
	return "departments"
}
