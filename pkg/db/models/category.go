package models

// Category is a product grouping. Table and column names keep the deployed
// schema's Spanish identifiers; they are the wire contract of the API.
type Category struct {
	ID   int    `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:nombre;uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categorias"
}
