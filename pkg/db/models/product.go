package models

import "time"

// Product is a stocked item. The ID is application-assigned (`P` + zero-padded
// sequence), never a database serial.
type Product struct {
	ID          string    `gorm:"column:id;primaryKey;size:10"`
	Name        string    `gorm:"column:nombre;not null"`
	Quantity    int       `gorm:"column:cantidad;not null;default:0"`
	Description *string   `gorm:"column:descripcion"`
	CategoryID  int       `gorm:"column:categoria_id;not null"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time `gorm:"column:fecha_creacion;autoCreateTime"`
}

func (Product) TableName() string {
	return "productos"
}
