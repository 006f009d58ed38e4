package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	SKU         string         `gorm:"column:sku;unique;not null"`
	Name        string         `gorm:"column:name;not null"`
	Description string         `gorm:"column:description"`
	Price       float64        `gorm:"column:price;not null"`
	Stock       int            `gorm:"column:stock;not null;default:0"`
	Attributes  datatypes.JSON `gorm:"column:attributes"`
}
