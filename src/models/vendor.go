package models

import "triphub/src/types"

type Vendor struct {
	ID     uint               `gorm:"primarykey" json:"id"`
	Name   string             `json:"name"`
	Slug   string             `gorm:"index" json:"slug"`
	Image  string             `json:"image,omitempty"`
	Email  string             `gorm:"uniqueIndex;not null" json:"email"`
	Status types.VendorStatus `gorm:"default:'pending';index" json:"status"`

	types.Timestamps
}
