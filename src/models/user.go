package models

import "triphub/src/types"

type User struct {
	ID    uint       `gorm:"primarykey" json:"id"`
	Name  string     `json:"name,omitempty"`
	Email string     `gorm:"uniqueIndex;not null" json:"email"`
	Image string     `json:"image,omitempty"`
	Role  types.Role `gorm:"default:'user'" json:"role"`

	types.Timestamps
}
