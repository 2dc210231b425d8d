package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	ServiceID uint           `gorm:"not null;index" json:"serviceId"`
	Username  string         `gorm:"default:'Anonymous'" json:"username"`
	Rating    int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"` // 1–5 rating
	Comment   string         `gorm:"type:text;default:''" json:"comment"`                      // Optional comment
	ImageIDs  datatypes.JSON `json:"imageIds"`                                                 // 0–5 opaque image references, submission order
}
