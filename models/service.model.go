package models

import "gorm.io/gorm"

type Service struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Category string `gorm:"not null" json:"category"`
	City     string `gorm:"not null" json:"city"`
	Pincode  string `gorm:"not null" json:"pincode"`
	Address  string `gorm:"not null" json:"address"`
	ImageID  string `gorm:"default:''" json:"imageId"` // opaque reference into the image store

	// Derived from the review set, never edited directly
	AverageRating float64 `gorm:"default:0" json:"averageRating"`
	RatingCount   int     `gorm:"default:0" json:"ratingCount"`
	ReviewCount   int     `gorm:"default:0" json:"reviewCount"`

	// Always visible once created (no admin approval flow active)
	IsApproved bool `gorm:"default:true" json:"isApproved"`

	// Secret code required to delete; returned once at creation time
	DeleteCode string `gorm:"not null" json:"-"`
}
