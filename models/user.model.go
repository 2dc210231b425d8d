package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	DisplayName  string `gorm:"default:''" json:"displayName"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'user'" json:"role"` // user, admin

	// Bookmarked services; each service appears at most once
	SavedServices []Service `gorm:"many2many:user_saved_services;" json:"savedServices,omitempty"`
}
