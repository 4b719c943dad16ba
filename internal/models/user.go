package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:80;not null;uniqueIndex" json:"username"` // display case preserved; LOWER(username) unique index added in db.Migrate
	Email     string    `gorm:"size:254" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Blurb     string    `gorm:"size:280" json:"blurb"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}
