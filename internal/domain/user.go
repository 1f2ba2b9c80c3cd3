package domain

import "time"

// User Model
type User struct {
	ID           uint          `gorm:"primaryKey" json:"id"`            // Primary key
	Username     string        `gorm:"unique;not null" json:"username"` // Unique username
	Email        string        `gorm:"unique;not null" json:"email"`    // Unique email
	PasswordHash string        `json:"-"`                               // Bcrypt hash, hidden from JSON
	CreatedAt    time.Time     `json:"created_at"`                      // Timestamp of creation
	Fingerprints []Fingerprint `gorm:"foreignKey:UserID" json:"-"`      // Enrolled fingerprints; no delete cascade defined
}
