package domain

import "time"

// Fingerprint Model
type Fingerprint struct {
	ID             uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	UserID         uint      `gorm:"not null" json:"user_id"`                       // Foreign key to User
	FingerPosition string    `gorm:"size:50;not null" json:"finger_position"`       // e.g. "thumb_right"
	TemplateFormat string    `gorm:"size:20;not null;default:SG400" json:"template_format"` // Vendor template format tag
	TemplateData   string    `gorm:"type:text;not null" json:"template_data"`       // Base64-encoded template
	CreatedAt      time.Time `json:"created_at"`                                    // Timestamp of creation
}
