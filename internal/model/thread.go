package model

import (
	"time"
)

type Thread struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     uint64    `gorm:"not null;index:idx_user_created,priority:1" json:"user_id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Status     string    `gorm:"type:varchar(16);not null;default:draft" json:"status"` // draft / published
	Tone       string    `gorm:"type:varchar(16);not null" json:"tone"`                 // comedic / casual / educational
	Transcript string    `gorm:"type:text;not null" json:"transcript"`
	FileURL    *string   `gorm:"type:varchar(512)" json:"file_url,omitempty"`
	CreatedAt  time.Time `gorm:"index:idx_user_created,priority:2" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 关联关系
	Posts []Post `gorm:"foreignKey:ThreadID;references:ID" json:"posts,omitempty"`
}

func (Thread) TableName() string {
	return "threads"
}
