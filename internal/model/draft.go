package model

import (
	"time"
)

// Draft 创作向导的进度快照，与 Thread/Post 无外键关系
type Draft struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_created,priority:1" json:"user_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   *string   `gorm:"type:text" json:"content"`
	Step      int       `gorm:"not null;default:0" json:"step"`
	Settings  []byte    `gorm:"type:json" json:"settings,omitempty"`
	Posts     []byte    `gorm:"type:json" json:"posts,omitempty"`
	CreatedAt time.Time `gorm:"index:idx_user_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Draft) TableName() string {
	return "drafts"
}
