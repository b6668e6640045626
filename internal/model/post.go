package model

import (
	"time"
)

type Post struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ThreadID  uint64    `gorm:"not null;uniqueIndex:idx_thread_order,priority:1" json:"thread_id"`
	UserID    uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  *string   `gorm:"type:varchar(512)" json:"image_url"`
	PostOrder int       `gorm:"not null;uniqueIndex:idx_thread_order,priority:2" json:"post_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
