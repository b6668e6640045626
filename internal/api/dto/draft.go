package dto

import (
	"github.com/goccy/go-json"
)

// DraftCreateDTO 新建草稿
type DraftCreateDTO struct {
	Title    string          `json:"title" binding:"required" validate:"min=1,max=255"`
	Content  *string         `json:"content"`
	Step     int             `json:"step" validate:"min=0,max=4"`
	Settings json.RawMessage `json:"settings"`
	Posts    json.RawMessage `json:"posts"`
}

// DraftPatchDTO 部分更新
type DraftPatchDTO struct {
	Title    *string         `json:"title" validate:"omitempty,min=1,max=255"`
	Content  *string         `json:"content"`
	Step     *int            `json:"step" validate:"omitempty,min=0,max=4"`
	Settings json.RawMessage `json:"settings"`
	Posts    json.RawMessage `json:"posts"`
}

// DraftUpdateDTO 更新请求体
type DraftUpdateDTO struct {
	ID      uint64        `json:"id" binding:"required"`
	Updates DraftPatchDTO `json:"updates"`
}

// DraftDeleteDTO 删除请求体
type DraftDeleteDTO struct {
	ID uint64 `json:"id" binding:"required"`
}
