package dto

// GenerateThreadDTO 生成请求
type GenerateThreadDTO struct {
	Transcript string `json:"transcript" binding:"required"`
	Tone       string `json:"tone" binding:"required"`
}

// ThreadCreateDTO 新建推文串
type ThreadCreateDTO struct {
	Title      string  `json:"title" binding:"required" validate:"min=1,max=255"`
	Transcript string  `json:"transcript" binding:"required"`
	Tone       string  `json:"tone" binding:"required"`
	FileURL    *string `json:"file_url" validate:"omitempty,max=512"`
}

// ThreadPatchDTO 部分更新，nil 字段不参与合并
type ThreadPatchDTO struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=255"`
	Transcript *string `json:"transcript"`
	Tone       *string `json:"tone"`
	Status     *string `json:"status"`
	FileURL    *string `json:"file_url" validate:"omitempty,max=512"`
}

// ThreadUpdateDTO 更新请求体
type ThreadUpdateDTO struct {
	ID      uint64         `json:"id" binding:"required"`
	Updates ThreadPatchDTO `json:"updates"`
}

// ThreadDeleteDTO 删除请求体
type ThreadDeleteDTO struct {
	ID uint64 `json:"id" binding:"required"`
}
