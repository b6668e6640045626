package dto

// PostItemDTO 批量写入的单条帖子
type PostItemDTO struct {
	Content  string  `json:"content" binding:"required"`
	ImageURL *string `json:"image_url" validate:"omitempty,max=512"`
}

// PostBulkCreateDTO 生成或编辑完成后批量写入帖子
type PostBulkCreateDTO struct {
	ThreadID uint64        `json:"thread_id" binding:"required"`
	Posts    []PostItemDTO `json:"posts" binding:"required,min=1" validate:"max=25"`
}

// PostPatchDTO 部分更新
type PostPatchDTO struct {
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url" validate:"omitempty,max=512"`
}

// PostOrderDTO 重排序的一项
type PostOrderDTO struct {
	ID        uint64 `json:"id" binding:"required"`
	PostOrder int    `json:"post_order" binding:"min=1"`
}

// PostReorderDTO 整串重排序请求
type PostReorderDTO struct {
	ThreadID uint64         `json:"thread_id" binding:"required"`
	Orders   []PostOrderDTO `json:"orders" binding:"required,min=1"`
}
