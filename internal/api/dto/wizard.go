package dto

// WizardPost 向导中的单条帖子
type WizardPost struct {
	ID       string  `json:"id"`
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url,omitempty"`
}

// WizardSettings 向导第三步的生成参数
type WizardSettings struct {
	Tone      string `json:"tone"`
	PostCount int    `json:"post_count"`
	CharLimit int    `json:"char_limit"`
}

// WizardState 创作向导会话状态，整体序列化存入 Redis
type WizardState struct {
	Step       int            `json:"step"`
	FileURL    *string        `json:"file_url,omitempty"`
	VideoURL   *string        `json:"video_url,omitempty"`
	Title      string         `json:"title,omitempty"`
	Transcript string         `json:"transcript"`
	Settings   WizardSettings `json:"settings"`
	Posts      []WizardPost   `json:"posts"`
	DraftID    uint64         `json:"draft_id,omitempty"`
	Publishing bool           `json:"publishing"`
	Published  bool           `json:"published"`
	ThreadID   uint64         `json:"thread_id,omitempty"`
	UpdatedAt  string         `json:"updated_at"`
}

// WizardSourceDTO 第一步：本地文件或视频链接，二选一
type WizardSourceDTO struct {
	FileURL  *string `json:"file_url" validate:"omitempty,max=512"`
	VideoURL *string `json:"video_url" validate:"omitempty,max=512"`
}

// WizardTranscriptDTO 第二步：人工修订转写文本
type WizardTranscriptDTO struct {
	Transcript string `json:"transcript" binding:"required"`
}

// WizardSettingsDTO 第三步
type WizardSettingsDTO struct {
	Tone      string `json:"tone" binding:"required"`
	PostCount int    `json:"post_count" binding:"required"`
	CharLimit int    `json:"char_limit"`
}

// WizardPostEditDTO 第四步：编辑单条帖子
type WizardPostEditDTO struct {
	Content string `json:"content" binding:"required"`
}

// WizardMoveDTO 第四步：与相邻帖子交换位置
type WizardMoveDTO struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// WizardImageDTO 第四步：为帖子配图
type WizardImageDTO struct {
	Mode      string `json:"mode" binding:"required,oneof=generate upload"`
	Prompt    string `json:"prompt"`
	ObjectKey string `json:"object_key"`
}

// WizardPublishDTO 第五步：平台开关
type WizardPublishDTO struct {
	ToX       bool `json:"to_x"`
	ToThreads bool `json:"to_threads"`
}

// WizardPublishResultDTO 发布结果
type WizardPublishResultDTO struct {
	ThreadID  uint64              `json:"thread_id"`
	Platforms map[string][]string `json:"platforms"`
}
