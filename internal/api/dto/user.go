package dto

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required" validate:"min=6,max=20"`
	Password string `json:"password" binding:"required" validate:"min=6,max=20"`
	Nickname string `json:"nickname" validate:"max=64"`
}

// CredentialDTO 登录凭据
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResultDTO 登录结果。AuthCode 为浏览器回跳流程使用的一次性授权码
type LoginResultDTO struct {
	Token    string `json:"token"`
	AuthCode string `json:"auth_code"`
}

// UserUpdateDTO 个人资料修改，按字段增量更新
type UserUpdateDTO struct {
	Nickname  *string `json:"nickname" validate:"omitempty,max=64"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=512"`
}

// UserDTO 用户信息
type UserDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}
