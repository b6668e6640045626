package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
	BadGateway          = 502
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrAuthCodeIncorrect       = errors.New("登录授权码无效或已过期")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrThreadNotFound          = errors.New("推文串不存在")
	ErrPostNotFound            = errors.New("帖子不存在")
	ErrDraftNotFound           = errors.New("草稿不存在")
	ErrToneInvalid             = errors.New("无效的风格选项")
	ErrTranscriptEmpty         = errors.New("转写文本不能为空")
	ErrStatusTransition        = errors.New("已发布的推文串不能退回草稿")
	ErrPostOrderInvalid        = errors.New("帖子顺序不合法")
	ErrThreadEmptyResponse     = errors.New("生成服务未返回内容")
	ErrThreadGenerate          = errors.New("推文串生成失败")
	ErrSourceUnreachable       = errors.New("无法访问素材链接")
	ErrTranscribeFailed        = errors.New("转写失败，请稍后重试")
	ErrImageGenerate           = errors.New("配图生成失败")
	ErrWizardNotFound          = errors.New("创作会话不存在或已过期")
	ErrWizardStepBlocked       = errors.New("当前步骤未满足前进条件")
	ErrWizardPublishing        = errors.New("发布进行中，请稍候")
	ErrWizardNoPlatform        = errors.New("请至少选择一个发布平台")
	ErrPublishUnauthorized     = errors.New("平台授权失效")
	ErrPublishRateLimited      = errors.New("平台限流，请稍后重试")
	ErrPublishRejected         = errors.New("平台拒绝了本次发布")
	ErrPublishFailed           = errors.New("发布失败，请重试")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserUsernameExist:       BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrAuthCodeIncorrect:       Unauthorized,
	ErrFileNotSupported:        BadRequest,
	ErrThreadNotFound:          NotFound,
	ErrPostNotFound:            NotFound,
	ErrDraftNotFound:           NotFound,
	ErrToneInvalid:             BadRequest,
	ErrTranscriptEmpty:         BadRequest,
	ErrStatusTransition:        BadRequest,
	ErrPostOrderInvalid:        BadRequest,
	ErrThreadEmptyResponse:     BadGateway,
	ErrThreadGenerate:          BadGateway,
	ErrSourceUnreachable:       BadRequest,
	ErrTranscribeFailed:        InternalServerError,
	ErrImageGenerate:           BadGateway,
	ErrWizardNotFound:          NotFound,
	ErrWizardStepBlocked:       BadRequest,
	ErrWizardPublishing:        BadRequest,
	ErrWizardNoPlatform:        BadRequest,
	ErrPublishUnauthorized:     BadGateway,
	ErrPublishRateLimited:      BadGateway,
	ErrPublishRejected:         BadGateway,
	ErrPublishFailed:           BadGateway,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
