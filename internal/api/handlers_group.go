package api

import (
	"ThreadFarm/internal/api/handler"
)

// HandlersGroup 汇总所有接口处理器，装配阶段一次性注入
type HandlersGroup struct {
	UserHandler     *handler.UserHandler
	ThreadHandler   *handler.ThreadHandler
	PostHandler     *handler.PostHandler
	DraftHandler    *handler.DraftHandler
	GenerateHandler *handler.GenerateHandler
	MediaHandler    *handler.MediaHandler
	WizardHandler   *handler.WizardHandler
	PageHandler     *handler.PageHandler
}
