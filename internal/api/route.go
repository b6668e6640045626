package api

import (
	"ThreadFarm/internal/api/middleware"
	"ThreadFarm/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.PUT("/info", group.UserHandler.UpdateUserInfo)
			}
		}

		authGroup := apiGroup.Group("")
		authGroup.Use(middleware.AuthMiddleware())
		{
			authGroup.POST("/generate-thread", group.GenerateHandler.GenerateThread)
			authGroup.POST("/media/upload", group.MediaHandler.Upload)

			threadGroup := authGroup.Group("/threads")
			{
				threadGroup.GET("", group.ThreadHandler.ListThreads)
				threadGroup.GET("/:id", group.ThreadHandler.GetThread)
				threadGroup.POST("", group.ThreadHandler.CreateThread)
				threadGroup.PUT("", group.ThreadHandler.UpdateThread)
				threadGroup.DELETE("", group.ThreadHandler.DeleteThread)
			}

			postGroup := authGroup.Group("/posts")
			{
				postGroup.GET("", group.PostHandler.ListPosts)
				postGroup.POST("", group.PostHandler.CreatePosts)
				postGroup.PUT("/reorder", group.PostHandler.ReorderPosts)
				postGroup.PUT("/:id", group.PostHandler.UpdatePost)
				postGroup.DELETE("/:id", group.PostHandler.DeletePost)
			}

			draftGroup := authGroup.Group("/drafts")
			{
				draftGroup.GET("", group.DraftHandler.ListDrafts)
				draftGroup.GET("/:id", group.DraftHandler.GetDraft)
				draftGroup.POST("", group.DraftHandler.CreateDraft)
				draftGroup.PUT("", group.DraftHandler.UpdateDraft)
				draftGroup.DELETE("", group.DraftHandler.DeleteDraft)
			}

			wizardGroup := authGroup.Group("/wizard")
			{
				wizardGroup.POST("/start", group.WizardHandler.Start)
				wizardGroup.GET("", group.WizardHandler.Get)
				wizardGroup.POST("/advance", group.WizardHandler.Advance)
				wizardGroup.POST("/back", group.WizardHandler.Back)
				wizardGroup.PUT("/source", group.WizardHandler.SetSource)
				wizardGroup.POST("/transcribe", group.WizardHandler.Transcribe)
				wizardGroup.PUT("/transcript", group.WizardHandler.SetTranscript)
				wizardGroup.PUT("/settings", group.WizardHandler.SetSettings)
				wizardGroup.POST("/generate", group.WizardHandler.Generate)
				wizardGroup.PUT("/posts/:index", group.WizardHandler.EditPost)
				wizardGroup.POST("/posts/:index/move", group.WizardHandler.MovePost)
				wizardGroup.POST("/posts/:index/image", group.WizardHandler.AttachImage)
				wizardGroup.POST("/draft", group.WizardHandler.SaveDraft)
				wizardGroup.POST("/resume/:id", group.WizardHandler.Resume)
				wizardGroup.POST("/publish", group.WizardHandler.Publish)
				wizardGroup.DELETE("", group.WizardHandler.Discard)
			}
		}
	}

	// 授权码回跳不能挂会话门禁之外的鉴权
	r.GET("/auth/callback", group.UserHandler.AuthCallback)

	pageGroup := r.Group("")
	pageGroup.Use(middleware.SessionGateMiddleware())
	{
		pageGroup.GET("/login", group.PageHandler.Login())
		pageGroup.GET("/signup", group.PageHandler.Signup())
		pageGroup.GET("/reset-password", group.PageHandler.ResetPassword())
		pageGroup.GET("/dashboard", group.PageHandler.Dashboard())
		pageGroup.GET("/create", group.PageHandler.Create())
		pageGroup.GET("/settings", group.PageHandler.Settings())
	}

	return r
}
