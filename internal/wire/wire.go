package wire

import (
	"ThreadFarm/internal/api"
	"ThreadFarm/internal/api/config"
	"ThreadFarm/internal/api/handler"
	"ThreadFarm/internal/job"
	"ThreadFarm/internal/pkg/consts"
	"ThreadFarm/internal/pkg/cron"
	"ThreadFarm/internal/pkg/publisher"
	"ThreadFarm/internal/repository"
	"ThreadFarm/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	postRepo := repository.NewPostRepository(db)
	draftRepo := repository.NewDraftRepository(db)

	publishers := map[string]publisher.Client{
		consts.PlatformX:       publisher.NewXClient(cfg.Publisher.X),
		consts.PlatformThreads: publisher.NewThreadsClient(cfg.Publisher.Threads),
	}

	userService := service.NewUserService(userRepo)
	threadService := service.NewThreadService(threadRepo)
	postService := service.NewPostService(postRepo, threadRepo)
	draftService := service.NewDraftService(draftRepo)
	generateService := service.NewGenerateService()
	transcribeService := service.NewTranscribeService()
	imageService := service.NewImageService()
	mediaService := service.NewMediaService()
	wizardService := service.NewWizardService(
		service.NewRedisWizardStore(),
		service.NewRedisWizardLock(),
		generateService,
		transcribeService,
		imageService,
		draftRepo,
		threadRepo,
		postRepo,
		publishers,
	)

	handlers := &api.HandlersGroup{
		UserHandler:     handler.NewUserHandler(userService),
		ThreadHandler:   handler.NewThreadHandler(threadService),
		PostHandler:     handler.NewPostHandler(postService),
		DraftHandler:    handler.NewDraftHandler(draftService),
		GenerateHandler: handler.NewGenerateHandler(generateService),
		MediaHandler:    handler.NewMediaHandler(mediaService),
		WizardHandler:   handler.NewWizardHandler(wizardService),
		PageHandler:     handler.NewPageHandler(),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob())

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
