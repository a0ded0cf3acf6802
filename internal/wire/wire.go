package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/blogconf"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/repository"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

// BuildApplication 手工依赖注入。friendChecker 由宿主系统提供，
// 传 nil 时 FRIENDS 可见性仅作者可见。
func BuildApplication(db *gorm.DB, settings *blogconf.Settings, friendChecker service.FriendChecker) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	pageRepo := repository.NewPageRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	storage := minio.NewStorage()

	taxonomySvc := service.NewTaxonomyService(categoryRepo, tagRepo, settings)
	postSvc := service.NewPostService(postRepo, tagRepo, categoryRepo, commentRepo, taxonomySvc, settings, storage, friendChecker)
	pageSvc := service.NewPageService(pageRepo, settings)
	commentSvc := service.NewCommentService(commentRepo, postRepo, settings, friendChecker)
	reactionSvc := service.NewReactionService(reactionRepo, postRepo, settings, friendChecker)
	mediaSvc := service.NewMediaService(mediaRepo, postRepo, storage, settings)
	settingsSvc := service.NewSettingsService(settings)

	handlers := &api.HandlersGroup{
		PostHandler:       handler.NewPostHandler(postSvc),
		PageHandler:       handler.NewPageHandler(pageSvc),
		CommentHandler:    handler.NewCommentHandler(commentSvc),
		ModerationHandler: handler.NewModerationHandler(commentSvc),
		ReactionHandler:   handler.NewReactionHandler(reactionSvc),
		MediaHandler:      handler.NewMediaHandler(mediaSvc),
		TaxonomyHandler:   handler.NewTaxonomyHandler(taxonomySvc),
		SettingsHandler:   handler.NewSettingsHandler(settingsSvc),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewPublishScheduledJob(postSvc))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
