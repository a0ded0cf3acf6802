package api

import (
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
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

		apiGroup.GET("/settings", group.SettingsHandler.GetSettings)

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PostHandler.ListPosts)
				authOptGroup.GET("/detail/:post_id", group.PostHandler.GetPost)
				authOptGroup.GET("/slug/:slug", group.PostHandler.GetPostBySlug)
				authOptGroup.GET("/related/:post_id", group.PostHandler.ListRelatedPosts)
				authOptGroup.GET("/:post_id/media", group.MediaHandler.ListPostMedia)
				authOptGroup.GET("/:post_id/reactions", group.ReactionHandler.GetSummary)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.POST("/:post_id/publish", group.PostHandler.PublishPost)
				authGroup.POST("/:post_id/archive", group.PostHandler.ArchivePost)
				authGroup.DELETE("/:post_id/archive", group.PostHandler.UnarchivePost)
				authGroup.POST("/:post_id/pin", group.PostHandler.PinPost)
				authGroup.DELETE("/:post_id/pin", group.PostHandler.UnpinPost)
				authGroup.POST("/:post_id/enhance", group.PostHandler.EnhancePost)

				authGroup.POST("/:post_id/reactions", group.ReactionHandler.ToggleReaction)

				authGroup.POST("/:post_id/media", group.MediaHandler.AttachToPost)
				authGroup.DELETE("/:post_id/media/:item_id", group.MediaHandler.DetachFromPost)
			}
		}

		pageGroup := apiGroup.Group("/pages")
		{
			authOptGroup := pageGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PageHandler.ListPages)
				authOptGroup.GET("/nav", group.PageHandler.ListNavPages)
				authOptGroup.GET("/slug/:slug", group.PageHandler.GetPageBySlug)
			}

			authGroup := pageGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PageHandler.CreatePage)
				authGroup.PUT("/:page_id", group.PageHandler.UpdatePage)
				authGroup.DELETE("/:page_id", group.PageHandler.DeletePage)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			authOptGroup := commentGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				// 匿名评论走同一入口，是否放行由服务端配置决定
				authOptGroup.POST("", group.CommentHandler.CreateComment)
				authOptGroup.GET("/post/:post_id", group.CommentHandler.ListComments)
				authOptGroup.GET("/post/:post_id/count", group.CommentHandler.GetCommentCount)
				authOptGroup.GET("/:comment_id/history", group.CommentHandler.GetHistory)
			}

			authGroup := commentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.PUT("/:comment_id", group.CommentHandler.UpdateComment)
				authGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
			}

			moderationGroup := commentGroup.Group("/moderation")
			moderationGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
			{
				moderationGroup.GET("/pending", group.ModerationHandler.ListPending)
				moderationGroup.POST("/pending/:pending_id/approve", group.ModerationHandler.ApprovePending)
				moderationGroup.POST("/pending/:pending_id/reject", group.ModerationHandler.RejectPending)
				moderationGroup.POST("/:comment_id/approve", group.ModerationHandler.ApproveComment)
				moderationGroup.POST("/:comment_id/reject", group.ModerationHandler.RejectComment)
			}
		}

		taxonomyGroup := apiGroup.Group("/taxonomy")
		{
			taxonomyGroup.GET("/categories", group.TaxonomyHandler.GetCategoryTree)
			taxonomyGroup.GET("/categories/slug/:slug", group.TaxonomyHandler.GetCategoryBySlug)
			taxonomyGroup.GET("/tags", group.TaxonomyHandler.ListTags)
			taxonomyGroup.GET("/tags/slug/:slug", group.TaxonomyHandler.GetTagBySlug)

			adminGroup := taxonomyGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.POST("/categories", group.TaxonomyHandler.CreateCategory)
				adminGroup.PUT("/categories/:category_id", group.TaxonomyHandler.UpdateCategory)
				adminGroup.DELETE("/categories/:category_id", group.TaxonomyHandler.DeleteCategory)
				adminGroup.POST("/tags", group.TaxonomyHandler.CreateTag)
				adminGroup.DELETE("/tags/:tag_id", group.TaxonomyHandler.DeleteTag)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.GET("/:item_id", group.MediaHandler.GetItem)

			authGroup := mediaGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/upload", group.MediaHandler.Upload)
				authGroup.GET("", group.MediaHandler.ListItems)
				authGroup.PUT("/:item_id", group.MediaHandler.UpdateItem)
				authGroup.DELETE("/:item_id", group.MediaHandler.DeleteItem)
			}
		}
	}

	return r
}
