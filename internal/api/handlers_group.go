package api

import "Inkstone/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler       *handler.PostHandler
	PageHandler       *handler.PageHandler
	CommentHandler    *handler.CommentHandler
	ModerationHandler *handler.ModerationHandler
	ReactionHandler   *handler.ReactionHandler
	MediaHandler      *handler.MediaHandler
	TaxonomyHandler   *handler.TaxonomyHandler
	SettingsHandler   *handler.SettingsHandler
}
