package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	log "log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PostBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.PostBaseDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), middleware.CurrentViewer(c), postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), middleware.CurrentViewer(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 浏览计数不阻塞详情返回
	if err = s.postSvc.TrackView(c.Request.Context(), postID); err != nil {
		log.WarnContext(c.Request.Context(), "track view failed", "post_id", postID, "err", err)
	}

	response.Success(c, post)
}

func (s *PostHandler) GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, err := s.postSvc.GetPostBySlug(c.Request.Context(), middleware.CurrentViewer(c), slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.postSvc.TrackView(c.Request.Context(), post.ID); err != nil {
		log.WarnContext(c.Request.Context(), "track view failed", "post_id", post.ID, "err", err)
	}

	response.Success(c, post)
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	var req dto.PostListQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.ListPosts(c.Request.Context(), middleware.CurrentViewer(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, posts)
}

func (s *PostHandler) ListRelatedPosts(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	posts, err := s.postSvc.ListRelatedPosts(c.Request.Context(), middleware.CurrentViewer(c), postID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, posts)
}

func (s *PostHandler) PublishPost(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.postSvc.PublishPost(c.Request.Context(), middleware.CurrentViewer(c), postID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *PostHandler) ArchivePost(c *gin.Context) {
	s.setArchived(c, true)
}

func (s *PostHandler) UnarchivePost(c *gin.Context) {
	s.setArchived(c, false)
}

func (s *PostHandler) setArchived(c *gin.Context, archived bool) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.postSvc.SetArchived(c.Request.Context(), middleware.CurrentViewer(c), postID, archived); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *PostHandler) PinPost(c *gin.Context) {
	s.setPinned(c, true)
}

func (s *PostHandler) UnpinPost(c *gin.Context) {
	s.setPinned(c, false)
}

func (s *PostHandler) setPinned(c *gin.Context, pinned bool) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.postSvc.SetPinned(c.Request.Context(), middleware.CurrentViewer(c), postID, pinned); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.postSvc.DeletePost(c.Request.Context(), middleware.CurrentViewer(c), postID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *PostHandler) EnhancePost(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.PostEnhanceDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.EnhancePost(c.Request.Context(), middleware.CurrentViewer(c), postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func parseID(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
