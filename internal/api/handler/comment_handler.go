package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	meta := service.ClientMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}

	result, err := s.commentSvc.CreateComment(c.Request.Context(), middleware.CurrentViewer(c), &req, meta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *CommentHandler) ListComments(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	comments, err := s.commentSvc.ListComments(c.Request.Context(), middleware.CurrentViewer(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comments)
}

func (s *CommentHandler) GetCommentCount(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	count, err := s.commentSvc.GetCommentCount(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"count": count})
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CommentUpdateDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.UpdateComment(c.Request.Context(), middleware.CurrentViewer(c), commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comment)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.commentSvc.DeleteComment(c.Request.Context(), middleware.CurrentViewer(c), commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *CommentHandler) GetHistory(c *gin.Context) {
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	history, err := s.commentSvc.GetHistory(c.Request.Context(), middleware.CurrentViewer(c), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, history)
}
