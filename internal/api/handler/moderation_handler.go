package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ModerationHandler 评论审核队列，仅管理员可用
type ModerationHandler struct {
	commentSvc service.CommentService
}

func NewModerationHandler(commentSvc service.CommentService) *ModerationHandler {
	return &ModerationHandler{
		commentSvc: commentSvc,
	}
}

func (s *ModerationHandler) ListPending(c *gin.Context) {
	// post_id 为空时返回全部待审评论
	postID, _ := strconv.ParseUint(c.Query("post_id"), 10, 64)

	pending, err := s.commentSvc.ListPending(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, pending)
}

func (s *ModerationHandler) ApprovePending(c *gin.Context) {
	userID := c.GetUint64("user_id")
	pendingID, err := parseID(c, "pending_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	comment, err := s.commentSvc.ApprovePending(c.Request.Context(), userID, pendingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comment)
}

func (s *ModerationHandler) RejectPending(c *gin.Context) {
	userID := c.GetUint64("user_id")
	pendingID, err := parseID(c, "pending_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CommentRejectDTO
	if err = c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, err)
		return
	}

	if err = s.commentSvc.RejectPending(c.Request.Context(), userID, pendingID, req.Reason); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ApproveComment 上架正式评论
func (s *ModerationHandler) ApproveComment(c *gin.Context) {
	s.setApproval(c, true)
}

// RejectComment 下架正式评论
func (s *ModerationHandler) RejectComment(c *gin.Context) {
	s.setApproval(c, false)
}

func (s *ModerationHandler) setApproval(c *gin.Context, approved bool) {
	userID := c.GetUint64("user_id")
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.commentSvc.SetCommentApproved(c.Request.Context(), userID, commentID, approved); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
