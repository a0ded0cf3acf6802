package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"io"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

func (s *MediaHandler) Upload(c *gin.Context) {
	userID := c.GetUint64("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}

	item, err := s.mediaSvc.Upload(c.Request.Context(), &service.UploadInput{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
		UploadedBy:  util.PtrUint64(userID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, item)
}

func (s *MediaHandler) GetItem(c *gin.Context) {
	itemID, err := parseID(c, "item_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	item, err := s.mediaSvc.GetItem(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, item)
}

func (s *MediaHandler) ListItems(c *gin.Context) {
	var req dto.MediaListQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	items, err := s.mediaSvc.ListItems(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}

func (s *MediaHandler) UpdateItem(c *gin.Context) {
	itemID, err := parseID(c, "item_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.MediaUpdateDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, err := s.mediaSvc.UpdateItem(c.Request.Context(), middleware.CurrentViewer(c), itemID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, item)
}

func (s *MediaHandler) DeleteItem(c *gin.Context) {
	itemID, err := parseID(c, "item_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.mediaSvc.DeleteItem(c.Request.Context(), middleware.CurrentViewer(c), itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *MediaHandler) AttachToPost(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.AttachDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	attachment, err := s.mediaSvc.AttachToPost(c.Request.Context(), middleware.CurrentViewer(c), postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, attachment)
}

func (s *MediaHandler) DetachFromPost(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	itemID, err := parseID(c, "item_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.mediaSvc.DetachFromPost(c.Request.Context(), middleware.CurrentViewer(c), postID, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *MediaHandler) ListPostMedia(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	attachments, err := s.mediaSvc.ListPostMedia(c.Request.Context(), middleware.CurrentViewer(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, attachments)
}
