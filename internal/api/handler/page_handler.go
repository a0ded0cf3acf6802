package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	pageSvc service.PageService
}

func NewPageHandler(pageSvc service.PageService) *PageHandler {
	return &PageHandler{
		pageSvc: pageSvc,
	}
}

func (s *PageHandler) CreatePage(c *gin.Context) {
	var req dto.PageBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.pageSvc.CreatePage(c.Request.Context(), middleware.CurrentViewer(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, page)
}

func (s *PageHandler) UpdatePage(c *gin.Context) {
	pageID, err := parseID(c, "page_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.PageBaseDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.pageSvc.UpdatePage(c.Request.Context(), middleware.CurrentViewer(c), pageID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, page)
}

func (s *PageHandler) DeletePage(c *gin.Context) {
	pageID, err := parseID(c, "page_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.pageSvc.DeletePage(c.Request.Context(), middleware.CurrentViewer(c), pageID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *PageHandler) GetPageBySlug(c *gin.Context) {
	page, err := s.pageSvc.GetPageBySlug(c.Request.Context(), middleware.CurrentViewer(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, page)
}

func (s *PageHandler) ListPages(c *gin.Context) {
	pages, err := s.pageSvc.ListPages(c.Request.Context(), middleware.CurrentViewer(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, pages)
}

func (s *PageHandler) ListNavPages(c *gin.Context) {
	pages, err := s.pageSvc.ListNavPages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, pages)
}
