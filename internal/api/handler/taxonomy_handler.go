package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandler struct {
	taxonomySvc service.TaxonomyService
}

func NewTaxonomyHandler(taxonomySvc service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomySvc: taxonomySvc,
	}
}

func (s *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	category, err := s.taxonomySvc.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, category)
}

func (s *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := parseID(c, "category_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CategoryBaseDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	category, err := s.taxonomySvc.UpdateCategory(c.Request.Context(), categoryID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, category)
}

func (s *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parseID(c, "category_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.taxonomySvc.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *TaxonomyHandler) GetCategoryBySlug(c *gin.Context) {
	category, err := s.taxonomySvc.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, category)
}

func (s *TaxonomyHandler) GetCategoryTree(c *gin.Context) {
	tree, err := s.taxonomySvc.GetCategoryTree(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tree)
}

func (s *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req dto.TagBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	tag, err := s.taxonomySvc.CreateTag(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tag)
}

func (s *TaxonomyHandler) GetTagBySlug(c *gin.Context) {
	tag, err := s.taxonomySvc.GetTagBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tag)
}

func (s *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := s.taxonomySvc.ListTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tags)
}

func (s *TaxonomyHandler) DeleteTag(c *gin.Context) {
	tagID, err := parseID(c, "tag_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.taxonomySvc.DeleteTag(c.Request.Context(), tagID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
