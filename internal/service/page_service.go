package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/blogconf"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
)

type PageService interface {
	CreatePage(ctx context.Context, viewer model.Viewer, req *dto.PageBaseDTO) (*dto.PageInfoDTO, error)
	UpdatePage(ctx context.Context, viewer model.Viewer, id uint64, req *dto.PageBaseDTO) (*dto.PageInfoDTO, error)
	DeletePage(ctx context.Context, viewer model.Viewer, id uint64) error
	GetPage(ctx context.Context, viewer model.Viewer, id uint64) (*dto.PageInfoDTO, error)
	GetPageBySlug(ctx context.Context, viewer model.Viewer, slug string) (*dto.PageInfoDTO, error)
	ListPages(ctx context.Context, viewer model.Viewer) ([]*dto.PageInfoDTO, error)
	ListNavPages(ctx context.Context) ([]*dto.PageInfoDTO, error)
}

type pageServiceImpl struct {
	pageRepo repository.PageRepo
	settings *blogconf.Settings
}

func NewPageService(pageRepo repository.PageRepo, settings *blogconf.Settings) PageService {
	return &pageServiceImpl{
		pageRepo: pageRepo,
		settings: settings,
	}
}

func (s *pageServiceImpl) CreatePage(ctx context.Context, viewer model.Viewer, req *dto.PageBaseDTO) (*dto.PageInfoDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}
	if !viewer.IsAuthenticated() {
		return nil, UnauthorizedError
	}

	page := &model.Page{
		Title:       req.Title,
		Body:        req.Body,
		AuthorID:    viewer.ID,
		IsPublished: true,
		NavOrder:    req.NavOrder,
	}
	if req.IsPublished != nil {
		page.IsPublished = *req.IsPublished
	}
	if req.ShowInNav != nil {
		page.ShowInNav = *req.ShowInNav
	}

	slug, err := s.resolveSlug(ctx, req.Slug, req.Title, 0)
	if err != nil {
		return nil, err
	}
	page.Slug = slug

	if err = s.pageRepo.CreatePage(ctx, page); err != nil {
		if isDuplicateError(err) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}
	log.InfoContext(ctx, "page created", "page_id", page.ID, "slug", page.Slug)
	return toPageDTO(page), nil
}

func (s *pageServiceImpl) UpdatePage(ctx context.Context, viewer model.Viewer, id uint64, req *dto.PageBaseDTO) (*dto.PageInfoDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	page, err := s.ownPage(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	page.Title = req.Title
	page.Body = req.Body
	page.NavOrder = req.NavOrder
	if req.IsPublished != nil {
		page.IsPublished = *req.IsPublished
	}
	if req.ShowInNav != nil {
		page.ShowInNav = *req.ShowInNav
	}
	if req.Slug != "" && req.Slug != page.Slug {
		slug, err := s.resolveSlug(ctx, req.Slug, req.Title, page.ID)
		if err != nil {
			return nil, err
		}
		page.Slug = slug
	}

	if err = s.pageRepo.UpdatePage(ctx, page); err != nil {
		if isDuplicateError(err) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}
	return toPageDTO(page), nil
}

func (s *pageServiceImpl) DeletePage(ctx context.Context, viewer model.Viewer, id uint64) error {
	if _, err := s.ownPage(ctx, viewer, id); err != nil {
		return err
	}
	return s.pageRepo.DeletePage(ctx, id)
}

func (s *pageServiceImpl) GetPage(ctx context.Context, viewer model.Viewer, id uint64) (*dto.PageInfoDTO, error) {
	page, err := s.pageRepo.GetPage(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	if !canViewPage(page, viewer) {
		return nil, ErrPageNotFound
	}
	return toPageDTO(page), nil
}

func (s *pageServiceImpl) GetPageBySlug(ctx context.Context, viewer model.Viewer, slug string) (*dto.PageInfoDTO, error) {
	page, err := s.pageRepo.GetPageBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	if !canViewPage(page, viewer) {
		return nil, ErrPageNotFound
	}
	return toPageDTO(page), nil
}

// ListPages 作者看到全部页面，访客只看到已发布的
func (s *pageServiceImpl) ListPages(ctx context.Context, viewer model.Viewer) ([]*dto.PageInfoDTO, error) {
	pages, err := s.pageRepo.ListPages(ctx, !viewer.IsAuthenticated())
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PageInfoDTO, 0, len(pages))
	for _, page := range pages {
		if !canViewPage(page, viewer) {
			continue
		}
		result = append(result, toPageDTO(page))
	}
	return result, nil
}

func (s *pageServiceImpl) ListNavPages(ctx context.Context) ([]*dto.PageInfoDTO, error) {
	pages, err := s.pageRepo.ListNavPages(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PageInfoDTO, 0, len(pages))
	for _, page := range pages {
		result = append(result, toPageDTO(page))
	}
	return result, nil
}

func (s *pageServiceImpl) resolveSlug(ctx context.Context, requested, title string, excludeID uint64) (string, error) {
	source := requested
	if source == "" {
		if !s.settings.AutoGenerateSlugs {
			return "", ErrParamInvalid
		}
		source = title
	}

	base := util.GenerateSlug(source, s.settings.SlugMaxLength)
	if base == "" {
		return "", ErrParamInvalid
	}
	return makeUniqueSlug(ctx, base, s.settings.SlugMaxLength, func(ctx context.Context, slug string) (bool, error) {
		return s.pageRepo.ExistsSlug(ctx, slug, excludeID)
	})
}

// 未发布页面仅作者可见
func canViewPage(page *model.Page, v model.Viewer) bool {
	if page.IsPublished {
		return true
	}
	return v.IsAuthenticated() && v.ID == page.AuthorID
}

func (s *pageServiceImpl) ownPage(ctx context.Context, viewer model.Viewer, id uint64) (*model.Page, error) {
	page, err := s.pageRepo.GetPage(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	if !viewer.IsAuthenticated() || viewer.ID != page.AuthorID {
		return nil, UnauthorizedError
	}
	return page, nil
}

func toPageDTO(page *model.Page) *dto.PageInfoDTO {
	return &dto.PageInfoDTO{
		ID:          page.ID,
		Title:       page.Title,
		Slug:        page.Slug,
		Body:        page.Body,
		AuthorID:    page.AuthorID,
		IsPublished: page.IsPublished,
		ShowInNav:   page.ShowInNav,
		NavOrder:    page.NavOrder,
		CreatedAt:   page.CreatedAt.Format(timeLayout),
		UpdatedAt:   page.UpdatedAt.Format(timeLayout),
	}
}
