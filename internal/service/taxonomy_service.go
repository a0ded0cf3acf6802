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

// maxCategoryDepth 分类树的最大探测深度，超过视为数据损坏
const maxCategoryDepth = 128

type TaxonomyService interface {
	CreateCategory(ctx context.Context, req *dto.CategoryBaseDTO) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uint64, req *dto.CategoryBaseDTO) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uint64) error
	GetCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*dto.CategoryDTO, error)
	GetCategoryTree(ctx context.Context) ([]*dto.CategoryDTO, error)
	DescendantIDs(ctx context.Context, rootID uint64) ([]uint64, error)

	CreateTag(ctx context.Context, req *dto.TagBaseDTO) (*dto.TagDTO, error)
	GetTagBySlug(ctx context.Context, slug string) (*dto.TagDTO, error)
	ListTags(ctx context.Context) ([]*dto.TagDTO, error)
	DeleteTag(ctx context.Context, id uint64) error
}

type taxonomyServiceImpl struct {
	categoryRepo repository.CategoryRepo
	tagRepo      repository.TagRepo
	settings     *blogconf.Settings
}

func NewTaxonomyService(categoryRepo repository.CategoryRepo, tagRepo repository.TagRepo, settings *blogconf.Settings) TaxonomyService {
	return &taxonomyServiceImpl{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		settings:     settings,
	}
}

func (s *taxonomyServiceImpl) CreateCategory(ctx context.Context, req *dto.CategoryBaseDTO) (*dto.CategoryDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	if req.ParentID != nil {
		if _, err := s.categoryRepo.GetCategory(ctx, *req.ParentID); err != nil {
			if isNotFound(err) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	slug, err := s.categorySlug(ctx, req, 0)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &model.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
		IsActive:    isActive,
	}

	if err = s.categoryRepo.CreateCategory(ctx, category); err != nil {
		if isDuplicateError(err) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}

	log.InfoContext(ctx, "category created", "id", category.ID, "slug", category.Slug)
	return s.toCategoryDTO(ctx, category, false), nil
}

func (s *taxonomyServiceImpl) UpdateCategory(ctx context.Context, id uint64, req *dto.CategoryBaseDTO) (*dto.CategoryDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, ErrCategoryCycle
		}
		if err = s.checkNoCycle(ctx, id, *req.ParentID); err != nil {
			return nil, err
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	category.ParentID = req.ParentID
	category.SortOrder = req.SortOrder
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.Slug != "" && req.Slug != category.Slug {
		slug, err := makeUniqueSlug(ctx, util.GenerateSlug(req.Slug, s.settings.SlugMaxLength), s.settings.SlugMaxLength,
			func(ctx context.Context, candidate string) (bool, error) {
				return s.categoryRepo.ExistsSlug(ctx, candidate, id)
			})
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}

	if err = s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		if isDuplicateError(err) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}

	return s.toCategoryDTO(ctx, category, false), nil
}

// DeleteCategory 删除分类。子分类上提到父级，帖子归属由外键置空。
func (s *taxonomyServiceImpl) DeleteCategory(ctx context.Context, id uint64) error {
	if _, err := s.categoryRepo.GetCategory(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCategoryNotFound
		}
		return err
	}

	children, err := s.categoryRepo.ListChildren(ctx, id)
	if err != nil {
		return err
	}
	// 子分类的父引用置空提升为根，不级联删除
	for _, child := range children {
		child.ParentID = nil
		if err = s.categoryRepo.UpdateCategory(ctx, child); err != nil {
			return err
		}
	}

	return s.categoryRepo.DeleteCategory(ctx, id)
}

func (s *taxonomyServiceImpl) GetCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.toCategoryDTO(ctx, category, true), nil
}

func (s *taxonomyServiceImpl) GetCategoryBySlug(ctx context.Context, slug string) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.toCategoryDTO(ctx, category, true), nil
}

// GetCategoryTree 返回激活分类构成的树，根节点在顶层
func (s *taxonomyServiceImpl) GetCategoryTree(ctx context.Context) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, true)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uint64]*dto.CategoryDTO, len(categories))
	for _, c := range categories {
		nodes[c.ID] = s.toCategoryDTO(ctx, c, false)
	}

	var roots []*dto.CategoryDTO
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

// DescendantIDs 返回指定分类及其全部后代的 ID，按分类过滤帖子时使用。
// 自引用数据用已访问集合兜底，不会死循环。
func (s *taxonomyServiceImpl) DescendantIDs(ctx context.Context, rootID uint64) ([]uint64, error) {
	visited := map[uint64]bool{rootID: true}
	result := []uint64{rootID}
	frontier := []uint64{rootID}

	for depth := 0; depth < maxCategoryDepth && len(frontier) > 0; depth++ {
		var next []uint64
		for _, id := range frontier {
			children, err := s.categoryRepo.ListChildren(ctx, id)
			if err != nil {
				return nil, err
			}
			for _, child := range children {
				if visited[child.ID] {
					continue
				}
				visited[child.ID] = true
				result = append(result, child.ID)
				next = append(next, child.ID)
			}
		}
		frontier = next
	}
	return result, nil
}

// checkNoCycle 向上回溯新父级的祖先链，发现待改节点即为循环
func (s *taxonomyServiceImpl) checkNoCycle(ctx context.Context, id, newParentID uint64) error {
	visited := make(map[uint64]bool)
	current := newParentID

	for depth := 0; depth < maxCategoryDepth; depth++ {
		if current == id {
			return ErrCategoryCycle
		}
		if visited[current] {
			return ErrCategoryCycle
		}
		visited[current] = true

		parent, err := s.categoryRepo.GetCategory(ctx, current)
		if err != nil {
			if isNotFound(err) {
				return ErrCategoryNotFound
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
	return ErrCategoryCycle
}

func (s *taxonomyServiceImpl) categorySlug(ctx context.Context, req *dto.CategoryBaseDTO, excludeID uint64) (string, error) {
	source := req.Slug
	if source == "" {
		source = req.Name
	}
	base := util.GenerateSlug(source, s.settings.SlugMaxLength)
	return makeUniqueSlug(ctx, base, s.settings.SlugMaxLength, func(ctx context.Context, candidate string) (bool, error) {
		return s.categoryRepo.ExistsSlug(ctx, candidate, excludeID)
	})
}

func (s *taxonomyServiceImpl) toCategoryDTO(ctx context.Context, category *model.Category, withCount bool) *dto.CategoryDTO {
	out := &dto.CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ParentID:    category.ParentID,
		SortOrder:   category.SortOrder,
		IsActive:    category.IsActive,
	}
	if withCount {
		count, err := s.categoryRepo.CountPosts(ctx, category.ID)
		if err == nil {
			out.PostCount = count
		}
	}
	return out
}

func (s *taxonomyServiceImpl) CreateTag(ctx context.Context, req *dto.TagBaseDTO) (*dto.TagDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	tag := &model.Tag{
		Name:        req.Name,
		Slug:        util.GenerateSlug(req.Name, s.settings.SlugMaxLength),
		Description: req.Description,
	}
	if err := s.tagRepo.CreateTag(ctx, tag); err != nil {
		if isDuplicateError(err) {
			existing, gerr := s.tagRepo.GetTagByName(ctx, req.Name)
			if gerr == nil {
				return s.toTagDTO(ctx, existing), nil
			}
			return nil, ErrSlugConflict
		}
		return nil, err
	}
	return s.toTagDTO(ctx, tag), nil
}

func (s *taxonomyServiceImpl) GetTagBySlug(ctx context.Context, slug string) (*dto.TagDTO, error) {
	tag, err := s.tagRepo.GetTagBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return s.toTagDTO(ctx, tag), nil
}

func (s *taxonomyServiceImpl) ListTags(ctx context.Context) ([]*dto.TagDTO, error) {
	tags, err := s.tagRepo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.TagDTO, 0, len(tags))
	for _, tag := range tags {
		result = append(result, s.toTagDTO(ctx, tag))
	}
	return result, nil
}

func (s *taxonomyServiceImpl) DeleteTag(ctx context.Context, id uint64) error {
	if _, err := s.tagRepo.GetTag(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrTagNotFound
		}
		return err
	}
	return s.tagRepo.DeleteTag(ctx, id)
}

func (s *taxonomyServiceImpl) toTagDTO(ctx context.Context, tag *model.Tag) *dto.TagDTO {
	out := &dto.TagDTO{
		ID:          tag.ID,
		Name:        tag.Name,
		Slug:        tag.Slug,
		Description: tag.Description,
	}
	count, err := s.tagRepo.CountPosts(ctx, tag.ID)
	if err == nil {
		out.PostCount = count
	}
	return out
}
