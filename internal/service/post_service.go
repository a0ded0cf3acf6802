package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/blogconf"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/llm"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

type PostService interface {
	CreatePost(ctx context.Context, authorID uint64, req *dto.PostBaseDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, viewer model.Viewer, id uint64, req *dto.PostBaseDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, viewer model.Viewer, id uint64) (*dto.PostDTO, error)
	GetPostBySlug(ctx context.Context, viewer model.Viewer, slug string) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, viewer model.Viewer, req *dto.PostListQueryDTO) (*dto.PagedDTO, error)
	ListRelatedPosts(ctx context.Context, viewer model.Viewer, id uint64, limit int) ([]*dto.PostListItemDTO, error)
	PublishPost(ctx context.Context, viewer model.Viewer, id uint64) error
	SetArchived(ctx context.Context, viewer model.Viewer, id uint64, archived bool) error
	SetPinned(ctx context.Context, viewer model.Viewer, id uint64, pinned bool) error
	DeletePost(ctx context.Context, viewer model.Viewer, id uint64) error
	TrackView(ctx context.Context, id uint64) error
	EnhancePost(ctx context.Context, viewer model.Viewer, id uint64, req *dto.PostEnhanceDTO) (*dto.PostDTO, error)
	PublishScheduled(ctx context.Context, now time.Time) (int, error)
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	tagRepo      repository.TagRepo
	categoryRepo repository.CategoryRepo
	commentRepo  repository.CommentRepo
	taxonomySvc  TaxonomyService
	settings     *blogconf.Settings
	storage      ObjectStorage

	// 好友关系由宿主系统注入，缺省 FRIENDS 档位只对作者可见
	friendChecker FriendChecker
}

func NewPostService(
	postRepo repository.PostRepo,
	tagRepo repository.TagRepo,
	categoryRepo repository.CategoryRepo,
	commentRepo repository.CommentRepo,
	taxonomySvc TaxonomyService,
	settings *blogconf.Settings,
	storage ObjectStorage,
	friendChecker FriendChecker,
) PostService {
	return &postServiceImpl{
		postRepo:      postRepo,
		tagRepo:       tagRepo,
		categoryRepo:  categoryRepo,
		commentRepo:   commentRepo,
		taxonomySvc:   taxonomySvc,
		settings:      settings,
		storage:       storage,
		friendChecker: friendChecker,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uint64, req *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}
	if req.Body == "" {
		return nil, ErrParamInvalid
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = s.settings.DefaultVisibility
	}
	if !s.settings.IsValidVisibility(visibility) {
		return nil, ErrVisibilityInvalid
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetCategory(ctx, *req.CategoryID); err != nil {
			if isNotFound(err) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	post := &model.Post{
		AuthorID:      authorID,
		Title:         req.Title,
		Body:          req.Body,
		Excerpt:       req.Excerpt,
		Location:      req.Location,
		Visibility:    visibility,
		CategoryID:    req.CategoryID,
		AllowComments: true,
	}
	if req.AllowComments != nil {
		post.AllowComments = *req.AllowComments
	}
	if req.IsDraft != nil {
		post.IsDraft = *req.IsDraft
	}

	if req.ScheduledAt != "" {
		scheduledAt, err := s.parseSchedule(req.ScheduledAt)
		if err != nil {
			return nil, err
		}
		post.ScheduledAt = scheduledAt
		post.IsDraft = false
	}

	slug, err := s.resolveSlug(ctx, req, 0)
	if err != nil {
		return nil, err
	}
	post.Slug = slug

	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		if isDuplicateError(err) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}

	if err = s.applyTags(ctx, post, req.TagNames); err != nil {
		return nil, err
	}
	if post.Visibility == model.VisibilityCustom {
		if err = s.postRepo.ReplaceAllowedUsers(ctx, post.ID, req.AllowedUserIDs); err != nil {
			return nil, err
		}
	}

	log.InfoContext(ctx, "post created", "id", post.ID, "author_id", authorID, "visibility", post.Visibility)

	created, err := s.postRepo.GetPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return s.toPostDTO(ctx, created), nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, viewer model.Viewer, id uint64, req *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	post, err := s.getOwnPost(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if req.Visibility != "" {
		if !s.settings.IsValidVisibility(req.Visibility) {
			return nil, ErrVisibilityInvalid
		}
		post.Visibility = req.Visibility
	}
	if req.CategoryID != nil {
		if _, err = s.categoryRepo.GetCategory(ctx, *req.CategoryID); err != nil {
			if isNotFound(err) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	post.Title = req.Title
	post.Body = req.Body
	post.Excerpt = req.Excerpt
	post.Location = req.Location
	post.CategoryID = req.CategoryID
	if req.AllowComments != nil {
		post.AllowComments = *req.AllowComments
	}
	if req.IsDraft != nil && post.PublishedAt == nil {
		post.IsDraft = *req.IsDraft
	}

	if req.ScheduledAt != "" && post.PublishedAt == nil {
		scheduledAt, err := s.parseSchedule(req.ScheduledAt)
		if err != nil {
			return nil, err
		}
		post.ScheduledAt = scheduledAt
		post.IsDraft = false
	}

	if req.Slug != "" && (post.Slug == nil || *post.Slug != req.Slug) {
		slug, err := makeUniqueSlug(ctx, util.GenerateSlug(req.Slug, s.settings.SlugMaxLength), s.settings.SlugMaxLength,
			func(ctx context.Context, candidate string) (bool, error) {
				return s.postRepo.ExistsSlug(ctx, candidate, id)
			})
		if err != nil {
			return nil, err
		}
		post.Slug = &slug
	}

	// 关联先清空再保存，避免 Save 级联重建
	post.Tags = nil
	post.Media = nil
	post.AllowedUsers = nil
	if err = s.postRepo.UpdatePost(ctx, post); err != nil {
		if isDuplicateError(err) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}

	if req.TagNames != nil {
		if err = s.applyTags(ctx, post, req.TagNames); err != nil {
			return nil, err
		}
	}
	if post.Visibility == model.VisibilityCustom && req.AllowedUserIDs != nil {
		if err = s.postRepo.ReplaceAllowedUsers(ctx, post.ID, req.AllowedUserIDs); err != nil {
			return nil, err
		}
	}

	updated, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toPostDTO(ctx, updated), nil
}

// GetPost 详情读取。无权查看与不存在对外等价，避免泄露帖子存在性。
func (s *postServiceImpl) GetPost(ctx context.Context, viewer model.Viewer, id uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !s.canView(ctx, post, viewer) {
		return nil, ErrPostNotFound
	}
	return s.toPostDTO(ctx, post), nil
}

func (s *postServiceImpl) GetPostBySlug(ctx context.Context, viewer model.Viewer, slug string) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !s.canView(ctx, post, viewer) {
		return nil, ErrPostNotFound
	}
	return s.toPostDTO(ctx, post), nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, viewer model.Viewer, req *dto.PostListQueryDTO) (*dto.PagedDTO, error) {
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = s.settings.PostsPerPage
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	q := repository.PostQuery{
		ViewerID:      viewer.ID,
		AuthorID:      req.AuthorID,
		TagSlug:       req.TagSlug,
		OnlyPublished: true,
		Page:          page,
		PageSize:      pageSize,
	}

	// 草稿只有作者本人的列表能带出
	if req.IncludeDrafts && viewer.IsAuthenticated() && req.AuthorID == viewer.ID {
		q.OnlyPublished = false
		q.IncludeDrafts = true
	}

	if req.CategorySlug != "" {
		category, err := s.categoryRepo.GetCategoryBySlug(ctx, req.CategorySlug)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		// 分类过滤包含整棵子树
		ids, err := s.taxonomySvc.DescendantIDs(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		q.CategoryIDs = ids
	}

	posts, total, err := s.postRepo.ListPosts(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PostListItemDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, s.toPostListItemDTO(post))
	}

	return &dto.PagedDTO{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *postServiceImpl) ListRelatedPosts(ctx context.Context, viewer model.Viewer, id uint64, limit int) ([]*dto.PostListItemDTO, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !s.canView(ctx, post, viewer) {
		return nil, ErrPostNotFound
	}

	if limit <= 0 || limit > 20 {
		limit = 5
	}
	related, err := s.postRepo.ListRelatedPosts(ctx, post, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PostListItemDTO, 0, len(related))
	for _, p := range related {
		items = append(items, s.toPostListItemDTO(p))
	}
	return items, nil
}

// PublishPost 发布。published_at 首次写入后不再变化，重复发布是幂等操作。
func (s *postServiceImpl) PublishPost(ctx context.Context, viewer model.Viewer, id uint64) error {
	if _, err := s.getOwnPost(ctx, viewer, id); err != nil {
		return err
	}

	published, err := s.postRepo.PublishPost(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if published {
		log.InfoContext(ctx, "post published", "id", id)
	}
	return nil
}

func (s *postServiceImpl) SetArchived(ctx context.Context, viewer model.Viewer, id uint64, archived bool) error {
	if _, err := s.getOwnPost(ctx, viewer, id); err != nil {
		return err
	}

	values := map[string]interface{}{"is_archived": archived}
	if archived {
		values["archived_at"] = time.Now()
	} else {
		values["archived_at"] = nil
	}
	return s.postRepo.UpdateColumns(ctx, id, values)
}

func (s *postServiceImpl) SetPinned(ctx context.Context, viewer model.Viewer, id uint64, pinned bool) error {
	if _, err := s.getOwnPost(ctx, viewer, id); err != nil {
		return err
	}
	return s.postRepo.UpdateColumns(ctx, id, map[string]interface{}{"is_pinned": pinned})
}

func (s *postServiceImpl) DeletePost(ctx context.Context, viewer model.Viewer, id uint64) error {
	if _, err := s.getOwnPost(ctx, viewer, id); err != nil {
		return err
	}
	return s.postRepo.SoftDeletePost(ctx, id)
}

// TrackView 浏览计数在数据库侧原子自增，Redis 只做热点缓冲
func (s *postServiceImpl) TrackView(ctx context.Context, id uint64) error {
	if err := s.postRepo.IncrementViewCount(ctx, id); err != nil {
		return err
	}
	if err := redis.IncrBy(ctx, consts.PostViewKey+strconv.FormatUint(id, 10), 1); err != nil {
		log.WarnContext(ctx, "view count cache update failed", "id", id, "err", err)
	}
	return nil
}

// EnhancePost AI润色。原文只在首次润色时存档，后续润色不覆盖。
func (s *postServiceImpl) EnhancePost(ctx context.Context, viewer model.Viewer, id uint64, req *dto.PostEnhanceDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}
	if !s.settings.TrackAIEnhancements || !llm.Enabled() {
		return nil, ErrAIDisabled
	}

	post, err := s.getOwnPost(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	enhanced, err := llm.EnhanceContent(ctx, post.Body, req.Instructions)
	if err != nil {
		return nil, err
	}

	values := map[string]interface{}{
		"body":            enhanced,
		"content_hash":    model.HashContent(enhanced),
		"ai_enhanced":     true,
		"ai_instructions": req.Instructions,
	}
	if !post.AIEnhanced {
		values["original_content"] = post.Body
	}
	if err = s.postRepo.UpdateColumns(ctx, id, values); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toPostDTO(ctx, updated), nil
}

// PublishScheduled 定时任务入口：发布所有到点的定时帖。
// PublishPost 的首发即定语义保证了任务重复执行不会改写发布时间。
func (s *postServiceImpl) PublishScheduled(ctx context.Context, now time.Time) (int, error) {
	due, err := s.postRepo.ListScheduledDue(ctx, now)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, post := range due {
		published, err := s.postRepo.PublishPost(ctx, post.ID, now)
		if err != nil {
			log.ErrorContext(ctx, "scheduled publish failed", "id", post.ID, "err", err)
			continue
		}
		if published {
			count++
		}
	}
	return count, nil
}

func (s *postServiceImpl) parseSchedule(value string) (*time.Time, error) {
	if !s.settings.AllowScheduledPosts {
		return nil, ErrScheduleDisabled
	}
	scheduledAt, err := time.ParseInLocation(timeLayout, value, time.Local)
	if err != nil {
		return nil, ErrParamInvalid
	}
	if !scheduledAt.After(time.Now()) {
		return nil, ErrScheduleInPast
	}
	return &scheduledAt, nil
}

// resolveSlug 有标题才生成 slug，无标题的帖子保持为空
func (s *postServiceImpl) resolveSlug(ctx context.Context, req *dto.PostBaseDTO, excludeID uint64) (*string, error) {
	source := req.Slug
	if source == "" {
		if !s.settings.AutoGenerateSlugs || req.Title == "" {
			return nil, nil
		}
		source = req.Title
	}

	base := util.GenerateSlug(source, s.settings.SlugMaxLength)
	if base == "" {
		return nil, nil
	}

	slug, err := makeUniqueSlug(ctx, base, s.settings.SlugMaxLength, func(ctx context.Context, candidate string) (bool, error) {
		return s.postRepo.ExistsSlug(ctx, candidate, excludeID)
	})
	if err != nil {
		return nil, err
	}
	return &slug, nil
}

func (s *postServiceImpl) applyTags(ctx context.Context, post *model.Post, names []string) error {
	if len(names) == 0 {
		return s.postRepo.ReplaceTags(ctx, post, nil)
	}
	tags, err := s.tagRepo.GetOrCreateTags(ctx, names, func(name string) string {
		return util.GenerateSlug(name, s.settings.SlugMaxLength)
	})
	if err != nil {
		return err
	}
	return s.postRepo.ReplaceTags(ctx, post, tags)
}

func (s *postServiceImpl) getOwnPost(ctx context.Context, viewer model.Viewer, id uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.IsDeleted {
		return nil, ErrPostNotFound
	}
	if !viewer.IsAuthenticated() || viewer.ID != post.AuthorID {
		return nil, UnauthorizedError
	}
	return post, nil
}

func (s *postServiceImpl) canView(ctx context.Context, post *model.Post, viewer model.Viewer) bool {
	if post.CanView(viewer) {
		return true
	}
	// FRIENDS 档位在模型层默认拒绝，这里用注入的好友关系补判
	if post.Visibility == model.VisibilityFriends &&
		viewer.IsAuthenticated() && !post.IsDraft && !post.IsDeleted &&
		s.friendChecker != nil {
		isFriend, err := s.friendChecker(ctx, post.AuthorID, viewer.ID)
		if err != nil {
			log.WarnContext(ctx, "friend check failed", "post_id", post.ID, "err", err)
			return false
		}
		return isFriend
	}
	return false
}

func (s *postServiceImpl) toPostDTO(ctx context.Context, post *model.Post) *dto.PostDTO {
	out := &dto.PostDTO{
		ID:            post.ID,
		AuthorID:      post.AuthorID,
		Title:         post.Title,
		Slug:          post.Slug,
		Body:          post.Body,
		Excerpt:       post.Excerpt,
		Preview:       post.Preview(),
		Location:      post.Location,
		Visibility:    post.Visibility,
		IsDraft:       post.IsDraft,
		IsPinned:      post.IsPinned,
		IsArchived:    post.IsArchived,
		AllowComments: post.AllowComments,
		AIEnhanced:    post.AIEnhanced,
		ViewCount:     post.ViewCount,
		CreatedAt:     post.CreatedAt.Format(timeLayout),
		UpdatedAt:     post.UpdatedAt.Format(timeLayout),
		Tags:          make([]*dto.TagDTO, 0, len(post.Tags)),
		Media:         make([]*dto.AttachmentDTO, 0, len(post.Media)),
	}
	if post.ScheduledAt != nil {
		out.ScheduledAt = post.ScheduledAt.Format(timeLayout)
	}
	if post.PublishedAt != nil {
		out.PublishedAt = post.PublishedAt.Format(timeLayout)
	}
	if post.Category != nil {
		out.Category = &dto.CategoryDTO{
			ID:   post.Category.ID,
			Name: post.Category.Name,
			Slug: post.Category.Slug,
		}
	}
	for i := range post.Tags {
		tag := &post.Tags[i]
		out.Tags = append(out.Tags, &dto.TagDTO{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
	}
	for i := range post.Media {
		pm := &post.Media[i]
		var url string
		if s.storage != nil {
			url = s.storage.PublicURL(pm.Item.ObjectKey)
		}
		out.Media = append(out.Media, &dto.AttachmentDTO{
			ItemID:    pm.ItemID,
			URL:       url,
			MediaType: pm.Item.MediaType,
			MimeType:  pm.Item.MimeType,
			Width:     pm.Item.Width,
			Height:    pm.Item.Height,
			SortOrder: pm.SortOrder,
			AltText:   pm.EffectiveAltText(),
			Caption:   pm.EffectiveCaption(),
		})
	}

	if count, err := s.commentRepo.CountApproved(ctx, post.ID); err == nil {
		out.CommentCount = count
	}
	return out
}

func (s *postServiceImpl) toPostListItemDTO(post *model.Post) *dto.PostListItemDTO {
	out := &dto.PostListItemDTO{
		ID:         post.ID,
		AuthorID:   post.AuthorID,
		Title:      post.Title,
		Slug:       post.Slug,
		Preview:    post.Preview(),
		Visibility: post.Visibility,
		IsDraft:    post.IsDraft,
		IsPinned:   post.IsPinned,
		ViewCount:  post.ViewCount,
		CreatedAt:  post.CreatedAt.Format(timeLayout),
		Tags:       make([]*dto.TagDTO, 0, len(post.Tags)),
	}
	if post.PublishedAt != nil {
		out.PublishedAt = post.PublishedAt.Format(timeLayout)
	}
	if post.Category != nil {
		out.Category = post.Category.Name
	}
	for i := range post.Tags {
		tag := &post.Tags[i]
		out.Tags = append(out.Tags, &dto.TagDTO{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
	}
	return out
}
