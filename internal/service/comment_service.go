package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/blogconf"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"
)

// maxThreadDepth 回复链的最大遍历深度，损坏数据的保护栏
const maxThreadDepth = 128

// ClientMeta 评论提交时采集的请求元信息
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

type CommentService interface {
	CreateComment(ctx context.Context, viewer model.Viewer, req *dto.CommentCreateDTO, meta ClientMeta) (*dto.CommentSubmitResultDTO, error)
	ListComments(ctx context.Context, viewer model.Viewer, postID uint64) ([]*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, viewer model.Viewer, id uint64, req *dto.CommentUpdateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, viewer model.Viewer, id uint64) error
	GetHistory(ctx context.Context, viewer model.Viewer, commentID uint64) ([]*dto.CommentHistoryDTO, error)
	GetCommentCount(ctx context.Context, postID uint64) (int64, error)

	ListPending(ctx context.Context, postID uint64) ([]*dto.PendingCommentDTO, error)
	ApprovePending(ctx context.Context, reviewerID, pendingID uint64) (*dto.CommentDTO, error)
	RejectPending(ctx context.Context, reviewerID, pendingID uint64, reason string) error
	SetCommentApproved(ctx context.Context, reviewerID, commentID uint64, approved bool) error
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	settings    *blogconf.Settings

	friendChecker FriendChecker
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	settings *blogconf.Settings,
	friendChecker FriendChecker,
) CommentService {
	return &commentServiceImpl{
		commentRepo:   commentRepo,
		postRepo:      postRepo,
		settings:      settings,
		friendChecker: friendChecker,
	}
}

func (s *commentServiceImpl) CreateComment(ctx context.Context, viewer model.Viewer, req *dto.CommentCreateDTO, meta ClientMeta) (*dto.CommentSubmitResultDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}
	if len(req.Body) > s.settings.CommentMaxLength {
		return nil, ErrCommentTooLong
	}

	post, err := s.visiblePost(ctx, viewer, req.PostID)
	if err != nil {
		return nil, err
	}
	if !post.AllowComments {
		return nil, ErrCommentClosed
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetComment(ctx, *req.ParentID)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		if parent.PostID != req.PostID || parent.IsDeleted {
			return nil, ErrCommentNotFound
		}
	}

	// 匿名评论必须有署名，且无论审核开关如何都进待审队列
	if !viewer.IsAuthenticated() {
		if !s.settings.AllowAnonymousComments {
			return nil, ErrAnonymousForbidden
		}
		if req.AuthorName == "" || req.AuthorEmail == "" {
			return nil, ErrParamInvalid
		}
		return s.submitPending(ctx, nil, req, meta)
	}

	if s.settings.ModerateComments {
		authorID := viewer.ID
		return s.submitPending(ctx, &authorID, req, meta)
	}

	comment := &model.Comment{
		PostID:     req.PostID,
		AuthorID:   viewer.ID,
		ParentID:   req.ParentID,
		Body:       req.Body,
		IsApproved: true,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.bumpCountCache(ctx, req.PostID, 1)

	log.InfoContext(ctx, "comment created", "id", comment.ID, "post_id", req.PostID)
	return &dto.CommentSubmitResultDTO{
		Status:  "approved",
		Comment: toCommentDTO(comment),
	}, nil
}

func (s *commentServiceImpl) submitPending(ctx context.Context, authorID *uint64, req *dto.CommentCreateDTO, meta ClientMeta) (*dto.CommentSubmitResultDTO, error) {
	pending := &model.PendingComment{
		PostID:      req.PostID,
		AuthorID:    authorID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		AuthorURL:   req.AuthorURL,
		ParentID:    req.ParentID,
		Body:        req.Body,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	}
	if err := s.commentRepo.CreatePending(ctx, pending); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "comment queued for moderation", "pending_id", pending.ID, "post_id", req.PostID)
	return &dto.CommentSubmitResultDTO{
		Status:    "pending",
		PendingID: pending.ID,
	}, nil
}

// ListComments 返回整棵评论树，顶层为直接挂在帖子下的评论。
// 一次取平铺列表后在内存中组树，深度超限的悬挂节点直接丢弃。
func (s *commentServiceImpl) ListComments(ctx context.Context, viewer model.Viewer, postID uint64) ([]*dto.CommentDTO, error) {
	if _, err := s.visiblePost(ctx, viewer, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, true)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*model.Comment, len(comments))
	nodes := make(map[uint64]*dto.CommentDTO, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
		nodes[c.ID] = toCommentDTO(c)
	}

	var roots []*dto.CommentDTO
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok && depthOf(byID, c.ID) <= maxThreadDepth {
			parent.Replies = append(parent.Replies, node)
		}
	}
	return roots, nil
}

// depthOf 沿父链上溯求层级，自引用数据用已访问集合兜底
func depthOf(byID map[uint64]*model.Comment, id uint64) int {
	visited := make(map[uint64]bool)
	depth := 0
	current := byID[id]
	for current != nil && current.ParentID != nil {
		if visited[current.ID] || depth > maxThreadDepth {
			return maxThreadDepth + 1
		}
		visited[current.ID] = true
		depth++
		current = byID[*current.ParentID]
	}
	return depth
}

func (s *commentServiceImpl) UpdateComment(ctx context.Context, viewer model.Viewer, id uint64, req *dto.CommentUpdateDTO) (*dto.CommentDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}
	if len(req.Body) > s.settings.CommentMaxLength {
		return nil, ErrCommentTooLong
	}

	comment, err := s.ownComment(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	// 先快照旧正文再落新正文，历史记录只增不改
	snapshot := &model.CommentHistory{
		CommentID: comment.ID,
		Body:      comment.Body,
		EditedAt:  time.Now(),
	}
	comment.Body = req.Body
	if err = s.commentRepo.UpdateCommentBody(ctx, comment, snapshot); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCommentDTO(updated), nil
}

// DeleteComment 作者本人或管理员可删
func (s *commentServiceImpl) DeleteComment(ctx context.Context, viewer model.Viewer, id uint64) error {
	comment, err := s.ownComment(ctx, viewer, id)
	if err != nil {
		if !errors.Is(err, UnauthorizedError) || !viewer.IsAdmin() {
			return err
		}
		if comment, err = s.commentRepo.GetComment(ctx, id); err != nil {
			return ErrCommentNotFound
		}
	}
	if err = s.commentRepo.SoftDeleteComment(ctx, id); err != nil {
		return err
	}
	s.bumpCountCache(ctx, comment.PostID, -1)
	return nil
}

func (s *commentServiceImpl) GetHistory(ctx context.Context, viewer model.Viewer, commentID uint64) ([]*dto.CommentHistoryDTO, error) {
	comment, err := s.commentRepo.GetComment(ctx, commentID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if _, err = s.visiblePost(ctx, viewer, comment.PostID); err != nil {
		return nil, err
	}

	history, err := s.commentRepo.ListHistory(ctx, commentID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CommentHistoryDTO, 0, len(history))
	for _, h := range history {
		result = append(result, &dto.CommentHistoryDTO{
			ID:       h.ID,
			Body:     h.Body,
			EditedAt: h.EditedAt.Format(timeLayout),
		})
	}
	return result, nil
}

// GetCommentCount 优先取缓存，未命中回源数据库并回填
func (s *commentServiceImpl) GetCommentCount(ctx context.Context, postID uint64) (int64, error) {
	key := consts.PostCommentCountKey + strconv.FormatUint(postID, 10)
	if cached, err := redis.GetValue(ctx, key); err == nil && cached != "" {
		if count, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
			return count, nil
		}
	}

	count, err := s.commentRepo.CountApproved(ctx, postID)
	if err != nil {
		return 0, err
	}
	if err = redis.SetWithExpiration(ctx, key, count, 24*time.Hour); err != nil {
		log.WarnContext(ctx, "comment count cache set failed", "post_id", postID, "err", err)
	}
	return count, nil
}

func (s *commentServiceImpl) ListPending(ctx context.Context, postID uint64) ([]*dto.PendingCommentDTO, error) {
	pendings, err := s.commentRepo.ListPending(ctx, postID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PendingCommentDTO, 0, len(pendings))
	for _, p := range pendings {
		result = append(result, &dto.PendingCommentDTO{
			ID:          p.ID,
			PostID:      p.PostID,
			AuthorID:    p.AuthorID,
			AuthorName:  p.AuthorName,
			AuthorEmail: p.AuthorEmail,
			ParentID:    p.ParentID,
			Body:        p.Body,
			IPAddress:   p.IPAddress,
			CreatedAt:   p.CreatedAt.Format(timeLayout),
		})
	}
	return result, nil
}

// ApprovePending 审核通过。审核后待审记录即删除，重复操作按不存在处理。
func (s *commentServiceImpl) ApprovePending(ctx context.Context, reviewerID, pendingID uint64) (*dto.CommentDTO, error) {
	pending, err := s.commentRepo.GetPending(ctx, pendingID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPendingNotFound
		}
		return nil, err
	}

	var authorID uint64
	if pending.AuthorID != nil {
		authorID = *pending.AuthorID
	}
	comment := &model.Comment{
		PostID:     pending.PostID,
		AuthorID:   authorID,
		ParentID:   pending.ParentID,
		Body:       pending.Body,
		IsApproved: true,
		CreatedAt:  pending.CreatedAt,
	}

	now := time.Now()
	pending.ReviewedAt = &now
	pending.ReviewedBy = &reviewerID

	if err = s.commentRepo.ApprovePending(ctx, pending, comment); err != nil {
		if isNotFound(err) {
			return nil, ErrPendingNotFound
		}
		return nil, err
	}
	s.bumpCountCache(ctx, pending.PostID, 1)

	log.InfoContext(ctx, "pending comment approved", "pending_id", pendingID, "comment_id", comment.ID, "reviewer", reviewerID)
	return toCommentDTO(comment), nil
}

func (s *commentServiceImpl) RejectPending(ctx context.Context, reviewerID, pendingID uint64, reason string) error {
	pending, err := s.commentRepo.GetPending(ctx, pendingID)
	if err != nil {
		if isNotFound(err) {
			return ErrPendingNotFound
		}
		return err
	}

	now := time.Now()
	pending.ReviewedAt = &now
	pending.ReviewedBy = &reviewerID
	pending.RejectionReason = reason

	if err = s.commentRepo.RejectPending(ctx, pending); err != nil {
		if isNotFound(err) {
			return ErrPendingNotFound
		}
		return err
	}

	log.InfoContext(ctx, "pending comment rejected", "pending_id", pendingID, "reviewer", reviewerID)
	return nil
}

// SetCommentApproved 上架或下架一条正式评论，随时可逆
func (s *commentServiceImpl) SetCommentApproved(ctx context.Context, reviewerID, commentID uint64, approved bool) error {
	comment, err := s.commentRepo.GetComment(ctx, commentID)
	if err != nil {
		if isNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.IsDeleted {
		return ErrCommentNotFound
	}
	if comment.IsApproved == approved {
		return nil
	}

	if err = s.commentRepo.SetApproved(ctx, commentID, approved); err != nil {
		return err
	}
	delta := int64(1)
	if !approved {
		delta = -1
	}
	s.bumpCountCache(ctx, comment.PostID, delta)

	log.InfoContext(ctx, "comment approval changed", "comment_id", commentID, "approved", approved, "reviewer", reviewerID)
	return nil
}

func (s *commentServiceImpl) visiblePost(ctx context.Context, viewer model.Viewer, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.CanView(viewer) {
		return post, nil
	}
	if post.Visibility == model.VisibilityFriends &&
		viewer.IsAuthenticated() && !post.IsDraft && !post.IsDeleted &&
		s.friendChecker != nil {
		isFriend, err := s.friendChecker(ctx, post.AuthorID, viewer.ID)
		if err == nil && isFriend {
			return post, nil
		}
	}
	return nil, ErrPostNotFound
}

func (s *commentServiceImpl) ownComment(ctx context.Context, viewer model.Viewer, id uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.GetComment(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.IsDeleted {
		return nil, ErrCommentNotFound
	}
	if !viewer.IsAuthenticated() || viewer.ID != comment.AuthorID {
		return nil, UnauthorizedError
	}
	return comment, nil
}

func (s *commentServiceImpl) bumpCountCache(ctx context.Context, postID uint64, delta int64) {
	if !redis.Available() {
		return
	}
	key := consts.PostCommentCountKey + strconv.FormatUint(postID, 10)
	if err := redis.IncrBy(ctx, key, delta); err != nil {
		log.WarnContext(ctx, "comment count cache update failed", "post_id", postID, "err", err)
	}
}

func toCommentDTO(comment *model.Comment) *dto.CommentDTO {
	return &dto.CommentDTO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		ParentID:  comment.ParentID,
		Body:      comment.Body,
		IsEdited:  comment.IsEdited,
		EditCount: comment.EditCount,
		CreatedAt: comment.CreatedAt.Format(timeLayout),
	}
}
