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
	log "log/slog"
	"strconv"
)

const (
	ReactionActionAdded   = "added"
	ReactionActionChanged = "changed"
	ReactionActionRemoved = "removed"
)

type ReactionService interface {
	ToggleReaction(ctx context.Context, viewer model.Viewer, postID uint64, req *dto.ReactionToggleDTO) (*dto.ReactionToggleResultDTO, error)
	GetSummary(ctx context.Context, viewer model.Viewer, postID uint64) (*dto.ReactionSummaryDTO, error)
}

type reactionServiceImpl struct {
	reactionRepo repository.ReactionRepo
	postRepo     repository.PostRepo
	settings     *blogconf.Settings

	friendChecker FriendChecker
}

func NewReactionService(
	reactionRepo repository.ReactionRepo,
	postRepo repository.PostRepo,
	settings *blogconf.Settings,
	friendChecker FriendChecker,
) ReactionService {
	return &reactionServiceImpl{
		reactionRepo:  reactionRepo,
		postRepo:      postRepo,
		settings:      settings,
		friendChecker: friendChecker,
	}
}

// ToggleReaction 三态切换：无表态则新增，同类型则撤销，异类型则改写。
// 并发重复新增由 (post_id, user_id) 主键兜底，撞键时按重复操作返回。
func (s *reactionServiceImpl) ToggleReaction(ctx context.Context, viewer model.Viewer, postID uint64, req *dto.ReactionToggleDTO) (*dto.ReactionToggleResultDTO, error) {
	if !viewer.IsAuthenticated() {
		return nil, UnauthorizedError
	}
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}
	if !s.settings.IsValidReaction(req.ReactionType) {
		return nil, ErrReactionInvalid
	}

	if _, err := s.visiblePost(ctx, viewer, postID); err != nil {
		return nil, err
	}

	existing, err := s.reactionRepo.GetReaction(ctx, postID, viewer.ID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	result := &dto.ReactionToggleResultDTO{}
	switch {
	case existing == nil:
		reaction := &model.Reaction{
			PostID:       postID,
			UserID:       viewer.ID,
			ReactionType: req.ReactionType,
		}
		if err = s.reactionRepo.CreateReaction(ctx, reaction); err != nil {
			if isDuplicateError(err) {
				return nil, ErrActionDuplicate
			}
			return nil, err
		}
		result.Action = ReactionActionAdded
		result.Reaction = req.ReactionType
		s.bumpCountCache(ctx, postID, req.ReactionType, 1)

	case existing.ReactionType == req.ReactionType:
		if err = s.reactionRepo.DeleteReaction(ctx, postID, viewer.ID); err != nil {
			return nil, err
		}
		result.Action = ReactionActionRemoved
		s.bumpCountCache(ctx, postID, req.ReactionType, -1)

	default:
		if err = s.reactionRepo.UpdateReactionType(ctx, postID, viewer.ID, req.ReactionType); err != nil {
			return nil, err
		}
		result.Action = ReactionActionChanged
		result.Reaction = req.ReactionType
		s.bumpCountCache(ctx, postID, existing.ReactionType, -1)
		s.bumpCountCache(ctx, postID, req.ReactionType, 1)
	}

	summary, err := s.summarize(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}
	result.Summary = summary

	log.InfoContext(ctx, "reaction toggled", "post_id", postID, "user_id", viewer.ID, "action", result.Action)
	return result, nil
}

func (s *reactionServiceImpl) GetSummary(ctx context.Context, viewer model.Viewer, postID uint64) (*dto.ReactionSummaryDTO, error) {
	if _, err := s.visiblePost(ctx, viewer, postID); err != nil {
		return nil, err
	}
	return s.summarize(ctx, viewer, postID)
}

func (s *reactionServiceImpl) summarize(ctx context.Context, viewer model.Viewer, postID uint64) (*dto.ReactionSummaryDTO, error) {
	counts, err := s.reactionRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	summary := &dto.ReactionSummaryDTO{
		PostID: postID,
		Counts: make([]*dto.ReactionCountDTO, 0, len(counts)),
	}
	for _, c := range counts {
		item := &dto.ReactionCountDTO{
			ReactionType: c.ReactionType,
			Count:        c.Count,
		}
		if rt, ok := s.settings.ReactionByCode(c.ReactionType); ok {
			item.Emoji = rt.Emoji
		}
		summary.Counts = append(summary.Counts, item)
		summary.Total += c.Count
	}

	if viewer.IsAuthenticated() {
		if reaction, err := s.reactionRepo.GetReaction(ctx, postID, viewer.ID); err == nil {
			summary.UserReaction = reaction.ReactionType
		}
	}
	return summary, nil
}

func (s *reactionServiceImpl) visiblePost(ctx context.Context, viewer model.Viewer, postID uint64) (*model.Post, error) {
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

func (s *reactionServiceImpl) bumpCountCache(ctx context.Context, postID uint64, reactionType string, delta int64) {
	if !redis.Available() {
		return
	}
	key := consts.PostReactionCountKey + strconv.FormatUint(postID, 10)
	if err := redis.HIncrBy(ctx, key, reactionType, delta); err != nil {
		log.WarnContext(ctx, "reaction count cache update failed", "post_id", postID, "err", err)
	}
}
