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
	"bytes"
	"context"
	"fmt"
	log "log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ObjectStorage 对象存储抽象，生产环境由 MinIO 适配器实现
type ObjectStorage interface {
	Put(ctx context.Context, objectKey string, data []byte, contentType string) error
	Get(ctx context.Context, objectKey string) ([]byte, error)
	Delete(ctx context.Context, objectKey string) error
	PublicURL(objectKey string) string
}

// UploadInput 一次媒体上传
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
	UploadedBy  *uint64
}

type MediaService interface {
	Upload(ctx context.Context, in *UploadInput) (*dto.MediaItemDTO, error)
	GetItem(ctx context.Context, id uint64) (*dto.MediaItemDTO, error)
	ListItems(ctx context.Context, req *dto.MediaListQueryDTO) (*dto.PagedDTO, error)
	UpdateItem(ctx context.Context, viewer model.Viewer, id uint64, req *dto.MediaUpdateDTO) (*dto.MediaItemDTO, error)
	DeleteItem(ctx context.Context, viewer model.Viewer, id uint64) error

	AttachToPost(ctx context.Context, viewer model.Viewer, postID uint64, req *dto.AttachDTO) (*dto.AttachmentDTO, error)
	DetachFromPost(ctx context.Context, viewer model.Viewer, postID, itemID uint64) error
	ListPostMedia(ctx context.Context, viewer model.Viewer, postID uint64) ([]*dto.AttachmentDTO, error)
}

type mediaServiceImpl struct {
	mediaRepo repository.MediaRepo
	postRepo  repository.PostRepo
	storage   ObjectStorage
	settings  *blogconf.Settings
}

func NewMediaService(
	mediaRepo repository.MediaRepo,
	postRepo repository.PostRepo,
	storage ObjectStorage,
	settings *blogconf.Settings,
) MediaService {
	return &mediaServiceImpl{
		mediaRepo: mediaRepo,
		postRepo:  postRepo,
		storage:   storage,
		settings:  settings,
	}
}

// Upload 媒体入库。以内容 SHA256 作为去重键：同一份字节重复上传时
// 直接复用既有条目，不再写对象存储。并发撞库由唯一索引兜底。
func (s *mediaServiceImpl) Upload(ctx context.Context, in *UploadInput) (*dto.MediaItemDTO, error) {
	if len(in.Data) == 0 {
		return nil, ErrParamInvalid
	}
	if int64(len(in.Data)) > s.settings.MediaMaxSizeBytes() {
		return nil, ErrMediaTooLarge
	}

	mimeType := in.ContentType
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(in.Data)
	}
	mediaType := s.classify(mimeType)

	contentHash := util.HashBytes(in.Data)
	if existing, err := s.mediaRepo.GetItemByHash(ctx, contentHash); err == nil {
		out := s.toMediaItemDTO(existing)
		out.Deduplicated = true
		log.InfoContext(ctx, "media upload deduplicated", "item_id", existing.ID, "hash", contentHash)
		return out, nil
	} else if !isNotFound(err) {
		return nil, err
	}

	// 分布式锁压一压同内容的并发首传，拿不到锁也继续，唯一索引兜底
	lockKey := consts.MediaUploadLock + contentHash
	lockVal := uuid.NewString()
	if locked, _ := redis.TryLock(ctx, lockKey, lockVal, 30*time.Second, 0); locked {
		defer redis.UnLock(ctx, lockKey, lockVal)
		if existing, err := s.mediaRepo.GetItemByHash(ctx, contentHash); err == nil {
			out := s.toMediaItemDTO(existing)
			out.Deduplicated = true
			return out, nil
		}
	}

	objectKey := s.buildObjectKey(in.Filename)
	if err := s.storage.Put(ctx, objectKey, in.Data, mimeType); err != nil {
		return nil, err
	}

	item := &model.MediaLibraryItem{
		ObjectKey:        objectKey,
		ContentHash:      contentHash,
		MediaType:        mediaType,
		OriginalFilename: in.Filename,
		FileSize:         int64(len(in.Data)),
		MimeType:         mimeType,
		UploadedBy:       in.UploadedBy,
	}

	if item.IsImage() {
		item.Width, item.Height = util.DecodeImageSize(in.Data)
		s.applyExif(item, in.Data)
	}

	if err := s.mediaRepo.CreateItem(ctx, item); err != nil {
		if isDuplicateError(err) {
			// 并发首传输了，回收自己写的对象并复用赢家的条目
			_ = s.storage.Delete(ctx, objectKey)
			existing, gerr := s.mediaRepo.GetItemByHash(ctx, contentHash)
			if gerr != nil {
				return nil, gerr
			}
			out := s.toMediaItemDTO(existing)
			out.Deduplicated = true
			return out, nil
		}
		return nil, err
	}

	// 缩略图只为配置允许的静态图片类型生成，gif 和不认识的图片格式跳过
	if s.settings.GenerateThumbnails && item.MediaType == model.MediaTypeImage &&
		s.settings.IsAllowedImageType(mimeType) {
		s.generateThumbnails(ctx, objectKey, in.Data)
	}

	if llm.Enabled() && item.IsImage() {
		go s.describeAsync(item.ID, objectKey)
	}

	log.InfoContext(ctx, "media uploaded", "item_id", item.ID, "type", mediaType, "size", item.FileSize)
	return s.toMediaItemDTO(item), nil
}

func (s *mediaServiceImpl) GetItem(ctx context.Context, id uint64) (*dto.MediaItemDTO, error) {
	item, err := s.mediaRepo.GetItem(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return s.toMediaItemDTO(item), nil
}

func (s *mediaServiceImpl) ListItems(ctx context.Context, req *dto.MediaListQueryDTO) (*dto.PagedDTO, error) {
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = s.settings.PostsPerPage
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	items, total, err := s.mediaRepo.ListItems(ctx, repository.MediaQuery{
		MediaType:  req.MediaType,
		UploadedBy: req.UploadedBy,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MediaItemDTO, 0, len(items))
	for _, item := range items {
		result = append(result, s.toMediaItemDTO(item))
	}
	return &dto.PagedDTO{Items: result, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *mediaServiceImpl) UpdateItem(ctx context.Context, viewer model.Viewer, id uint64, req *dto.MediaUpdateDTO) (*dto.MediaItemDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	item, err := s.ownItem(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if req.AltText != nil {
		item.AltText = *req.AltText
	}
	if req.Caption != nil {
		item.Caption = *req.Caption
	}
	if err = s.mediaRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return s.toMediaItemDTO(item), nil
}

// DeleteItem 媒体仍被帖子引用时拒绝删除
func (s *mediaServiceImpl) DeleteItem(ctx context.Context, viewer model.Viewer, id uint64) error {
	item, err := s.ownItem(ctx, viewer, id)
	if err != nil {
		return err
	}

	count, err := s.mediaRepo.CountAttachments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrMediaInUse
	}

	if err = s.mediaRepo.DeleteItem(ctx, id); err != nil {
		return err
	}
	if err = s.storage.Delete(ctx, item.ObjectKey); err != nil {
		log.WarnContext(ctx, "object delete failed", "object_key", item.ObjectKey, "err", err)
	}
	return nil
}

// AttachToPost 挂载媒体。(post, item) 重复挂载由唯一索引兜底。
func (s *mediaServiceImpl) AttachToPost(ctx context.Context, viewer model.Viewer, postID uint64, req *dto.AttachDTO) (*dto.AttachmentDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	if err := s.requireOwnPost(ctx, viewer, postID); err != nil {
		return nil, err
	}
	if _, err := s.mediaRepo.GetItem(ctx, req.ItemID); err != nil {
		if isNotFound(err) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}

	attachment := &model.PostMedia{
		PostID:        postID,
		ItemID:        req.ItemID,
		SortOrder:     req.SortOrder,
		CustomAltText: req.CustomAltText,
		CustomCaption: req.CustomCaption,
	}
	if err := s.mediaRepo.CreateAttachment(ctx, attachment); err != nil {
		if isDuplicateError(err) {
			return nil, ErrAttachmentExist
		}
		return nil, err
	}

	created, err := s.mediaRepo.GetAttachment(ctx, postID, req.ItemID)
	if err != nil {
		return nil, err
	}
	return s.toAttachmentDTO(created), nil
}

func (s *mediaServiceImpl) DetachFromPost(ctx context.Context, viewer model.Viewer, postID, itemID uint64) error {
	if err := s.requireOwnPost(ctx, viewer, postID); err != nil {
		return err
	}
	if _, err := s.mediaRepo.GetAttachment(ctx, postID, itemID); err != nil {
		if isNotFound(err) {
			return ErrAttachmentNotFound
		}
		return err
	}
	return s.mediaRepo.DeleteAttachment(ctx, postID, itemID)
}

func (s *mediaServiceImpl) ListPostMedia(ctx context.Context, viewer model.Viewer, postID uint64) ([]*dto.AttachmentDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !post.CanView(viewer) {
		return nil, ErrPostNotFound
	}

	attachments, err := s.mediaRepo.ListAttachments(ctx, postID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		result = append(result, s.toAttachmentDTO(a))
	}
	return result, nil
}

// classify 按 MIME 前缀分桶：gif、图片、视频、音频，其余一律按文档收录，
// 不按类型拒绝
func (s *mediaServiceImpl) classify(mimeType string) string {
	switch {
	case mimeType == consts.MimeGif:
		return model.MediaTypeGIF
	case strings.HasPrefix(mimeType, "image/"):
		return model.MediaTypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return model.MediaTypeVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return model.MediaTypeAudio
	default:
		return model.MediaTypeDocument
	}
}

// buildObjectKey 按配置的日期路径布局放置对象，uuid 防止同名覆盖
func (s *mediaServiceImpl) buildObjectKey(filename string) string {
	prefix := time.Now().Format(s.settings.MediaUploadPath)
	ext := strings.ToLower(filepath.Ext(filename))
	return prefix + uuid.NewString() + ext
}

func (s *mediaServiceImpl) applyExif(item *model.MediaLibraryItem, data []byte) {
	meta := util.ExtractExif(data)
	if meta == nil {
		return
	}
	item.ExifData = meta.Raw
	item.CameraMake = meta.CameraMake
	item.CameraModel = meta.CameraModel
	item.FocalLength = meta.FocalLength
	item.Aperture = meta.Aperture
	item.ShutterSpeed = meta.ShutterSpeed
	item.ISO = meta.ISO
	item.GPSLatitude = meta.GPSLatitude
	item.GPSLongitude = meta.GPSLongitude
	item.CaptureDate = meta.CaptureDate
}

// generateThumbnails 缩略图生成失败只记日志，不影响上传结果
func (s *mediaServiceImpl) generateThumbnails(ctx context.Context, objectKey string, data []byte) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		log.WarnContext(ctx, "thumbnail decode failed", "object_key", objectKey, "err", err)
		return
	}

	for _, size := range s.settings.ThumbnailSizes {
		thumb := imaging.Fit(src, size.Width, size.Height, imaging.Lanczos)

		var buf bytes.Buffer
		if err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
			log.WarnContext(ctx, "thumbnail encode failed", "object_key", objectKey, "err", err)
			continue
		}

		thumbKey := ThumbnailKey(objectKey, size.Width, size.Height)
		if err = s.storage.Put(ctx, thumbKey, buf.Bytes(), "image/jpeg"); err != nil {
			log.WarnContext(ctx, "thumbnail upload failed", "object_key", thumbKey, "err", err)
		}
	}
}

// ThumbnailKey 缩略图对象键的约定布局
func ThumbnailKey(objectKey string, width, height int) string {
	ext := filepath.Ext(objectKey)
	return fmt.Sprintf("%s_%dx%d.jpg", strings.TrimSuffix(objectKey, ext), width, height)
}

// describeAsync 上传返回后异步补齐 AI 描述
func (s *mediaServiceImpl) describeAsync(itemID uint64, objectKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	caption, err := llm.DescribeImage(ctx, s.storage.PublicURL(objectKey))
	if err != nil {
		log.Warn("media ai description failed", "item_id", itemID, "err", err)
		return
	}

	item, err := s.mediaRepo.GetItem(ctx, itemID)
	if err != nil {
		return
	}
	if item.AltText == "" {
		item.AltText = caption.AltText
	}
	item.AIDescription = caption.Description
	item.AITags = caption.Tags
	if err = s.mediaRepo.UpdateItem(ctx, item); err != nil {
		log.Warn("media ai description save failed", "item_id", itemID, "err", err)
	}
}

func (s *mediaServiceImpl) requireOwnPost(ctx context.Context, viewer model.Viewer, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if isNotFound(err) {
			return ErrPostNotFound
		}
		return err
	}
	if post.IsDeleted {
		return ErrPostNotFound
	}
	if !viewer.IsAuthenticated() || viewer.ID != post.AuthorID {
		return UnauthorizedError
	}
	return nil
}

func (s *mediaServiceImpl) ownItem(ctx context.Context, viewer model.Viewer, id uint64) (*model.MediaLibraryItem, error) {
	item, err := s.mediaRepo.GetItem(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	if !viewer.IsAuthenticated() {
		return nil, UnauthorizedError
	}
	if item.UploadedBy != nil && *item.UploadedBy != viewer.ID {
		return nil, UnauthorizedError
	}
	return item, nil
}

func (s *mediaServiceImpl) toMediaItemDTO(item *model.MediaLibraryItem) *dto.MediaItemDTO {
	out := &dto.MediaItemDTO{
		ID:               item.ID,
		URL:              s.storage.PublicURL(item.ObjectKey),
		MediaType:        item.MediaType,
		OriginalFilename: item.OriginalFilename,
		FileSize:         item.FileSize,
		HumanFileSize:    item.HumanFileSize(),
		MimeType:         item.MimeType,
		Width:            item.Width,
		Height:           item.Height,
		Orientation:      item.Orientation(),
		Duration:         item.Duration,
		UploadedBy:       item.UploadedBy,
		AltText:          item.AltText,
		Caption:          item.Caption,
		AITags:           item.AITags,
		AIDescription:    item.AIDescription,
		CreatedAt:        item.CreatedAt.Format(timeLayout),
		CameraMake:       item.CameraMake,
		CameraModel:      item.CameraModel,
		FocalLength:      item.FocalLength,
		Aperture:         item.Aperture,
		ShutterSpeed:     item.ShutterSpeed,
		ISO:              item.ISO,
		GPSLatitude:      item.GPSLatitude,
		GPSLongitude:     item.GPSLongitude,
	}
	if item.CaptureDate != nil {
		out.CaptureDate = item.CaptureDate.Format(timeLayout)
	}
	return out
}

func (s *mediaServiceImpl) toAttachmentDTO(a *model.PostMedia) *dto.AttachmentDTO {
	return &dto.AttachmentDTO{
		ItemID:    a.ItemID,
		URL:       s.storage.PublicURL(a.Item.ObjectKey),
		MediaType: a.Item.MediaType,
		MimeType:  a.Item.MimeType,
		Width:     a.Item.Width,
		Height:    a.Item.Height,
		SortOrder: a.SortOrder,
		AltText:   a.EffectiveAltText(),
		Caption:   a.EffectiveCaption(),
	}
}
