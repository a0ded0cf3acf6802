package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/blogconf"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadTestImage(t *testing.T, svc MediaService, uploader uint64, data []byte) *dto.MediaItemDTO {
	t.Helper()
	item, err := svc.Upload(context.Background(), &UploadInput{
		Filename:    "photo.png",
		ContentType: "image/png",
		Data:        data,
		UploadedBy:  uintPtr(uploader),
	})
	require.NoError(t, err)
	return item
}

func TestUploadDeduplicatesByContent(t *testing.T) {
	svcs := newTestServices(t, nil, nil)
	data := []byte("not-really-a-png-but-close-enough")

	first := uploadTestImage(t, svcs.media, 1, data)
	assert.False(t, first.Deduplicated)
	assert.Equal(t, model.MediaTypeImage, first.MediaType)
	assert.Equal(t, int64(len(data)), first.FileSize)
	assert.Equal(t, 1, svcs.storage.count())

	// 同一份字节重复上传复用既有条目，不再写对象存储
	second := uploadTestImage(t, svcs.media, 2, data)
	assert.True(t, second.Deduplicated)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, svcs.storage.count())

	// 内容不同则各算各的
	other := uploadTestImage(t, svcs.media, 1, append(bytes.Clone(data), 'x'))
	assert.False(t, other.Deduplicated)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Equal(t, 2, svcs.storage.count())
}

func TestUploadValidation(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, func(s *blogconf.Settings) { s.MediaMaxSizeMB = 1 }, nil)

	_, err := svcs.media.Upload(ctx, &UploadInput{Filename: "empty.png", ContentType: "image/png"})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = svcs.media.Upload(ctx, &UploadInput{
		Filename:    "huge.png",
		ContentType: "image/png",
		Data:        make([]byte, 1<<20+1),
	})
	assert.ErrorIs(t, err, ErrMediaTooLarge)

	// 缺失 Content-Type 时按内容嗅探，文本归档为文档
	sniffed, err := svcs.media.Upload(ctx, &UploadInput{
		Filename: "notes.txt",
		Data:     []byte("plain text, definitely not an image"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MediaTypeDocument, sniffed.MediaType)
}

func TestUploadClassifiesByMimePrefix(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	item, err := svcs.media.Upload(ctx, &UploadInput{
		Filename:    "loop.gif",
		ContentType: "image/gif",
		Data:        []byte("GIF89a-fake-payload"),
		UploadedBy:  uintPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MediaTypeGIF, item.MediaType)

	video, err := svcs.media.Upload(ctx, &UploadInput{
		Filename:    "clip.mp4",
		ContentType: "video/mp4",
		Data:        []byte("fake-mp4-payload"),
		UploadedBy:  uintPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MediaTypeVideo, video.MediaType)

	// 音频与未知类型不拒绝，分别落到 AUDIO 与 DOCUMENT 桶
	audio, err := svcs.media.Upload(ctx, &UploadInput{
		Filename:    "song.mp3",
		ContentType: "audio/mpeg",
		Data:        []byte("fake-mp3-payload"),
		UploadedBy:  uintPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MediaTypeAudio, audio.MediaType)

	doc, err := svcs.media.Upload(ctx, &UploadInput{
		Filename:    "doc.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.7 fake"),
		UploadedBy:  uintPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MediaTypeDocument, doc.MediaType)
}

func TestAttachDetachLifecycle(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)
	post := createTestPost(t, svcs.post, 1, &dto.PostBaseDTO{Title: "Gallery", Body: "b"})
	item := uploadTestImage(t, svcs.media, 1, []byte("gallery-image"))

	// 只有帖子作者能挂载
	_, err := svcs.media.AttachToPost(ctx, viewerFor(2), post.ID, &dto.AttachDTO{ItemID: item.ID})
	assert.ErrorIs(t, err, UnauthorizedError)

	attached, err := svcs.media.AttachToPost(ctx, viewerFor(1), post.ID, &dto.AttachDTO{
		ItemID:        item.ID,
		SortOrder:     1,
		CustomAltText: "cover shot",
	})
	require.NoError(t, err)
	assert.Equal(t, item.ID, attached.ItemID)
	assert.Equal(t, "cover shot", attached.AltText)

	_, err = svcs.media.AttachToPost(ctx, viewerFor(1), post.ID, &dto.AttachDTO{ItemID: item.ID})
	assert.ErrorIs(t, err, ErrAttachmentExist)

	media, err := svcs.media.ListPostMedia(ctx, model.Anonymous(), post.ID)
	require.NoError(t, err)
	require.Len(t, media, 1)

	// 仍被引用的媒体不能删
	err = svcs.media.DeleteItem(ctx, viewerFor(1), item.ID)
	assert.ErrorIs(t, err, ErrMediaInUse)

	require.NoError(t, svcs.media.DetachFromPost(ctx, viewerFor(1), post.ID, item.ID))
	assert.ErrorIs(t, svcs.media.DetachFromPost(ctx, viewerFor(1), post.ID, item.ID), ErrAttachmentNotFound)

	require.NoError(t, svcs.media.DeleteItem(ctx, viewerFor(1), item.ID))
	assert.Equal(t, 0, svcs.storage.count())
	_, err = svcs.media.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestUpdateItemOwnership(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)
	item := uploadTestImage(t, svcs.media, 1, []byte("captioned-image"))

	altText := "a quiet street"
	_, err := svcs.media.UpdateItem(ctx, viewerFor(2), item.ID, &dto.MediaUpdateDTO{AltText: &altText})
	assert.ErrorIs(t, err, UnauthorizedError)

	updated, err := svcs.media.UpdateItem(ctx, viewerFor(1), item.ID, &dto.MediaUpdateDTO{AltText: &altText})
	require.NoError(t, err)
	assert.Equal(t, altText, updated.AltText)

	assert.ErrorIs(t, svcs.media.DeleteItem(ctx, viewerFor(2), item.ID), UnauthorizedError)
}

func TestListItemsFilter(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, nil, nil)

	uploadTestImage(t, svcs.media, 1, []byte("image-one"))
	uploadTestImage(t, svcs.media, 2, []byte("image-two"))
	_, err := svcs.media.Upload(ctx, &UploadInput{
		Filename:    "clip.mp4",
		ContentType: "video/mp4",
		Data:        []byte("video-bytes"),
		UploadedBy:  uintPtr(1),
	})
	require.NoError(t, err)

	paged, err := svcs.media.ListItems(ctx, &dto.MediaListQueryDTO{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), paged.Total)

	paged, err = svcs.media.ListItems(ctx, &dto.MediaListQueryDTO{MediaType: model.MediaTypeImage})
	require.NoError(t, err)
	assert.Equal(t, int64(2), paged.Total)

	paged, err = svcs.media.ListItems(ctx, &dto.MediaListQueryDTO{UploadedBy: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), paged.Total)
}
