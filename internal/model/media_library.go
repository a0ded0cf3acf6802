package model

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// 媒体类型
const (
	MediaTypeImage    = "IMAGE"
	MediaTypeVideo    = "VIDEO"
	MediaTypeGIF      = "GIF"
	MediaTypeDocument = "DOCUMENT"
	MediaTypeAudio    = "AUDIO"
)

// MediaLibraryItem 内容寻址的媒体库条目。文件按内容 SHA256 去重存储，
// 同一份字节无论上传多少次、文件名为何，都只有这一条记录。
type MediaLibraryItem struct {
	ID               uint64  `gorm:"primaryKey"`
	ObjectKey        string  `gorm:"type:varchar(512);not null" json:"objectKey"`
	ContentHash      string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_content_hash" json:"contentHash"`
	MediaType        string  `gorm:"type:varchar(10);not null;default:'IMAGE'" json:"mediaType"`
	OriginalFilename string  `gorm:"type:varchar(255)" json:"originalFilename"`
	FileSize         int64   `gorm:"not null;default:0" json:"fileSize"`
	Width            int     `gorm:"not null;default:0" json:"width"`
	Height           int     `gorm:"not null;default:0" json:"height"`
	MimeType         string  `gorm:"type:varchar(100)" json:"mimeType"`
	Duration         float64 `gorm:"not null;default:0" json:"duration"` // 视频/音频时长（秒）

	UploadedBy *uint64   `json:"uploadedBy"`
	CreatedAt  time.Time `gorm:"index:idx_media_created" json:"createdAt"`

	// EXIF 技术元数据，提取失败时保持零值
	ExifData     map[string]string `gorm:"type:json;serializer:json" json:"exifData"`
	CameraMake   string            `gorm:"type:varchar(100)" json:"cameraMake"`
	CameraModel  string            `gorm:"type:varchar(100)" json:"cameraModel"`
	FocalLength  string            `gorm:"type:varchar(50)" json:"focalLength"`
	Aperture     string            `gorm:"type:varchar(20)" json:"aperture"`
	ShutterSpeed string            `gorm:"type:varchar(20)" json:"shutterSpeed"`
	ISO          *int              `json:"iso"`
	GPSLatitude  *float64          `gorm:"type:decimal(10,7)" json:"gpsLatitude"`
	GPSLongitude *float64          `gorm:"type:decimal(10,7)" json:"gpsLongitude"`
	CaptureDate  *time.Time        `json:"captureDate"`

	// AI 生成的元数据
	AltText       string   `gorm:"type:text" json:"altText"`
	Caption       string   `gorm:"type:text" json:"caption"`
	AITags        []string `gorm:"type:json;serializer:json" json:"aiTags"`
	AIDescription string   `gorm:"type:text" json:"aiDescription"`

	// 关联关系
	Tags []Tag `gorm:"many2many:media_item_tags"`
}

func (MediaLibraryItem) TableName() string {
	return "media_library_items"
}

func (m *MediaLibraryItem) IsImage() bool {
	return m.MediaType == MediaTypeImage || m.MediaType == MediaTypeGIF
}

func (m *MediaLibraryItem) IsVideo() bool {
	return m.MediaType == MediaTypeVideo
}

func (m *MediaLibraryItem) FileExtension() string {
	if m.OriginalFilename == "" {
		return ""
	}
	return strings.ToLower(path.Ext(m.OriginalFilename))
}

func (m *MediaLibraryItem) AspectRatio() float64 {
	if m.Width == 0 || m.Height == 0 {
		return 0
	}
	return float64(m.Width) / float64(m.Height)
}

func (m *MediaLibraryItem) Orientation() string {
	switch {
	case m.Width == 0 || m.Height == 0:
		return "unknown"
	case m.Width > m.Height:
		return "landscape"
	case m.Height > m.Width:
		return "portrait"
	default:
		return "square"
	}
}

func (m *MediaLibraryItem) HasLocation() bool {
	return m.GPSLatitude != nil && m.GPSLongitude != nil
}

// HumanFileSize 人类可读的文件大小
func (m *MediaLibraryItem) HumanFileSize() string {
	size := float64(m.FileSize)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}
