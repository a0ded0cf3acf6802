package dto

// MediaItemDTO 媒体库条目
type MediaItemDTO struct {
	ID               uint64   `json:"id"`
	URL              string   `json:"url"`
	MediaType        string   `json:"media_type"`
	OriginalFilename string   `json:"original_filename"`
	FileSize         int64    `json:"file_size"`
	HumanFileSize    string   `json:"human_file_size"`
	MimeType         string   `json:"mime_type"`
	Width            int      `json:"width,omitempty"`
	Height           int      `json:"height,omitempty"`
	Orientation      string   `json:"orientation,omitempty"`
	Duration         float64  `json:"duration,omitempty"`
	UploadedBy       *uint64  `json:"uploaded_by,omitempty"`
	AltText          string   `json:"alt_text"`
	Caption          string   `json:"caption"`
	AITags           []string `json:"ai_tags,omitempty"`
	AIDescription    string   `json:"ai_description,omitempty"`
	CreatedAt        string   `json:"created_at"`

	// 拍摄信息
	CameraMake   string   `json:"camera_make,omitempty"`
	CameraModel  string   `json:"camera_model,omitempty"`
	FocalLength  string   `json:"focal_length,omitempty"`
	Aperture     string   `json:"aperture,omitempty"`
	ShutterSpeed string   `json:"shutter_speed,omitempty"`
	ISO          *int     `json:"iso,omitempty"`
	GPSLatitude  *float64 `json:"gps_latitude,omitempty"`
	GPSLongitude *float64 `json:"gps_longitude,omitempty"`
	CaptureDate  string   `json:"capture_date,omitempty"`

	// 上传是否命中了既有条目
	Deduplicated bool `json:"deduplicated,omitempty"`
}

// MediaUpdateDTO 媒体库条目 - 修改描述信息
type MediaUpdateDTO struct {
	AltText *string `json:"alt_text" validate:"omitempty,max=500"`
	Caption *string `json:"caption" validate:"omitempty,max=1000"`
}

// MediaListQueryDTO 媒体库列表查询
type MediaListQueryDTO struct {
	PageDTO
	MediaType  string `form:"media_type"`
	UploadedBy uint64 `form:"uploaded_by"`
}

// AttachmentDTO 帖子挂载的媒体
type AttachmentDTO struct {
	ItemID    uint64 `json:"item_id"`
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
	MimeType  string `json:"mime_type"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	SortOrder int    `json:"sort_order"`
	AltText   string `json:"alt_text"`
	Caption   string `json:"caption"`
}

// AttachDTO 挂载媒体到帖子
type AttachDTO struct {
	ItemID        uint64 `json:"item_id" binding:"required"`
	SortOrder     int    `json:"sort_order"`
	CustomAltText string `json:"custom_alt_text" validate:"max=500"`
	CustomCaption string `json:"custom_caption" validate:"max=500"`
}
