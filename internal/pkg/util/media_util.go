package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// HashBytes 对文件内容求 SHA256，作为媒体去重键
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashReader 流式求 SHA256
func HashReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DecodeImageSize 解出图片宽高，解不出时返回 0,0 不报错
func DecodeImageSize(data []byte) (width, height int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// ExifMeta 从图片中解出的拍摄元数据，字段缺失时为零值
type ExifMeta struct {
	Raw          map[string]string
	CameraMake   string
	CameraModel  string
	FocalLength  string
	Aperture     string
	ShutterSpeed string
	ISO          *int
	GPSLatitude  *float64
	GPSLongitude *float64
	CaptureDate  *time.Time
}

type exifWalker struct {
	raw map[string]string
}

func (w *exifWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	w.raw[string(name)] = strings.Trim(tag.String(), `"`)
	return nil
}

// ExtractExif 尽力解析 EXIF，非图片或无 EXIF 时返回 nil。
// 解析失败不算错误，媒体入库不因元数据缺失而失败。
func ExtractExif(data []byte) *ExifMeta {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	meta := &ExifMeta{Raw: make(map[string]string)}

	walker := &exifWalker{raw: meta.Raw}
	_ = x.Walk(walker)

	if tag, err := x.Get(exif.Make); err == nil {
		meta.CameraMake, _ = tag.StringVal()
	}
	if tag, err := x.Get(exif.Model); err == nil {
		meta.CameraModel, _ = tag.StringVal()
	}
	if tag, err := x.Get(exif.FocalLength); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			meta.FocalLength = fmt.Sprintf("%.1fmm", float64(num)/float64(den))
		}
	}
	if tag, err := x.Get(exif.FNumber); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			meta.Aperture = fmt.Sprintf("f/%.1f", float64(num)/float64(den))
		}
	}
	if tag, err := x.Get(exif.ExposureTime); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && num != 0 && den != 0 {
			if num < den {
				meta.ShutterSpeed = fmt.Sprintf("1/%d", den/num)
			} else {
				meta.ShutterSpeed = fmt.Sprintf("%.1fs", float64(num)/float64(den))
			}
		}
	}
	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if iso, err := tag.Int(0); err == nil {
			meta.ISO = PtrInt(iso)
		}
	}
	if lat, lng, err := x.LatLong(); err == nil {
		meta.GPSLatitude = &lat
		meta.GPSLongitude = &lng
	}
	if dt, err := x.DateTime(); err == nil {
		meta.CaptureDate = PtrTime(dt)
	}

	return meta
}
