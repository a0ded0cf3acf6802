package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/blogconf"

	"github.com/jinzhu/copier"
)

// SettingsService 对外暴露当前生效的内容模块配置，只读
type SettingsService interface {
	GetSettings() *dto.SettingsDTO
}

type settingsServiceImpl struct {
	settings *blogconf.Settings
}

func NewSettingsService(settings *blogconf.Settings) SettingsService {
	return &settingsServiceImpl{settings: settings}
}

func (s *settingsServiceImpl) GetSettings() *dto.SettingsDTO {
	var out dto.SettingsDTO
	// 字段同名，内部限额类配置（上传路径、缩略图尺寸等）不在 DTO 中，自然不会外泄
	_ = copier.Copy(&out, s.settings)
	return &out
}
