package handler

import (
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsSvc service.SettingsService
}

func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsSvc: settingsSvc,
	}
}

func (s *SettingsHandler) GetSettings(c *gin.Context) {
	response.Success(c, s.settingsSvc.GetSettings())
}
