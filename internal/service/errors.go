package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrPostNotFound        = errors.New("帖子不存在")
	ErrPageNotFound        = errors.New("页面不存在")
	ErrCategoryNotFound    = errors.New("分类不存在")
	ErrCategoryCycle       = errors.New("分类层级出现循环")
	ErrTagNotFound         = errors.New("标签不存在")
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentTooLong      = errors.New("评论长度超过限制")
	ErrCommentClosed       = errors.New("该帖子已关闭评论")
	ErrAnonymousForbidden  = errors.New("不允许匿名评论")
	ErrPendingNotFound     = errors.New("待审评论不存在")
	ErrReactionInvalid     = errors.New("无效的表态类型")
	ErrMediaNotFound       = errors.New("媒体不存在")
	ErrMediaInUse          = errors.New("媒体仍被帖子引用")
	ErrMediaTooLarge       = errors.New("文件大小超过限制")
	ErrAttachmentExist     = errors.New("该媒体已挂载到此帖子")
	ErrAttachmentNotFound  = errors.New("挂载关系不存在")
	ErrSlugConflict        = errors.New("slug已被占用")
	ErrActionDuplicate     = errors.New("重复操作")
	ErrVisibilityInvalid   = errors.New("无效的可见性档位")
	ErrScheduleDisabled    = errors.New("定时发布未启用")
	ErrScheduleInPast      = errors.New("定时发布时间必须在未来")
	ErrAIDisabled          = errors.New("AI增强能力未启用")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrPostNotFound:       NotFound,
	ErrPageNotFound:       NotFound,
	ErrCategoryNotFound:   NotFound,
	ErrCategoryCycle:      BadRequest,
	ErrTagNotFound:        NotFound,
	ErrCommentNotFound:    NotFound,
	ErrCommentTooLong:     BadRequest,
	ErrCommentClosed:      BadRequest,
	ErrAnonymousForbidden: Unauthorized,
	ErrPendingNotFound:    NotFound,
	ErrReactionInvalid:    BadRequest,
	ErrMediaNotFound:      NotFound,
	ErrMediaInUse:         Conflict,
	ErrMediaTooLarge:      BadRequest,
	ErrAttachmentExist:    Conflict,
	ErrAttachmentNotFound: NotFound,
	ErrSlugConflict:       Conflict,
	ErrActionDuplicate:    Conflict,
	ErrVisibilityInvalid:  BadRequest,
	ErrScheduleDisabled:   BadRequest,
	ErrScheduleInPast:     BadRequest,
	ErrAIDisabled:         BadRequest,
	UnauthorizedError:     Unauthorized,
	UnExpectedError:       InternalServerError,
}
