package controller

import (
	"class_connect_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// respondServiceError 将服务层错误映射到统一响应
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUnknownMood),
		errors.Is(err, util.ErrAnswersRequired),
		errors.Is(err, util.ErrEmptyMoodLabels),
		errors.Is(err, util.ErrDuplicateMoods),
		errors.Is(err, util.ErrDuplicateTitle),
		errors.Is(err, util.ErrGuestNameRequired),
		errors.Is(err, util.ErrEmailRegistered):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSessionClosed):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrSurveyNotFound),
		errors.Is(err, util.ErrActivityNotFound),
		errors.Is(err, util.ErrSubmissionNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		// 数据完整性错误也走500：说明别处破坏了唯一当前画像不变量
		util.LogInternalError(ctx, err)
	}
}
