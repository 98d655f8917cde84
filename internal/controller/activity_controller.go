package controller

import (
	"class_connect_backend/internal/service"
	"class_connect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Service *service.ActivityService
}

func NewActivityController(svc *service.ActivityService) *ActivityController {
	return &ActivityController{Service: svc}
}

// @Summary 创建课堂活动
// @Tags 活动
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body service.ActivityRequest true "活动信息"
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/activities [post]
func (c *ActivityController) CreateActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := c.Service.CreateActivity(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, activity)
}

// @Summary 课程活动列表
// @Tags 活动
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/activities [get]
func (c *ActivityController) ListActivities(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	activities, err := c.Service.ListActivities(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, activities)
}

// @Summary 更新活动
// @Tags 活动
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "活动ID"
// @Param body body service.ActivityRequest true "活动信息"
// @Success 200 {object} util.Response
// @Router /api/activities/{id} [put]
func (c *ActivityController) UpdateActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := c.Service.UpdateActivity(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, activity)
}

// @Summary 删除活动
// @Tags 活动
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "活动ID"
// @Success 200 {object} util.Response
// @Router /api/activities/{id} [delete]
func (c *ActivityController) DeleteActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.DeleteActivity(claims.UserID, ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
