package controller

import (
	"class_connect_backend/internal/service"
	"class_connect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	Courses    *service.CourseService
	Activities *service.ActivityService
	Service    *service.RecommendationService
	AI         *service.AIService
}

func NewRecommendationController(courses *service.CourseService, activities *service.ActivityService, svc *service.RecommendationService, ai *service.AIService) *RecommendationController {
	return &RecommendationController{Courses: courses, Activities: activities, Service: svc, AI: ai}
}

type patchMappingsRequest struct {
	Mappings []service.RecommendationMapping `json:"mappings" binding:"required"`
}

// @Summary 课程推荐映射列表
// @Tags 推荐
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/recommendations [get]
func (c *RecommendationController) ListMappings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.Courses.GetOwnedCourse(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	mappings, err := c.Service.ListMappings(course.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, mappings)
}

// @Summary 批量更新推荐映射
// @Tags 推荐
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body patchMappingsRequest true "映射列表"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/recommendations [patch]
func (c *RecommendationController) PatchMappings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.Courses.GetOwnedCourse(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	var req patchMappingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mappings, err := c.Service.PatchMappings(course.ID, req.Mappings)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, mappings)
}

// @Summary AI生成推荐映射建议
// @Tags 推荐
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/recommendations/propose [post]
func (c *RecommendationController) ProposeMappings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.Courses.GetOwnedCourse(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	activities, err := c.Activities.ListActivities(claims.UserID, course.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if len(activities) == 0 {
		util.BadRequest(ctx, "course has no activities to map")
		return
	}

	proposals, err := c.AI.ProposeMappings(course, activities)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"mappings": proposals})
}
