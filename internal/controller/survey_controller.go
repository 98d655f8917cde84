package controller

import (
	"class_connect_backend/internal/service"
	"class_connect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	Service *service.SurveyService
}

func NewSurveyController(svc *service.SurveyService) *SurveyController {
	return &SurveyController{Service: svc}
}

// @Summary 创建问卷模板
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SurveyTemplateRequest true "问卷信息"
// @Success 201 {object} util.Response
// @Router /api/surveys [post]
func (c *SurveyController) CreateTemplate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SurveyTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	template, err := c.Service.CreateTemplate(claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, template)
}

// @Summary 问卷模板列表
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/surveys [get]
func (c *SurveyController) ListTemplates(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	templates, err := c.Service.ListTemplates(claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, templates)
}

// @Summary 问卷模板详情
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id} [get]
func (c *SurveyController) GetTemplate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	template, err := c.Service.GetTemplate(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if template.TeacherID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	util.Success(ctx, template)
}

// @Summary 更新问卷模板
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "问卷ID"
// @Param body body service.SurveyTemplateRequest true "问卷信息"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id} [put]
func (c *SurveyController) UpdateTemplate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SurveyTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	template, err := c.Service.UpdateTemplate(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, template)
}

// @Summary 删除问卷模板
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Router /api/surveys/{id} [delete]
func (c *SurveyController) DeleteTemplate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.DeleteTemplate(claims.UserID, ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
