package controller

import (
	"class_connect_backend/internal/config"
	"class_connect_backend/internal/service"
	"class_connect_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type MaintenanceController struct {
	Service *service.MaintenanceService
	Cfg     *config.Config
}

func NewMaintenanceController(svc *service.MaintenanceService, cfg *config.Config) *MaintenanceController {
	return &MaintenanceController{Service: svc, Cfg: cfg}
}

// @Summary 重置全部数据（仅限非生产模式）
// @Tags 系统
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/reset [post]
func (c *MaintenanceController) ResetData(ctx *gin.Context) {
	if c.Cfg.Server.Mode == "release" {
		util.Error(ctx, http.StatusForbidden, "data reset is disabled in release mode")
		return
	}

	counts, err := c.Service.ResetData()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": counts})
}
