package controller

import (
	"class_connect_backend/internal/model"
	"class_connect_backend/internal/service"
	"class_connect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// PublicController 学生/访客免登录入口：凭加入令牌查看会话并提交
type PublicController struct {
	Sessions    *service.SessionService
	Courses     *service.CourseService
	Auth        *service.AuthService
	Submissions *service.SubmissionService
}

func NewPublicController(sessions *service.SessionService, courses *service.CourseService, auth *service.AuthService, submissions *service.SubmissionService) *PublicController {
	return &PublicController{Sessions: sessions, Courses: courses, Auth: auth, Submissions: submissions}
}

// @Summary 加入会话信息
// @Tags 公开
// @Produce json
// @Param token path string true "加入令牌"
// @Success 200 {object} util.Response
// @Router /api/public/join/{token} [get]
func (c *PublicController) JoinInfo(ctx *gin.Context) {
	session, err := c.Sessions.FindByJoinToken(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	course, err := c.Courses.GetCourse(session.CourseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"sessionId":     session.ID,
		"courseTitle":   course.Title,
		"moodLabels":    course.MoodLabels,
		"open":          session.IsOpen(),
		"requireSurvey": session.RequireSurvey,
		"survey":        service.SnapshotToPublicPayload(session.SurveySnapshot),
	})
}

type publicSubmitRequest struct {
	GuestID   *string           `json:"guestId"`
	GuestName string            `json:"guestName"`
	Mood      string            `json:"mood" binding:"required"`
	Answers   map[string]string `json:"answers"`
}

// @Summary 提交心情与问卷
// @Tags 公开
// @Accept json
// @Produce json
// @Param token path string true "加入令牌"
// @Param body body publicSubmitRequest true "提交内容"
// @Success 200 {object} util.Response
// @Router /api/public/join/{token}/submit [post]
func (c *PublicController) Submit(ctx *gin.Context) {
	session, err := c.Sessions.FindByJoinToken(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	var req publicSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	studentID, guestID := c.resolveParticipant(ctx, &req)
	if studentID == nil && guestID == nil {
		util.BadRequest(ctx, util.ErrGuestNameRequired.Error())
		return
	}

	result, err := c.Submissions.Submit(ctx.Request.Context(), session, service.SubmitRequest{
		StudentID: studentID,
		GuestID:   guestID,
		GuestName: req.GuestName,
		Mood:      req.Mood,
		Answers:   req.Answers,
	})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	payload := gin.H{"result": result}
	if guestID != nil {
		// 客户端保存 guestId 以便后续提交识别同一访客
		payload["guestId"] = *guestID
	}
	util.Success(ctx, payload)
}

// @Summary 参与者当前画像
// @Tags 公开
// @Produce json
// @Param token path string true "加入令牌"
// @Param guestId query string false "访客ID"
// @Success 200 {object} util.Response
// @Router /api/public/join/{token}/profile [get]
func (c *PublicController) GetProfile(ctx *gin.Context) {
	session, err := c.Sessions.FindByJoinToken(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	var studentID, guestID *string
	if claims := util.GetUserFromContext(ctx); claims != nil && claims.Role == model.StudentRole {
		id := claims.UserID
		studentID = &id
	} else {
		guestID = optionalQuery(ctx, "guestId")
	}
	if studentID == nil && guestID == nil {
		util.BadRequest(ctx, "guestId is required for guests")
		return
	}

	profile, err := c.Submissions.GetCurrentProfile(session.CourseID, studentID, guestID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// resolveParticipant 登录学生优先；否则沿用请求里的 guestId，仅有姓名时铸新访客ID
func (c *PublicController) resolveParticipant(ctx *gin.Context, req *publicSubmitRequest) (studentID, guestID *string) {
	if claims := util.GetUserFromContext(ctx); claims != nil && claims.Role == model.StudentRole {
		id := claims.UserID
		return &id, nil
	}

	if req.GuestID != nil && *req.GuestID != "" {
		return nil, req.GuestID
	}
	if req.GuestName != "" {
		id := c.Auth.NewGuestID()
		return nil, &id
	}
	return nil, nil
}
