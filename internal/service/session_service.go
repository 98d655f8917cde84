package service

import (
	"class_connect_backend/internal/model"
	"class_connect_backend/internal/repository"
	"class_connect_backend/internal/util"
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const joinTokenCacheTTL = 10 * time.Minute

type SessionService struct {
	Repo       *repository.SessionRepository
	CourseRepo *repository.CourseRepository
	SurveyRepo *repository.SurveyRepository
	SubRepo    *repository.SubmissionRepository
	Redis      *redis.Client
}

func NewSessionService(repo *repository.SessionRepository, courseRepo *repository.CourseRepository, surveyRepo *repository.SurveyRepository, subRepo *repository.SubmissionRepository, rdb *redis.Client) *SessionService {
	return &SessionService{Repo: repo, CourseRepo: courseRepo, SurveyRepo: surveyRepo, SubRepo: subRepo, Redis: rdb}
}

// generateJoinToken 生成12位公开令牌
func generateJoinToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// CreateSession freezes the course's rebaseline flag and the baseline
// survey snapshot onto the new session. The session never re-derives
// either after this point.
func (s *SessionService) CreateSession(teacherID, courseID string) (*model.ClassSession, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	session := &model.ClassSession{
		CourseID:      courseID,
		JoinToken:     generateJoinToken(),
		RequireSurvey: course.RequiresRebaseline,
		StartedAt:     time.Now(),
	}

	if course.BaselineSurveyID != nil {
		template, err := s.SurveyRepo.FindByID(*course.BaselineSurveyID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if err == nil {
			session.SurveySnapshot = BuildSnapshot(template)
		}
	}

	if err := s.Repo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) GetSession(id string) (*model.ClassSession, error) {
	session, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSessionNotFound
	}
	return session, err
}

func (s *SessionService) ListSessions(teacherID, courseID string) ([]model.ClassSession, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return s.Repo.ListByCourse(courseID)
}

// ListSubmissions 教师查看会话的全部提交
func (s *SessionService) ListSubmissions(teacherID, sessionID string) ([]model.Submission, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(session.CourseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return s.SubRepo.ListBySession(sessionID)
}

// FindByJoinToken 公开加入热路径，token→会话ID 走 Redis 缓存
func (s *SessionService) FindByJoinToken(ctx context.Context, token string) (*model.ClassSession, error) {
	cacheKey := "join_token:" + token

	if s.Redis != nil {
		if id, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil && id != "" {
			if session, err := s.Repo.FindByID(id); err == nil {
				return session, nil
			}
		}
	}

	session, err := s.Repo.FindByJoinToken(token)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.Redis != nil && session.IsOpen() {
		s.Redis.Set(ctx, cacheKey, session.ID, joinTokenCacheTTL)
	}
	return session, nil
}

// CloseSession 单向关闭；重复关闭视为幂等成功
func (s *SessionService) CloseSession(ctx context.Context, teacherID, sessionID string) (*model.ClassSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(session.CourseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	if session.IsOpen() {
		if _, err := s.Repo.Close(sessionID, time.Now()); err != nil {
			return nil, err
		}
		if s.Redis != nil {
			s.Redis.Del(ctx, "join_token:"+session.JoinToken)
		}
	}

	return s.GetSession(sessionID)
}
