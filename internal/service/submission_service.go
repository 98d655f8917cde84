package service

import (
	"class_connect_backend/internal/model"
	"class_connect_backend/internal/repository"
	"class_connect_backend/internal/util"
	"class_connect_backend/pkg/monitoring"
	"context"

	"gorm.io/gorm"
)

// SubmissionService 编排一次提交：计分 → 画像更新 → 基线标记清除 → 推荐解析
type SubmissionService struct {
	DB       *gorm.DB
	Sessions *repository.SessionRepository
	Courses  *repository.CourseRepository
	Subs     *repository.SubmissionRepository
	Profiles *repository.ProfileRepository
	Rec      *RecommendationService
}

func NewSubmissionService(db *gorm.DB, sessions *repository.SessionRepository, courses *repository.CourseRepository, subs *repository.SubmissionRepository, profiles *repository.ProfileRepository, rec *RecommendationService) *SubmissionService {
	return &SubmissionService{
		DB:       db,
		Sessions: sessions,
		Courses:  courses,
		Subs:     subs,
		Profiles: profiles,
		Rec:      rec,
	}
}

type SubmitRequest struct {
	StudentID *string
	GuestID   *string
	GuestName string
	Mood      string
	Answers   map[string]string
}

type SubmitResult struct {
	SubmissionID   string         `json:"submissionId"`
	Status         string         `json:"status"`
	Mood           string         `json:"mood"`
	LearningStyle  *string        `json:"learningStyle"`
	TotalScores    map[string]int `json:"totalScores,omitempty"`
	Recommendation *Resolution    `json:"recommendation"`
}

func (r SubmitRequest) participantKey() string {
	if r.StudentID != nil {
		return *r.StudentID
	}
	if r.GuestID != nil {
		return *r.GuestID
	}
	return ""
}

// Submit 处理一次会话提交。同一参与者在同一会话内重复提交是更新而非新增，
// 提交ID在重复提交间保持稳定。
func (s *SubmissionService) Submit(ctx context.Context, session *model.ClassSession, req SubmitRequest) (*SubmitResult, error) {
	if !session.IsOpen() {
		return nil, util.ErrSessionClosed
	}
	if req.participantKey() == "" {
		return nil, util.ErrGuestNameRequired
	}

	course, err := s.Courses.FindByID(session.CourseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	// 外层已校验，编排器重查一次以守住不变量
	if !course.HasMood(req.Mood) {
		return nil, util.ErrUnknownMood
	}

	scored := false
	var scoreResult ScoreResult
	if session.SurveySnapshot != nil && len(req.Answers) > 0 {
		scoreResult = Score(session.SurveySnapshot, req.Answers)
		scored = true
	}
	if session.RequireSurvey && !scored {
		return nil, util.ErrAnswersRequired
	}

	// 可选问卷未作答时记为跳过
	status := util.SubmissionCompleted
	if session.SurveySnapshot != nil && !scored {
		status = util.SubmissionSkipped
	}

	var submission *model.Submission
	var profile *model.CourseStudentProfile

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// 在事务内确认会话仍开放，封堵"关闭 vs 迟到提交"竞争
		locked, err := s.Sessions.LockOpenTx(tx, session.ID)
		if err == gorm.ErrRecordNotFound {
			return util.ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		if !locked.IsOpen() {
			return util.ErrSessionClosed
		}

		submission, err = s.Subs.FindForParticipantTx(tx, session.ID, req.StudentID, req.GuestID)
		if err != nil {
			return err
		}

		if submission == nil {
			submission = &model.Submission{
				SessionID:        session.ID,
				CourseID:         course.ID,
				StudentID:        req.StudentID,
				GuestID:          req.GuestID,
				GuestName:        req.GuestName,
				Mood:             req.Mood,
				Answers:          req.Answers,
				IsBaselineUpdate: scored,
				Status:           status,
			}
			if scored {
				submission.TotalScores = scoreResult.Totals
			}
			if err := s.Subs.CreateTx(tx, submission); err != nil {
				return err
			}
		} else {
			submission.Mood = req.Mood
			submission.Answers = req.Answers
			submission.IsBaselineUpdate = scored
			submission.Status = status
			if scored {
				submission.TotalScores = scoreResult.Totals
			}
			if err := s.Subs.SaveTx(tx, submission); err != nil {
				return err
			}
		}

		if scored {
			submissionID := submission.ID
			profile = &model.CourseStudentProfile{
				CourseID:           course.ID,
				StudentID:          req.StudentID,
				GuestID:            req.GuestID,
				LatestSubmissionID: &submissionID,
				LearningStyle:      scoreResult.DominantStyle(),
				Scores:             scoreResult.Totals,
			}
			if err := s.Profiles.UpsertCurrentTx(tx, profile); err != nil {
				return err
			}

			// 含答卷的提交清除课程的重新测评标记，与画像更新同事务
			if err := s.Courses.ClearRebaselineTx(tx, course.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	learningStyle, err := s.effectiveLearningStyle(scored, scoreResult, course.ID, req)
	if err != nil {
		return nil, err
	}

	resolution, err := s.Rec.Resolve(ResolveInput{
		CourseID:       course.ID,
		LearningStyle:  learningStyle,
		Mood:           req.Mood,
		ParticipantKey: req.participantKey(),
		SessionDate:    session.StartedAt,
	})
	if err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(resolution.MatchType).Inc()

	result := &SubmitResult{
		SubmissionID:   submission.ID,
		Status:         submission.Status,
		Mood:           submission.Mood,
		LearningStyle:  learningStyle,
		Recommendation: resolution,
	}
	if scored {
		result.TotalScores = scoreResult.Totals
	}
	return result, nil
}

// effectiveLearningStyle 刚计分则用本次优势类别，否则回退到当前画像
func (s *SubmissionService) effectiveLearningStyle(scored bool, scoreResult ScoreResult, courseID string, req SubmitRequest) (*string, error) {
	if scored {
		return scoreResult.DominantStyle(), nil
	}

	profile, err := s.Profiles.GetCurrent(courseID, req.StudentID, req.GuestID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	return profile.LearningStyle, nil
}

// GetCurrentProfile 查询参与者当前画像
func (s *SubmissionService) GetCurrentProfile(courseID string, studentID, guestID *string) (*model.CourseStudentProfile, error) {
	return s.Profiles.GetCurrent(courseID, studentID, guestID)
}

// GetProfileHistory 查询参与者在课程内的画像历史，新者在前
func (s *SubmissionService) GetProfileHistory(courseID string, studentID, guestID *string) ([]model.CourseStudentProfile, error) {
	return s.Profiles.History(courseID, studentID, guestID)
}

// ProfileSummary 按学习风格统计课程内的当前画像
func (s *SubmissionService) ProfileSummary(course *model.Course) (map[string]int64, int64, error) {
	total, err := s.Profiles.CountCurrent(course.ID, nil)
	if err != nil {
		return nil, 0, err
	}

	byStyle := make(map[string]int64, len(course.LearningStyleCategories))
	for _, style := range course.LearningStyleCategories {
		st := style
		count, err := s.Profiles.CountCurrent(course.ID, &st)
		if err != nil {
			return nil, 0, err
		}
		byStyle[style] = count
	}
	return byStyle, total, nil
}
