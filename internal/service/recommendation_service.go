package service

import (
	"class_connect_backend/internal/model"
	"class_connect_backend/internal/repository"
	"class_connect_backend/internal/util"
	"fmt"
	"hash/fnv"
	"time"

	"gorm.io/gorm"
)

// 匹配层级，按顺序逐层回退
const (
	MatchStyleMood     = "style+mood"
	MatchStyleOnly     = "style-default"
	MatchMoodOnly      = "mood-default"
	MatchCourseDefault = "course-default"
	MatchRandom        = "random-course-activity"
	MatchNone          = "none"
)

// SystemDefaultActivityTag 标记课程兜底活动
const SystemDefaultActivityTag = "__system_default__"

type RecommendationService struct {
	Repo         *repository.RecommendationRepository
	ActivityRepo *repository.ActivityRepository
}

func NewRecommendationService(repo *repository.RecommendationRepository, activityRepo *repository.ActivityRepository) *RecommendationService {
	return &RecommendationService{Repo: repo, ActivityRepo: activityRepo}
}

// ResolveInput 推荐解析入参。Mood 必须已通过课程心情标签校验。
type ResolveInput struct {
	CourseID       string
	LearningStyle  *string
	Mood           string
	ParticipantKey string
	SessionDate    time.Time
}

type Resolution struct {
	MatchType string          `json:"matchType"`
	Activity  *model.Activity `json:"activity,omitempty"`
}

type resolverStrategy struct {
	name   string
	lookup func(in ResolveInput) (*model.Activity, error)
}

func (s *RecommendationService) activityForMapping(rec *model.CourseRecommendation) (*model.Activity, error) {
	if rec == nil {
		return nil, nil
	}
	activity, err := s.ActivityRepo.FindByID(rec.ActivityID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *RecommendationService) exactMatch(in ResolveInput) (*model.Activity, error) {
	if in.LearningStyle == nil {
		return nil, nil
	}
	rec, err := s.Repo.Find(in.CourseID, in.LearningStyle, &in.Mood)
	if err != nil {
		return nil, err
	}
	return s.activityForMapping(rec)
}

func (s *RecommendationService) styleDefault(in ResolveInput) (*model.Activity, error) {
	if in.LearningStyle == nil {
		return nil, nil
	}
	rec, err := s.Repo.Find(in.CourseID, in.LearningStyle, nil)
	if err != nil {
		return nil, err
	}
	return s.activityForMapping(rec)
}

func (s *RecommendationService) moodDefault(in ResolveInput) (*model.Activity, error) {
	rec, err := s.Repo.Find(in.CourseID, nil, &in.Mood)
	if err != nil {
		return nil, err
	}
	return s.activityForMapping(rec)
}

// courseDefault 查询 (NULL, NULL) 课程级兜底行
func (s *RecommendationService) courseDefault(in ResolveInput) (*model.Activity, error) {
	rec, err := s.Repo.Find(in.CourseID, nil, nil)
	if err != nil {
		return nil, err
	}
	return s.activityForMapping(rec)
}

// randomFallback picks deterministically among the course's activities so
// repeated calls for the same participant within a session stay stable
// while different participants and sessions diverge.
func (s *RecommendationService) randomFallback(in ResolveInput) (*model.Activity, error) {
	activities, err := s.ActivityRepo.ListByCourse(in.CourseID)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, nil
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", in.CourseID, in.ParticipantKey, in.SessionDate.Format(util.DateFormat))
	idx := h.Sum64() % uint64(len(activities))
	return &activities[idx], nil
}

func (s *RecommendationService) strategies() []resolverStrategy {
	return []resolverStrategy{
		{name: MatchStyleMood, lookup: s.exactMatch},
		{name: MatchStyleOnly, lookup: s.styleDefault},
		{name: MatchMoodOnly, lookup: s.moodDefault},
		{name: MatchCourseDefault, lookup: s.courseDefault},
		{name: MatchRandom, lookup: s.randomFallback},
	}
}

// Resolve walks the fallback chain in strict order and returns the first
// hit. A legitimately empty state is not an error: the result carries
// MatchNone and a nil activity.
func (s *RecommendationService) Resolve(in ResolveInput) (*Resolution, error) {
	for _, strategy := range s.strategies() {
		activity, err := strategy.lookup(in)
		if err != nil {
			return nil, err
		}
		if activity != nil {
			return &Resolution{MatchType: strategy.name, Activity: activity}, nil
		}
	}
	return &Resolution{MatchType: MatchNone}, nil
}

// ---- 映射维护 ----

type RecommendationMapping struct {
	LearningStyle *string `json:"learningStyle"`
	Mood          *string `json:"mood"`
	ActivityID    string  `json:"activityId" binding:"required"`
}

func (s *RecommendationService) ListMappings(courseID string) ([]model.CourseRecommendation, error) {
	return s.Repo.ListByCourse(courseID)
}

// PatchMappings 批量写入教师提交的精确映射，并刷新自动默认行
func (s *RecommendationService) PatchMappings(courseID string, mappings []RecommendationMapping) ([]model.CourseRecommendation, error) {
	rows := make([]model.CourseRecommendation, 0, len(mappings))
	for _, m := range mappings {
		rows = append(rows, model.CourseRecommendation{
			CourseID:      courseID,
			LearningStyle: normalizeDefault(m.LearningStyle),
			Mood:          normalizeDefault(m.Mood),
			ActivityID:    m.ActivityID,
			IsAuto:        false,
		})
	}

	if err := s.Repo.ReplaceMappings(courseID, rows); err != nil {
		return nil, err
	}
	if err := s.EnsureDefaults(courseID, rows); err != nil {
		return nil, err
	}
	return s.Repo.ListByCourse(courseID)
}

// normalizeDefault 将空串与通配记号归一为 NULL（默认轴）
func normalizeDefault(value *string) *string {
	if value == nil {
		return nil
	}
	switch *value {
	case "", "*", "ANY", "any", "default":
		return nil
	}
	return value
}

// EnsureDefaults keeps the auto-maintained default rows in step with the
// latest precise mappings. Manual rows are never overwritten; auto rows
// follow the most recent precise mapping for their axis.
func (s *RecommendationService) EnsureDefaults(courseID string, patched []model.CourseRecommendation) error {
	if err := s.ensureCourseDefault(courseID); err != nil {
		return err
	}

	latestForMood := map[string]string{}
	latestForStyle := map[string]string{}
	for _, row := range patched {
		if row.Mood != nil {
			latestForMood[*row.Mood] = row.ActivityID
		}
		if row.LearningStyle != nil {
			latestForStyle[*row.LearningStyle] = row.ActivityID
		}
	}

	for mood, activityID := range latestForMood {
		m := mood
		if err := s.ensureAutoRow(courseID, nil, &m, activityID); err != nil {
			return err
		}
	}
	for style, activityID := range latestForStyle {
		st := style
		if err := s.ensureAutoRow(courseID, &st, nil, activityID); err != nil {
			return err
		}
	}
	return nil
}

func (s *RecommendationService) ensureAutoRow(courseID string, style, mood *string, activityID string) error {
	existing, err := s.Repo.Find(courseID, style, mood)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.Repo.Create(&model.CourseRecommendation{
			CourseID:      courseID,
			LearningStyle: style,
			Mood:          mood,
			ActivityID:    activityID,
			IsAuto:        true,
		})
	}
	if existing.IsAuto && existing.ActivityID != activityID {
		existing.ActivityID = activityID
		return s.Repo.Save(existing)
	}
	return nil
}

// ensureCourseDefault 维护 (NULL, NULL) 课程级兜底行
func (s *RecommendationService) ensureCourseDefault(courseID string) error {
	activity, err := s.pickCourseDefaultActivity(courseID)
	if err != nil || activity == nil {
		return err
	}
	return s.ensureAutoRow(courseID, nil, nil, activity.ID)
}

// pickCourseDefaultActivity prefers an activity tagged as the system
// default and otherwise falls back to the newest one.
func (s *RecommendationService) pickCourseDefaultActivity(courseID string) (*model.Activity, error) {
	activities, err := s.ActivityRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, nil
	}

	for i := range activities {
		for _, tag := range activities[i].Tags {
			if tag == SystemDefaultActivityTag {
				return &activities[i], nil
			}
		}
	}
	return &activities[len(activities)-1], nil
}
