package service

import (
	"class_connect_backend/internal/model"
	"class_connect_backend/internal/repository"
	"class_connect_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type CourseService struct {
	Repo       *repository.CourseRepository
	SurveyRepo *repository.SurveyRepository
}

func NewCourseService(repo *repository.CourseRepository, surveyRepo *repository.SurveyRepository) *CourseService {
	return &CourseService{Repo: repo, SurveyRepo: surveyRepo}
}

type CourseRequest struct {
	Title                   string   `json:"title" binding:"required"`
	MoodLabels              []string `json:"moodLabels" binding:"required"`
	LearningStyleCategories []string `json:"learningStyleCategories"`
	BaselineSurveyID        *string  `json:"baselineSurveyId"`
}

func validateMoodLabels(labels []string) error {
	if len(labels) == 0 {
		return util.ErrEmptyMoodLabels
	}
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			return util.ErrEmptyMoodLabels
		}
		if seen[label] {
			return util.ErrDuplicateMoods
		}
		seen[label] = true
	}
	return nil
}

func (s *CourseService) resolveBaselineSurvey(teacherID string, surveyID *string) (*string, error) {
	if surveyID == nil || *surveyID == "" {
		return nil, nil
	}
	t, err := s.SurveyRepo.FindByID(*surveyID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSurveyNotFound
	}
	if err != nil {
		return nil, err
	}
	if t.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return surveyID, nil
}

// CreateCourse 新课程一律要求首次基线测评
func (s *CourseService) CreateCourse(teacherID string, req CourseRequest) (*model.Course, error) {
	if err := validateMoodLabels(req.MoodLabels); err != nil {
		return nil, err
	}

	exists, err := s.Repo.TitleExists(teacherID, req.Title, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateTitle
	}

	baselineID, err := s.resolveBaselineSurvey(teacherID, req.BaselineSurveyID)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		TeacherID:               teacherID,
		Title:                   req.Title,
		BaselineSurveyID:        baselineID,
		LearningStyleCategories: req.LearningStyleCategories,
		MoodLabels:              req.MoodLabels,
		RequiresRebaseline:      true,
	}
	if err := s.Repo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourse(id string) (*model.Course, error) {
	c, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	return c, err
}

func (s *CourseService) GetOwnedCourse(teacherID, id string) (*model.Course, error) {
	c, err := s.GetCourse(id)
	if err != nil {
		return nil, err
	}
	if c.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return c, nil
}

func (s *CourseService) ListCourses(teacherID string) ([]model.Course, error) {
	return s.Repo.ListByTeacher(teacherID)
}

// UpdateCourse 更换基线问卷会触发所有参与者重新测评
func (s *CourseService) UpdateCourse(teacherID, id string, req CourseRequest) (*model.Course, error) {
	course, err := s.GetOwnedCourse(teacherID, id)
	if err != nil {
		return nil, err
	}

	if err := validateMoodLabels(req.MoodLabels); err != nil {
		return nil, err
	}

	exists, err := s.Repo.TitleExists(teacherID, req.Title, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateTitle
	}

	baselineID, err := s.resolveBaselineSurvey(teacherID, req.BaselineSurveyID)
	if err != nil {
		return nil, err
	}

	if baselineChanged(course.BaselineSurveyID, baselineID) {
		course.RequiresRebaseline = true
	}

	course.Title = req.Title
	course.MoodLabels = req.MoodLabels
	course.LearningStyleCategories = req.LearningStyleCategories
	course.BaselineSurveyID = baselineID

	if err := s.Repo.Save(course); err != nil {
		return nil, err
	}
	return course, nil
}

func baselineChanged(prev, next *string) bool {
	if prev == nil && next == nil {
		return false
	}
	if prev == nil || next == nil {
		return true
	}
	return *prev != *next
}

func (s *CourseService) DeleteCourse(teacherID, id string) error {
	if _, err := s.GetOwnedCourse(teacherID, id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// ShouldForceBaseline 读取课程的重新测评标记；会话创建时冻结该值
func (s *CourseService) ShouldForceBaseline(course *model.Course) bool {
	return course.RequiresRebaseline
}
