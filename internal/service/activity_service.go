package service

import (
	"class_connect_backend/internal/model"
	"class_connect_backend/internal/repository"
	"class_connect_backend/internal/util"
	"encoding/json"

	"gorm.io/gorm"
)

type ActivityService struct {
	Repo       *repository.ActivityRepository
	CourseRepo *repository.CourseRepository
}

func NewActivityService(repo *repository.ActivityRepository, courseRepo *repository.CourseRepository) *ActivityService {
	return &ActivityService{Repo: repo, CourseRepo: courseRepo}
}

type ActivityRequest struct {
	Name    string          `json:"name" binding:"required"`
	Summary string          `json:"summary"`
	Type    string          `json:"type" binding:"required"`
	Tags    []string        `json:"tags"`
	Content json.RawMessage `json:"content"`
}

func (s *ActivityService) ownedCourse(teacherID, courseID string) (*model.Course, error) {
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
	return course, nil
}

func (s *ActivityService) CreateActivity(teacherID, courseID string, req ActivityRequest) (*model.Activity, error) {
	if _, err := s.ownedCourse(teacherID, courseID); err != nil {
		return nil, err
	}

	a := &model.Activity{
		CourseID: courseID,
		Name:     req.Name,
		Summary:  req.Summary,
		Type:     req.Type,
		Tags:     req.Tags,
		Content:  req.Content,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ActivityService) ListActivities(teacherID, courseID string) ([]model.Activity, error) {
	if _, err := s.ownedCourse(teacherID, courseID); err != nil {
		return nil, err
	}
	return s.Repo.ListByCourse(courseID)
}

func (s *ActivityService) GetActivity(id string) (*model.Activity, error) {
	a, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrActivityNotFound
	}
	return a, err
}

func (s *ActivityService) UpdateActivity(teacherID, id string, req ActivityRequest) (*model.Activity, error) {
	a, err := s.GetActivity(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(teacherID, a.CourseID); err != nil {
		return nil, err
	}

	a.Name = req.Name
	a.Summary = req.Summary
	a.Type = req.Type
	a.Tags = req.Tags
	a.Content = req.Content
	if err := s.Repo.Save(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ActivityService) DeleteActivity(teacherID, id string) error {
	a, err := s.GetActivity(id)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(teacherID, a.CourseID); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
