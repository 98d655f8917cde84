package repository

import (
	"class_connect_backend/internal/model"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

func (r *SurveyRepository) Create(s *model.SurveyTemplate) error {
	return r.DB.Create(s).Error
}

func (r *SurveyRepository) FindByID(id string) (*model.SurveyTemplate, error) {
	var s model.SurveyTemplate
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SurveyRepository) ListByTeacher(teacherID string) ([]model.SurveyTemplate, error) {
	var ss []model.SurveyTemplate
	err := r.DB.Where("teacher_id = ?", teacherID).Order("created_at desc").Find(&ss).Error
	return ss, err
}

func (r *SurveyRepository) Save(s *model.SurveyTemplate) error {
	return r.DB.Save(s).Error
}

func (r *SurveyRepository) Delete(id string) error {
	return r.DB.Delete(&model.SurveyTemplate{}, "id = ?", id).Error
}
