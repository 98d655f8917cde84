package repository

import (
	"class_connect_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(s *model.Student) error {
	return r.DB.Create(s).Error
}

func (r *StudentRepository) FindByID(id string) (*model.Student, error) {
	var s model.Student
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *StudentRepository) FindByEmail(email string) (*model.Student, error) {
	var s model.Student
	err := r.DB.First(&s, "email = ?", email).Error
	return &s, err
}
