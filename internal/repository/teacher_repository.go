package repository

import (
	"class_connect_backend/internal/model"

	"gorm.io/gorm"
)

type TeacherRepository struct {
	DB *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{DB: db}
}

func (r *TeacherRepository) Create(t *model.Teacher) error {
	return r.DB.Create(t).Error
}

func (r *TeacherRepository) FindByID(id string) (*model.Teacher, error) {
	var t model.Teacher
	err := r.DB.First(&t, "id = ?", id).Error
	return &t, err
}

func (r *TeacherRepository) FindByEmail(email string) (*model.Teacher, error) {
	var t model.Teacher
	err := r.DB.First(&t, "email = ?", email).Error
	return &t, err
}
