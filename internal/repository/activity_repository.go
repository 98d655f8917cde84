package repository

import (
	"class_connect_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(a *model.Activity) error {
	return r.DB.Create(a).Error
}

func (r *ActivityRepository) FindByID(id string) (*model.Activity, error) {
	var a model.Activity
	err := r.DB.First(&a, "id = ?", id).Error
	return &a, err
}

// ListByCourse 按稳定顺序返回课程活动，随机兜底依赖该顺序的确定性
func (r *ActivityRepository) ListByCourse(courseID string) ([]model.Activity, error) {
	var as []model.Activity
	err := r.DB.Where("course_id = ?", courseID).Order("created_at asc, id asc").Find(&as).Error
	return as, err
}

func (r *ActivityRepository) Save(a *model.Activity) error {
	return r.DB.Save(a).Error
}

func (r *ActivityRepository) Delete(id string) error {
	return r.DB.Delete(&model.Activity{}, "id = ?", id).Error
}
