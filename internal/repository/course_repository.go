package repository

import (
	"class_connect_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(c *model.Course) error {
	return r.DB.Create(c).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var c model.Course
	err := r.DB.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *CourseRepository) ListByTeacher(teacherID string) ([]model.Course, error) {
	var cs []model.Course
	err := r.DB.Where("teacher_id = ?", teacherID).Order("created_at desc").Find(&cs).Error
	return cs, err
}

func (r *CourseRepository) TitleExists(teacherID, title string, excludeID string) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Course{}).Where("teacher_id = ? AND title = ?", teacherID, title)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) Save(c *model.Course) error {
	return r.DB.Save(c).Error
}

func (r *CourseRepository) Delete(id string) error {
	return r.DB.Delete(&model.Course{}, "id = ?", id).Error
}

// ClearRebaselineTx 在提交事务内清除课程的重新测评标记
func (r *CourseRepository) ClearRebaselineTx(tx *gorm.DB, courseID string) error {
	return tx.Model(&model.Course{}).
		Where("id = ?", courseID).
		Update("requires_rebaseline", false).Error
}
