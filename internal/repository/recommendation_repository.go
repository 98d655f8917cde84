package repository

import (
	"class_connect_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

func nullableScope(query *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *value)
}

// Find 按 (learning_style, mood) 精确匹配一条映射；NULL 表示默认轴
func (r *RecommendationRepository) Find(courseID string, learningStyle, mood *string) (*model.CourseRecommendation, error) {
	var rec model.CourseRecommendation
	query := r.DB.Where("course_id = ?", courseID)
	query = nullableScope(query, "learning_style", learningStyle)
	query = nullableScope(query, "mood", mood)

	err := query.Order("updated_at desc").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecommendationRepository) ListByCourse(courseID string) ([]model.CourseRecommendation, error) {
	var recs []model.CourseRecommendation
	err := r.DB.Where("course_id = ?", courseID).Order("created_at asc").Find(&recs).Error
	return recs, err
}

func (r *RecommendationRepository) Create(rec *model.CourseRecommendation) error {
	return r.DB.Create(rec).Error
}

func (r *RecommendationRepository) Save(rec *model.CourseRecommendation) error {
	return r.DB.Save(rec).Error
}

func (r *RecommendationRepository) Delete(id string) error {
	return r.DB.Delete(&model.CourseRecommendation{}, "id = ?", id).Error
}

// ReplaceMappings 批量写入精确映射：同键存在则更新活动，否则插入。
// 手工行与自动行都可被教师的精确提交覆盖为手工行。
func (r *RecommendationRepository) ReplaceMappings(courseID string, mappings []model.CourseRecommendation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range mappings {
			m := &mappings[i]
			m.CourseID = courseID

			var existing model.CourseRecommendation
			query := tx.Where("course_id = ?", courseID)
			query = nullableScope(query, "learning_style", m.LearningStyle)
			query = nullableScope(query, "mood", m.Mood)

			err := query.First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(m).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}

			existing.ActivityID = m.ActivityID
			existing.IsAuto = m.IsAuto
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
