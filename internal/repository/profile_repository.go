package repository

import (
	"class_connect_backend/internal/model"
	"class_connect_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func participantScope(query *gorm.DB, studentID, guestID *string) *gorm.DB {
	if studentID != nil {
		return query.Where("student_id = ?", *studentID)
	}
	return query.Where("guest_id = ?", *guestID)
}

// GetCurrent 返回参与者在课程内的当前画像；从未测评过则返回 nil。
// 出现多条 is_current 记录说明唯一性约束在别处被破坏，按数据完整性错误上报。
func (r *ProfileRepository) GetCurrent(courseID string, studentID, guestID *string) (*model.CourseStudentProfile, error) {
	var profiles []model.CourseStudentProfile
	query := r.DB.Where("course_id = ? AND is_current = ?", courseID, true)
	query = participantScope(query, studentID, guestID)
	if err := query.Limit(2).Find(&profiles).Error; err != nil {
		return nil, err
	}

	switch len(profiles) {
	case 0:
		return nil, nil
	case 1:
		return &profiles[0], nil
	default:
		return nil, util.ErrProfileConflict
	}
}

// UpsertCurrentTx 将旧的当前画像翻转为历史，并插入新的当前画像。
// 两步必须落在同一事务内：部分生效不可被观察到。翻转时同时清空
// current_marker，否则新行会撞上唯一索引。
func (r *ProfileRepository) UpsertCurrentTx(tx *gorm.DB, profile *model.CourseStudentProfile) error {
	query := tx.Model(&model.CourseStudentProfile{}).
		Where("course_id = ? AND is_current = ?", profile.CourseID, true)
	query = participantScope(query, profile.StudentID, profile.GuestID)

	if err := query.Updates(map[string]interface{}{
		"is_current":     false,
		"current_marker": nil,
	}).Error; err != nil {
		return err
	}

	profile.MarkCurrent()
	return tx.Create(profile).Error
}

// History 返回参与者的全部画像（含历史），新者在前
func (r *ProfileRepository) History(courseID string, studentID, guestID *string) ([]model.CourseStudentProfile, error) {
	var profiles []model.CourseStudentProfile
	query := r.DB.Where("course_id = ?", courseID)
	query = participantScope(query, studentID, guestID)
	err := query.Order("created_at desc").Find(&profiles).Error
	return profiles, err
}

// CountCurrent 统计课程内当前画像数量（按学习风格可选过滤）
func (r *ProfileRepository) CountCurrent(courseID string, learningStyle *string) (int64, error) {
	var count int64
	query := r.DB.Model(&model.CourseStudentProfile{}).
		Where("course_id = ? AND is_current = ?", courseID, true)
	if learningStyle != nil {
		query = query.Where("learning_style = ?", *learningStyle)
	}
	err := query.Count(&count).Error
	return count, err
}

// IsIntegrityErr 判断是否为画像唯一性被破坏的错误
func IsIntegrityErr(err error) bool {
	return errors.Is(err, util.ErrProfileConflict)
}
