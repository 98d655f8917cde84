package repository

import (
	"class_connect_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SubmissionRepository) ListBySession(sessionID string) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.Where("session_id = ?", sessionID).Order("created_at asc").Find(&ss).Error
	return ss, err
}

// FindForParticipantTx 查找该参与者在会话中已有的提交（学生或访客）
func (r *SubmissionRepository) FindForParticipantTx(tx *gorm.DB, sessionID string, studentID, guestID *string) (*model.Submission, error) {
	var s model.Submission
	query := tx.Where("session_id = ?", sessionID)
	if studentID != nil {
		query = query.Where("student_id = ?", *studentID)
	} else {
		query = query.Where("guest_id = ?", *guestID)
	}
	err := query.First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) CreateTx(tx *gorm.DB, s *model.Submission) error {
	return tx.Create(s).Error
}

func (r *SubmissionRepository) SaveTx(tx *gorm.DB, s *model.Submission) error {
	return tx.Save(s).Error
}
