package repository

import (
	"class_connect_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(s *model.ClassSession) error {
	return r.DB.Create(s).Error
}

func (r *SessionRepository) FindByID(id string) (*model.ClassSession, error) {
	var s model.ClassSession
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SessionRepository) FindByJoinToken(token string) (*model.ClassSession, error) {
	var s model.ClassSession
	err := r.DB.First(&s, "join_token = ?", token).Error
	return &s, err
}

func (r *SessionRepository) ListByCourse(courseID string) ([]model.ClassSession, error) {
	var ss []model.ClassSession
	err := r.DB.Where("course_id = ?", courseID).Order("started_at desc").Find(&ss).Error
	return ss, err
}

// Close 单向关闭：仅当会话仍开放时写入 closed_at
func (r *SessionRepository) Close(id string, at time.Time) (bool, error) {
	res := r.DB.Model(&model.ClassSession{}).
		Where("id = ? AND closed_at IS NULL", id).
		Update("closed_at", at)
	return res.RowsAffected > 0, res.Error
}

// LockOpenTx 在事务内以 FOR UPDATE 重读会话，串行化"关闭会话"与
// "迟到提交"。SQLite 不支持 FOR UPDATE，单连接内存库中事务天然串行，
// 跳过加锁子句。
func (r *SessionRepository) LockOpenTx(tx *gorm.DB, id string) (*model.ClassSession, error) {
	query := tx
	if tx.Dialector.Name() != "sqlite" {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var s model.ClassSession
	if err := query.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
