package service

import (
	"class_connect_backend/internal/model"

	"gorm.io/gorm"
)

// MaintenanceService 开发环境的数据重置；外键序：子表先删
type MaintenanceService struct {
	DB *gorm.DB
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{DB: db}
}

// ResetData 清空全部领域表并返回各表删除行数
func (s *MaintenanceService) ResetData() (map[string]int64, error) {
	tables := []interface{}{
		&model.CourseStudentProfile{},
		&model.CourseRecommendation{},
		&model.Submission{},
		&model.ClassSession{},
		&model.Activity{},
		&model.Course{},
		&model.SurveyTemplate{},
		&model.Student{},
		&model.Teacher{},
	}

	counts := make(map[string]int64, len(tables))

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			stmt := &gorm.Statement{DB: tx}
			if err := stmt.Parse(table); err != nil {
				return err
			}
			name := stmt.Schema.Table

			var count int64
			if err := tx.Model(table).Count(&count).Error; err != nil {
				return err
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
				return err
			}
			counts[name] = count
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
