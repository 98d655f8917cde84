package database

import (
	"class_connect_backend/internal/config"
	"class_connect_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate 自动迁移所有领域表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Teacher{},
		&model.Student{},
		&model.SurveyTemplate{},
		&model.Course{},
		&model.ClassSession{},
		&model.Submission{},
		&model.Activity{},
		&model.CourseRecommendation{},
		&model.CourseStudentProfile{},
	)
}
