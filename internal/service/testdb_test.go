package service

import (
	"class_connect_backend/internal/model"
	"class_connect_backend/internal/repository"
	"class_connect_backend/pkg/database"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库绑定单连接，避免连接池拿到空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db *gorm.DB

	teacherRepo *repository.TeacherRepository
	studentRepo *repository.StudentRepository
	courseRepo  *repository.CourseRepository
	surveyRepo  *repository.SurveyRepository
	sessionRepo *repository.SessionRepository
	subRepo     *repository.SubmissionRepository
	profileRepo *repository.ProfileRepository
	recRepo     *repository.RecommendationRepository
	actRepo     *repository.ActivityRepository

	surveys     *SurveyService
	courses     *CourseService
	sessions    *SessionService
	activities  *ActivityService
	rec         *RecommendationService
	submissions *SubmissionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{
		db:          db,
		teacherRepo: repository.NewTeacherRepository(db),
		studentRepo: repository.NewStudentRepository(db),
		courseRepo:  repository.NewCourseRepository(db),
		surveyRepo:  repository.NewSurveyRepository(db),
		sessionRepo: repository.NewSessionRepository(db),
		subRepo:     repository.NewSubmissionRepository(db),
		profileRepo: repository.NewProfileRepository(db),
		recRepo:     repository.NewRecommendationRepository(db),
		actRepo:     repository.NewActivityRepository(db),
	}

	f.surveys = NewSurveyService(f.surveyRepo)
	f.courses = NewCourseService(f.courseRepo, f.surveyRepo)
	f.sessions = NewSessionService(f.sessionRepo, f.courseRepo, f.surveyRepo, f.subRepo, nil)
	f.activities = NewActivityService(f.actRepo, f.courseRepo)
	f.rec = NewRecommendationService(f.recRepo, f.actRepo)
	f.submissions = NewSubmissionService(db, f.sessionRepo, f.courseRepo, f.subRepo, f.profileRepo, f.rec)

	return f
}

func (f *fixture) createTeacher(t *testing.T) *model.Teacher {
	t.Helper()
	teacher := &model.Teacher{
		Email:    model.GenerateUUID() + "@example.com",
		Password: "hashed",
		FullName: "Test Teacher",
	}
	if err := f.teacherRepo.Create(teacher); err != nil {
		t.Fatalf("create teacher: %v", err)
	}
	return teacher
}

func (f *fixture) createCourse(t *testing.T, teacherID string, surveyID *string) *model.Course {
	t.Helper()
	course := &model.Course{
		TeacherID:               teacherID,
		Title:                   "Course " + model.GenerateUUID(),
		BaselineSurveyID:        surveyID,
		LearningStyleCategories: []string{"visual", "auditory", "kinesthetic"},
		MoodLabels:              []string{"happy", "tired", "focused"},
		RequiresRebaseline:      true,
	}
	if err := f.db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func (f *fixture) createActivity(t *testing.T, courseID, name string, tags ...string) *model.Activity {
	t.Helper()
	a := &model.Activity{
		CourseID: courseID,
		Name:     name,
		Type:     "exercise",
		Tags:     tags,
	}
	if err := f.actRepo.Create(a); err != nil {
		t.Fatalf("create activity: %v", err)
	}
	return a
}

func (f *fixture) createSurveyTemplate(t *testing.T, teacherID string) *model.SurveyTemplate {
	t.Helper()
	template := &model.SurveyTemplate{
		TeacherID: teacherID,
		Title:     "Learning Style Baseline",
		Questions: []model.SurveyQuestion{
			{
				ID:   "q1",
				Text: "How do you prefer to learn new material?",
				Options: []model.SurveyOption{
					{Label: "Diagrams", Scores: map[string]int{"visual": 2}},
					{Label: "Lectures", Scores: map[string]int{"auditory": 2}},
					{Label: "Practice", Scores: map[string]int{"kinesthetic": 2}},
				},
			},
			{
				ID:   "q2",
				Text: "What helps you remember best?",
				Options: []model.SurveyOption{
					{Label: "Pictures", Scores: map[string]int{"visual": 1}},
					{Label: "Discussion", Scores: map[string]int{"auditory": 1}},
					{Label: "Doing", Scores: map[string]int{"kinesthetic": 1}},
				},
			},
		},
	}
	if err := f.surveyRepo.Create(template); err != nil {
		t.Fatalf("create survey template: %v", err)
	}
	return template
}

func strPtr(s string) *string {
	return &s
}
