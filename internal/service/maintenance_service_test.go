package service

import (
	"class_connect_backend/internal/model"
	"testing"
)

func TestResetDataWipesAllTables(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	course := f.createCourse(t, teacher.ID, nil)
	f.createActivity(t, course.ID, "a1")
	f.createActivity(t, course.ID, "a2")

	svc := NewMaintenanceService(f.db)

	counts, err := svc.ResetData()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	if counts["teachers"] != 1 {
		t.Fatalf("teachers count = %d, want 1", counts["teachers"])
	}
	if counts["courses"] != 1 {
		t.Fatalf("courses count = %d, want 1", counts["courses"])
	}
	if counts["activities"] != 2 {
		t.Fatalf("activities count = %d, want 2", counts["activities"])
	}

	var remaining int64
	if err := f.db.Model(&model.Course{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("courses remaining = %d, want 0", remaining)
	}

	// 重置后可以重新写入
	if err := f.teacherRepo.Create(&model.Teacher{
		Email:    "new@example.com",
		Password: "hashed",
		FullName: "New",
	}); err != nil {
		t.Fatalf("create after reset: %v", err)
	}
}

func TestDuplicateCurrentProfileRejectedBySchema(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	course := f.createCourse(t, teacher.ID, nil)

	guestID := model.GenerateUUID()
	studentID := model.GenerateUUID()

	insertCurrent := func(studentID, guestID *string) error {
		p := &model.CourseStudentProfile{
			CourseID:  course.ID,
			StudentID: studentID,
			GuestID:   guestID,
		}
		p.MarkCurrent()
		return f.db.Create(p).Error
	}

	// 游客轴
	if err := insertCurrent(nil, &guestID); err != nil {
		t.Fatalf("first guest profile: %v", err)
	}
	if err := insertCurrent(nil, &guestID); err == nil {
		t.Fatal("second current guest profile must hit the unique index")
	}

	// 学生轴
	if err := insertCurrent(&studentID, nil); err != nil {
		t.Fatalf("first student profile: %v", err)
	}
	if err := insertCurrent(&studentID, nil); err == nil {
		t.Fatal("second current student profile must hit the unique index")
	}

	// 历史行的标记为 NULL，不受唯一索引约束
	if err := f.db.Create(&model.CourseStudentProfile{
		CourseID:  course.ID,
		GuestID:   &guestID,
		IsCurrent: false,
	}).Error; err != nil {
		t.Fatalf("history row: %v", err)
	}
}

func TestGetCurrentProfileConflict(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	course := f.createCourse(t, teacher.ID, nil)

	// 故意不设标记，绕过唯一索引，验证读路径的完整性兜底
	guestID := model.GenerateUUID()
	for i := 0; i < 2; i++ {
		if err := f.db.Create(&model.CourseStudentProfile{
			CourseID:  course.ID,
			GuestID:   &guestID,
			IsCurrent: true,
		}).Error; err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}

	_, err := f.profileRepo.GetCurrent(course.ID, nil, &guestID)
	if err == nil {
		t.Fatal("expected data integrity error for duplicate current profiles")
	}
}
