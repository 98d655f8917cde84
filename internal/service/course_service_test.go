package service

import (
	"class_connect_backend/internal/util"
	"errors"
	"testing"
)

func TestCreateCourseValidatesMoodLabels(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)

	tests := []struct {
		name    string
		labels  []string
		wantErr error
	}{
		{"empty list", []string{}, util.ErrEmptyMoodLabels},
		{"blank label", []string{"happy", "  "}, util.ErrEmptyMoodLabels},
		{"duplicate label", []string{"happy", "happy"}, util.ErrDuplicateMoods},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.courses.CreateCourse(teacher.ID, CourseRequest{
				Title:      "Biology " + tt.name,
				MoodLabels: tt.labels,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateCourseStartsWithRebaseline(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)

	course, err := f.courses.CreateCourse(teacher.ID, CourseRequest{
		Title:      "Biology",
		MoodLabels: []string{"happy", "tired"},
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if !course.RequiresRebaseline {
		t.Fatal("new course must require a baseline survey")
	}
}

func TestCreateCourseRejectsDuplicateTitlePerTeacher(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	other := f.createTeacher(t)

	req := CourseRequest{Title: "Biology", MoodLabels: []string{"happy"}}

	if _, err := f.courses.CreateCourse(teacher.ID, req); err != nil {
		t.Fatalf("create course: %v", err)
	}
	if _, err := f.courses.CreateCourse(teacher.ID, req); !errors.Is(err, util.ErrDuplicateTitle) {
		t.Fatalf("err = %v, want ErrDuplicateTitle", err)
	}

	// 标题唯一性按教师隔离
	if _, err := f.courses.CreateCourse(other.ID, req); err != nil {
		t.Fatalf("same title for another teacher should work: %v", err)
	}
}

func TestUpdateCourseBaselineChangeTriggersRebaseline(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	template := f.createSurveyTemplate(t, teacher.ID)

	course, err := f.courses.CreateCourse(teacher.ID, CourseRequest{
		Title:      "Biology",
		MoodLabels: []string{"happy"},
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	// 清除初始标记以观察更新行为
	course.RequiresRebaseline = false
	if err := f.courseRepo.Save(course); err != nil {
		t.Fatalf("save course: %v", err)
	}

	updated, err := f.courses.UpdateCourse(teacher.ID, course.ID, CourseRequest{
		Title:            "Biology",
		MoodLabels:       []string{"happy"},
		BaselineSurveyID: &template.ID,
	})
	if err != nil {
		t.Fatalf("update course: %v", err)
	}
	if !updated.RequiresRebaseline {
		t.Fatal("changing the baseline survey must trigger rebaseline")
	}

	// 再次保存相同基线不应翻转标记
	updated.RequiresRebaseline = false
	if err := f.courseRepo.Save(updated); err != nil {
		t.Fatalf("save course: %v", err)
	}
	same, err := f.courses.UpdateCourse(teacher.ID, course.ID, CourseRequest{
		Title:            "Biology",
		MoodLabels:       []string{"happy"},
		BaselineSurveyID: &template.ID,
	})
	if err != nil {
		t.Fatalf("update course: %v", err)
	}
	if same.RequiresRebaseline {
		t.Fatal("unchanged baseline must not trigger rebaseline")
	}
}

func TestUpdateCourseRejectsForeignSurvey(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	other := f.createTeacher(t)
	foreign := f.createSurveyTemplate(t, other.ID)

	course, err := f.courses.CreateCourse(teacher.ID, CourseRequest{
		Title:      "Biology",
		MoodLabels: []string{"happy"},
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	_, err = f.courses.UpdateCourse(teacher.ID, course.ID, CourseRequest{
		Title:            "Biology",
		MoodLabels:       []string{"happy"},
		BaselineSurveyID: &foreign.ID,
	})
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestGetOwnedCourseEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	intruder := f.createTeacher(t)
	course := f.createCourse(t, teacher.ID, nil)

	if _, err := f.courses.GetOwnedCourse(intruder.ID, course.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if _, err := f.courses.GetOwnedCourse(teacher.ID, "missing-id"); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}
