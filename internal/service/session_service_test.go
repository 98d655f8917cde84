package service

import (
	"class_connect_backend/internal/util"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestCreateSessionFreezesSurveySnapshot(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	template := f.createSurveyTemplate(t, teacher.ID)
	course := f.createCourse(t, teacher.ID, &template.ID)

	session, err := f.sessions.CreateSession(teacher.ID, course.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if len(session.JoinToken) != 12 {
		t.Fatalf("join token length = %d, want 12", len(session.JoinToken))
	}
	if session.SurveySnapshot == nil || len(session.SurveySnapshot.Questions) != 2 {
		t.Fatalf("snapshot = %+v, want frozen 2-question survey", session.SurveySnapshot)
	}

	// 会话创建后编辑模板，快照不受影响
	template.Questions = template.Questions[:1]
	if err := f.surveyRepo.Save(template); err != nil {
		t.Fatalf("save template: %v", err)
	}

	reloaded, err := f.sessions.GetSession(session.ID)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if len(reloaded.SurveySnapshot.Questions) != 2 {
		t.Fatalf("snapshot mutated after template edit: %+v", reloaded.SurveySnapshot)
	}
}

func TestCreateSessionWithoutBaselineSurvey(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	course := f.createCourse(t, teacher.ID, nil)

	session, err := f.sessions.CreateSession(teacher.ID, course.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.SurveySnapshot != nil {
		t.Fatalf("snapshot = %+v, want nil without baseline survey", session.SurveySnapshot)
	}
}

func TestCreateSessionEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	intruder := f.createTeacher(t)
	course := f.createCourse(t, teacher.ID, nil)

	if _, err := f.sessions.CreateSession(intruder.ID, course.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestFindByJoinToken(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	course := f.createCourse(t, teacher.ID, nil)

	session, err := f.sessions.CreateSession(teacher.ID, course.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	found, err := f.sessions.FindByJoinToken(context.Background(), session.JoinToken)
	if err != nil {
		t.Fatalf("find by token: %v", err)
	}
	if found.ID != session.ID {
		t.Fatalf("found session %s, want %s", found.ID, session.ID)
	}

	if _, err := f.sessions.FindByJoinToken(context.Background(), "nope12345678"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestCloseSessionEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	intruder := f.createTeacher(t)
	course := f.createCourse(t, teacher.ID, nil)

	session, err := f.sessions.CreateSession(teacher.ID, course.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := f.sessions.CloseSession(context.Background(), intruder.ID, session.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestLockOpenTxSeesCommittedClose(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	course := f.createCourse(t, teacher.ID, nil)

	session, err := f.sessions.CreateSession(teacher.ID, course.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := f.sessions.CloseSession(context.Background(), teacher.ID, session.ID); err != nil {
		t.Fatalf("close session: %v", err)
	}

	// 加锁重读必须看到已提交的关闭，而非调用方手里的陈旧快照
	err = f.db.Transaction(func(tx *gorm.DB) error {
		locked, err := f.sessionRepo.LockOpenTx(tx, session.ID)
		if err != nil {
			return err
		}
		if locked.IsOpen() {
			t.Fatal("locked re-read missed the committed close")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
}

func TestListSubmissionsEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	teacher := f.createTeacher(t)
	intruder := f.createTeacher(t)
	course := f.createCourse(t, teacher.ID, nil)

	session, err := f.sessions.CreateSession(teacher.ID, course.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := f.sessions.ListSubmissions(intruder.ID, session.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	subs, err := f.sessions.ListSubmissions(teacher.ID, session.ID)
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("expected no submissions, got %d", len(subs))
	}
}
