package service

import (
	"class_connect_backend/internal/config"
	"class_connect_backend/internal/util"
	"errors"
	"testing"
	"time"
)

func newAuthService(f *fixture) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(f.teacherRepo, f.studentRepo, cfg)
}

func TestTeacherRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	auth := newAuthService(f)

	req := RegisterRequest{
		Email:    "teacher@example.com",
		Password: "password123",
		FullName: "Grace",
	}

	teacher, err := auth.RegisterTeacher(req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if teacher.Password == req.Password {
		t.Fatal("password stored in plain text")
	}

	if _, err := auth.RegisterTeacher(req); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}

	token, logged, err := auth.LoginTeacher(LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || logged.ID != teacher.ID {
		t.Fatalf("login result token=%q id=%s", token, logged.ID)
	}

	claims, err := util.ParseJWT(token, "test-secret-test-secret-test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != teacher.ID || string(claims.Role) != "teacher" {
		t.Fatalf("claims = %+v", claims)
	}

	if _, _, err := auth.LoginTeacher(LoginRequest{Email: req.Email, Password: "wrong"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := auth.LoginTeacher(LoginRequest{Email: "missing@example.com", Password: "x"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestStudentRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	auth := newAuthService(f)

	req := RegisterRequest{
		Email:    "student@example.com",
		Password: "password123",
		FullName: "Alan",
	}

	student, err := auth.RegisterStudent(req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, logged, err := auth.LoginStudent(LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || logged.ID != student.ID {
		t.Fatalf("login result token=%q id=%s", token, logged.ID)
	}
}

func TestNewGuestIDIsUnique(t *testing.T) {
	f := newFixture(t)
	auth := newAuthService(f)

	a := auth.NewGuestID()
	b := auth.NewGuestID()
	if a == "" || a == b {
		t.Fatalf("guest ids not unique: %q %q", a, b)
	}
}
