package service

import (
	"class_connect_backend/internal/config"
	"class_connect_backend/internal/model"
	"class_connect_backend/internal/repository"
	"class_connect_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	TeacherRepo *repository.TeacherRepository
	StudentRepo *repository.StudentRepository
	Cfg         *config.Config
}

func NewAuthService(teacherRepo *repository.TeacherRepository, studentRepo *repository.StudentRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		TeacherRepo: teacherRepo,
		StudentRepo: studentRepo,
		Cfg:         cfg,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *AuthService) RegisterTeacher(req RegisterRequest) (*model.Teacher, error) {
	_, err := s.TeacherRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	teacher := &model.Teacher{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
	}
	if err := s.TeacherRepo.Create(teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (s *AuthService) LoginTeacher(req LoginRequest) (string, *model.Teacher, error) {
	teacher, err := s.TeacherRepo.FindByEmail(req.Email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(teacher.Password), []byte(req.Password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(teacher.ID, model.TeacherRole, teacher.Email, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	return token, teacher, err
}

func (s *AuthService) RegisterStudent(req RegisterRequest) (*model.Student, error) {
	_, err := s.StudentRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
	}
	if err := s.StudentRepo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *AuthService) LoginStudent(req LoginRequest) (string, *model.Student, error) {
	student, err := s.StudentRepo.FindByEmail(req.Email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(student.ID, model.StudentRole, student.Email, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	return token, student, err
}

// NewGuestID 为未登录参与者生成一次性访客标识
func (s *AuthService) NewGuestID() string {
	return model.GenerateUUID()
}
