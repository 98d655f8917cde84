package model

type UserRole string

const (
	TeacherRole UserRole = "teacher"
	StudentRole UserRole = "student"
	GuestRole   UserRole = "guest"
)

// swagger:model Teacher
type Teacher struct {
	UUIDBase
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	FullName string `gorm:"size:255;not null" json:"fullName"`
}

func (Teacher) TableName() string {
	return "teachers"
}

// swagger:model Student
type Student struct {
	UUIDBase
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	FullName string `gorm:"size:255;not null" json:"fullName"`
}

func (Student) TableName() string {
	return "students"
}
