package model

// swagger:model Submission
type Submission struct {
	UUIDBase
	SessionID        string            `gorm:"type:varchar(36);not null;uniqueIndex:uq_session_student;uniqueIndex:uq_session_guest" json:"sessionId"`
	CourseID         string            `gorm:"index;type:varchar(36);not null" json:"courseId"`
	StudentID        *string           `gorm:"type:varchar(36);uniqueIndex:uq_session_student" json:"studentId"`
	GuestID          *string           `gorm:"type:varchar(36);uniqueIndex:uq_session_guest" json:"guestId"`
	GuestName        string            `gorm:"size:255" json:"guestName,omitempty"`
	Mood             string            `gorm:"size:50;not null" json:"mood"`
	Answers          map[string]string `gorm:"serializer:json;type:json" json:"answers,omitempty"`
	TotalScores      map[string]int    `gorm:"serializer:json;type:json" json:"totalScores,omitempty"`
	IsBaselineUpdate bool              `gorm:"not null;default:false" json:"isBaselineUpdate"`
	Status           string            `gorm:"size:20;default:'completed'" json:"status"`
}

func (Submission) TableName() string {
	return "submissions"
}

// ParticipantKey 返回参与者标识（学生ID或访客ID，二者必居其一）
func (s *Submission) ParticipantKey() string {
	if s.StudentID != nil {
		return *s.StudentID
	}
	if s.GuestID != nil {
		return *s.GuestID
	}
	return ""
}
