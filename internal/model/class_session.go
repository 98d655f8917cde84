package model

import "time"

// swagger:model ClassSession
type ClassSession struct {
	UUIDBase
	CourseID       string          `gorm:"index;type:varchar(36);not null" json:"courseId"`
	JoinToken      string          `gorm:"size:12;uniqueIndex;not null" json:"joinToken"`
	RequireSurvey  bool            `gorm:"not null;default:false" json:"requireSurvey"`
	SurveySnapshot *SurveySnapshot `gorm:"serializer:json;type:json" json:"surveySnapshot,omitempty"`
	StartedAt      time.Time       `json:"startedAt"`
	ClosedAt       *time.Time      `json:"closedAt"`
}

func (ClassSession) TableName() string {
	return "sessions"
}

// IsOpen reports whether the session still accepts submissions.
func (s *ClassSession) IsOpen() bool {
	return s.ClosedAt == nil
}
