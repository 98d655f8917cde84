package model

// swagger:model Course
type Course struct {
	UUIDBase
	TeacherID               string   `gorm:"type:varchar(36);not null;uniqueIndex:uq_course_title_per_teacher" json:"teacherId"`
	Title                   string   `gorm:"size:255;not null;uniqueIndex:uq_course_title_per_teacher" json:"title"`
	BaselineSurveyID        *string  `gorm:"type:varchar(36)" json:"baselineSurveyId"`
	LearningStyleCategories []string `gorm:"serializer:json;type:json" json:"learningStyleCategories"`
	MoodLabels              []string `gorm:"serializer:json;type:json" json:"moodLabels"`
	RequiresRebaseline      bool     `gorm:"not null;default:false" json:"requiresRebaseline"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) HasMood(mood string) bool {
	for _, label := range c.MoodLabels {
		if label == mood {
			return true
		}
	}
	return false
}
