package model

// CourseRecommendation maps (learning_style, mood) to an activity within a
// course. A NULL learning_style row is a mood default, a NULL mood row is a
// style default, and the (NULL, NULL) row is the course-wide default.
// IsAuto rows are maintained by the service and may be overwritten; manual
// rows never are.
//
// swagger:model CourseRecommendation
type CourseRecommendation struct {
	UUIDBase
	CourseID      string  `gorm:"type:varchar(36);not null;uniqueIndex:uq_course_style_mood" json:"courseId"`
	LearningStyle *string `gorm:"size:100;uniqueIndex:uq_course_style_mood" json:"learningStyle"`
	Mood          *string `gorm:"size:100;uniqueIndex:uq_course_style_mood" json:"mood"`
	ActivityID    string  `gorm:"type:varchar(36);not null" json:"activityId"`
	IsAuto        bool    `gorm:"not null;default:false" json:"isAuto"`
}

func (CourseRecommendation) TableName() string {
	return "course_recommendations"
}
