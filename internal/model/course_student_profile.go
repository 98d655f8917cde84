package model

// CourseStudentProfile is one captured learning-style profile for a
// participant within a course. History is append-only: a new baseline
// submission flips the previous current row and inserts a fresh one, so at
// most one row per (course, participant) carries IsCurrent=true.
//
// CurrentMarker backs that invariant at the schema level: it is set only on
// the current row and NULL on history, so the composite unique indexes
// uq_course_student_current / uq_course_guest_current only ever see one
// non-NULL entry per participant. MySQL 没有部分索引，用可空标记列代替。
//
// swagger:model CourseStudentProfile
type CourseStudentProfile struct {
	UUIDBase
	CourseID           string         `gorm:"index;type:varchar(36);not null;uniqueIndex:uq_course_student_current,priority:1;uniqueIndex:uq_course_guest_current,priority:1" json:"courseId"`
	StudentID          *string        `gorm:"index;type:varchar(36);uniqueIndex:uq_course_student_current,priority:2" json:"studentId"`
	GuestID            *string        `gorm:"index;type:varchar(36);uniqueIndex:uq_course_guest_current,priority:2" json:"guestId"`
	LatestSubmissionID *string        `gorm:"type:varchar(36)" json:"latestSubmissionId"`
	LearningStyle      *string        `gorm:"size:100" json:"learningStyle"`
	Scores             map[string]int `gorm:"serializer:json;type:json" json:"scores"`
	IsCurrent          bool           `gorm:"not null;default:true" json:"isCurrent"`
	CurrentMarker      *bool          `gorm:"uniqueIndex:uq_course_student_current,priority:3;uniqueIndex:uq_course_guest_current,priority:3" json:"-"`
}

// MarkCurrent 置为当前画像。IsCurrent 与唯一性标记必须成对写入。
func (p *CourseStudentProfile) MarkCurrent() {
	marker := true
	p.IsCurrent = true
	p.CurrentMarker = &marker
}

func (CourseStudentProfile) TableName() string {
	return "course_student_profiles"
}
