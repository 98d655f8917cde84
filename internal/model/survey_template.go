package model

// SurveyOption 的 scores 映射决定每个学习风格类别的得分
type SurveyOption struct {
	Label  string         `json:"label"`
	Scores map[string]int `json:"scores"`
}

type SurveyQuestion struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Options []SurveyOption `json:"options"`
}

// swagger:model SurveyTemplate
type SurveyTemplate struct {
	UUIDBase
	TeacherID string           `gorm:"index;type:varchar(36);not null" json:"teacherId"`
	Title     string           `gorm:"size:255;not null" json:"title"`
	Questions []SurveyQuestion `gorm:"serializer:json;type:json" json:"questions"`
}

func (SurveyTemplate) TableName() string {
	return "surveys"
}

// SurveySnapshot is the immutable copy of a survey frozen onto a session
// at creation time. Later edits to the live template never reach it.
type SurveySnapshot struct {
	SurveyID  string           `json:"survey_id"`
	Title     string           `json:"title"`
	Questions []SurveyQuestion `json:"questions"`
}
