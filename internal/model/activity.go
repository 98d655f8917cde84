package model

import "encoding/json"

// swagger:model Activity
type Activity struct {
	UUIDBase
	CourseID string          `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Name     string          `gorm:"size:255;not null" json:"name"`
	Summary  string          `gorm:"size:1024" json:"summary"`
	Type     string          `gorm:"size:100;not null" json:"type"`
	Tags     []string        `gorm:"serializer:json;type:json" json:"tags"`
	Content  json.RawMessage `gorm:"type:json" json:"content,omitempty"`
}

func (Activity) TableName() string {
	return "activities"
}
