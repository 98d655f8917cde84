package service

import (
	"class_connect_backend/internal/model"
	"class_connect_backend/internal/repository"
	"class_connect_backend/internal/util"
	"sort"

	"gorm.io/gorm"
)

type SurveyService struct {
	Repo *repository.SurveyRepository
}

func NewSurveyService(repo *repository.SurveyRepository) *SurveyService {
	return &SurveyService{Repo: repo}
}

type SurveyTemplateRequest struct {
	Title     string                 `json:"title" binding:"required"`
	Questions []model.SurveyQuestion `json:"questions" binding:"required"`
}

func (s *SurveyService) CreateTemplate(teacherID string, req SurveyTemplateRequest) (*model.SurveyTemplate, error) {
	t := &model.SurveyTemplate{
		TeacherID: teacherID,
		Title:     req.Title,
		Questions: req.Questions,
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *SurveyService) GetTemplate(id string) (*model.SurveyTemplate, error) {
	t, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSurveyNotFound
	}
	return t, err
}

func (s *SurveyService) ListTemplates(teacherID string) ([]model.SurveyTemplate, error) {
	return s.Repo.ListByTeacher(teacherID)
}

func (s *SurveyService) UpdateTemplate(teacherID, id string, req SurveyTemplateRequest) (*model.SurveyTemplate, error) {
	t, err := s.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	if t.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	t.Title = req.Title
	t.Questions = req.Questions
	if err := s.Repo.Save(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *SurveyService) DeleteTemplate(teacherID, id string) error {
	t, err := s.GetTemplate(id)
	if err != nil {
		return err
	}
	if t.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(id)
}

// BuildSnapshot 在会话创建时冻结问卷副本，此后模板编辑不影响已建会话
func BuildSnapshot(t *model.SurveyTemplate) *model.SurveySnapshot {
	questions := make([]model.SurveyQuestion, len(t.Questions))
	copy(questions, t.Questions)
	return &model.SurveySnapshot{
		SurveyID:  t.ID,
		Title:     t.Title,
		Questions: questions,
	}
}

// ExtractCategories collects the union of category keys across every
// option's score map, in first-encounter order of the snapshot traversal.
// Keys inside a single option are taken alphabetically so the order stays
// stable between runs. Nothing is hard-coded: a template with new
// categories just works.
func ExtractCategories(questions []model.SurveyQuestion) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, q := range questions {
		for _, opt := range q.Options {
			keys := make([]string, 0, len(opt.Scores))
			for category := range opt.Scores {
				keys = append(keys, category)
			}
			sort.Strings(keys)
			for _, category := range keys {
				if !seen[category] {
					seen[category] = true
					categories = append(categories, category)
				}
			}
		}
	}
	return categories
}

// ScoreResult 每个类别的总分与优势类别；无优势类别时 Dominant 为空串
type ScoreResult struct {
	Totals   map[string]int `json:"totals"`
	Dominant string         `json:"dominant"`
}

// DominantStyle returns the dominant category as a nullable value.
func (r ScoreResult) DominantStyle() *string {
	if r.Dominant == "" {
		return nil
	}
	d := r.Dominant
	return &d
}

// Score sums each answered option's score map into per-category totals.
// Unmatched or missing answers contribute nothing; a malformed answer never
// aborts the rest of the survey. The dominant category must win strictly:
// ties keep the earliest-encountered category, and all-zero totals mean no
// dominant category at all.
func Score(snapshot *model.SurveySnapshot, answers map[string]string) ScoreResult {
	result := ScoreResult{Totals: map[string]int{}}
	if snapshot == nil {
		return result
	}

	categories := ExtractCategories(snapshot.Questions)
	for _, category := range categories {
		result.Totals[category] = 0
	}

	for _, question := range snapshot.Questions {
		selected, ok := answers[question.ID]
		if !ok || selected == "" {
			continue
		}
		for _, option := range question.Options {
			if option.Label != selected {
				continue
			}
			for category, score := range option.Scores {
				result.Totals[category] += score
			}
			break
		}
	}

	best := ""
	bestScore := 0
	for _, category := range categories {
		if result.Totals[category] > bestScore {
			best = category
			bestScore = result.Totals[category]
		}
	}
	result.Dominant = best

	return result
}

// 学生端问卷载荷（不含计分映射）
type PublicOption struct {
	Label string `json:"label"`
}

type PublicQuestion struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Options []PublicOption `json:"options"`
}

type PublicSnapshot struct {
	SurveyID  string           `json:"surveyId"`
	Title     string           `json:"title"`
	Questions []PublicQuestion `json:"questions"`
}

// SnapshotToPublicPayload strips score maps before the snapshot is handed
// to participants.
func SnapshotToPublicPayload(snapshot *model.SurveySnapshot) *PublicSnapshot {
	if snapshot == nil {
		return nil
	}

	payload := &PublicSnapshot{
		SurveyID:  snapshot.SurveyID,
		Title:     snapshot.Title,
		Questions: make([]PublicQuestion, 0, len(snapshot.Questions)),
	}
	for _, q := range snapshot.Questions {
		pq := PublicQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: make([]PublicOption, 0, len(q.Options)),
		}
		for _, opt := range q.Options {
			pq.Options = append(pq.Options, PublicOption{Label: opt.Label})
		}
		payload.Questions = append(payload.Questions, pq)
	}
	return payload
}
