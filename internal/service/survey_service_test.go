package service

import (
	"class_connect_backend/internal/model"
	"reflect"
	"testing"
)

func snapshotFromQuestions(questions []model.SurveyQuestion) *model.SurveySnapshot {
	return &model.SurveySnapshot{
		SurveyID:  "survey-1",
		Title:     "Baseline",
		Questions: questions,
	}
}

func TestScoreDominantCategory(t *testing.T) {
	snapshot := snapshotFromQuestions([]model.SurveyQuestion{
		{
			ID: "q1",
			Options: []model.SurveyOption{
				{Label: "A", Scores: map[string]int{"visual": 2}},
				{Label: "B", Scores: map[string]int{"auditory": 2}},
			},
		},
		{
			ID: "q2",
			Options: []model.SurveyOption{
				{Label: "A", Scores: map[string]int{"visual": 1}},
				{Label: "B", Scores: map[string]int{"auditory": 3}},
			},
		},
	})

	result := Score(snapshot, map[string]string{"q1": "A", "q2": "A"})

	want := map[string]int{"visual": 3, "auditory": 0}
	if !reflect.DeepEqual(result.Totals, want) {
		t.Fatalf("totals = %v, want %v", result.Totals, want)
	}
	if result.Dominant != "visual" {
		t.Fatalf("dominant = %q, want visual", result.Dominant)
	}
}

func TestScoreTieKeepsEarliestCategory(t *testing.T) {
	// visual 先于 kinesthetic 出现，平局时保留先遇到的类别
	snapshot := snapshotFromQuestions([]model.SurveyQuestion{
		{
			ID: "q1",
			Options: []model.SurveyOption{
				{Label: "A", Scores: map[string]int{"visual": 2}},
				{Label: "B", Scores: map[string]int{"kinesthetic": 2}},
			},
		},
		{
			ID: "q2",
			Options: []model.SurveyOption{
				{Label: "A", Scores: map[string]int{"kinesthetic": 2}},
			},
		},
	})

	result := Score(snapshot, map[string]string{"q1": "A", "q2": "A"})

	if result.Totals["visual"] != 2 || result.Totals["kinesthetic"] != 2 {
		t.Fatalf("expected a 2-2 tie, got %v", result.Totals)
	}
	if result.Dominant != "visual" {
		t.Fatalf("dominant = %q, want visual (earliest encountered)", result.Dominant)
	}
}

func TestScoreAllZeroMeansNoDominant(t *testing.T) {
	snapshot := snapshotFromQuestions([]model.SurveyQuestion{
		{
			ID: "q1",
			Options: []model.SurveyOption{
				{Label: "A", Scores: map[string]int{"visual": 0, "auditory": 0}},
			},
		},
	})

	result := Score(snapshot, map[string]string{"q1": "A"})

	if result.Dominant != "" {
		t.Fatalf("dominant = %q, want empty", result.Dominant)
	}
	if result.DominantStyle() != nil {
		t.Fatalf("DominantStyle() = %v, want nil", *result.DominantStyle())
	}
	if len(result.Totals) != 2 {
		t.Fatalf("totals should list every category, got %v", result.Totals)
	}
}

func TestScoreIgnoresUnmatchedAnswers(t *testing.T) {
	snapshot := snapshotFromQuestions([]model.SurveyQuestion{
		{
			ID: "q1",
			Options: []model.SurveyOption{
				{Label: "A", Scores: map[string]int{"visual": 2}},
			},
		},
	})

	answers := map[string]string{
		"q1":      "Nonexistent", // 未知选项
		"ghost":   "A",           // 未知题目
		"another": "",
	}
	result := Score(snapshot, answers)

	if result.Totals["visual"] != 0 {
		t.Fatalf("unmatched answers must contribute nothing, got %v", result.Totals)
	}
	if result.Dominant != "" {
		t.Fatalf("dominant = %q, want empty", result.Dominant)
	}
}

func TestScoreNilSnapshot(t *testing.T) {
	result := Score(nil, map[string]string{"q1": "A"})
	if result.Dominant != "" || len(result.Totals) != 0 {
		t.Fatalf("nil snapshot should score to nothing, got %+v", result)
	}
}

func TestExtractCategoriesFirstEncounterOrder(t *testing.T) {
	questions := []model.SurveyQuestion{
		{
			ID: "q1",
			Options: []model.SurveyOption{
				{Label: "A", Scores: map[string]int{"visual": 1}},
				{Label: "B", Scores: map[string]int{"auditory": 1}},
			},
		},
		{
			ID: "q2",
			Options: []model.SurveyOption{
				{Label: "A", Scores: map[string]int{"auditory": 1, "kinesthetic": 1}},
			},
		},
	}

	got := ExtractCategories(questions)
	want := []string{"visual", "auditory", "kinesthetic"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
}

func TestSnapshotToPublicPayloadStripsScores(t *testing.T) {
	snapshot := snapshotFromQuestions([]model.SurveyQuestion{
		{
			ID:   "q1",
			Text: "How do you learn?",
			Options: []model.SurveyOption{
				{Label: "A", Scores: map[string]int{"visual": 2}},
				{Label: "B", Scores: map[string]int{"auditory": 2}},
			},
		},
	})

	payload := SnapshotToPublicPayload(snapshot)

	if payload.SurveyID != snapshot.SurveyID || payload.Title != snapshot.Title {
		t.Fatalf("payload header mismatch: %+v", payload)
	}
	if len(payload.Questions) != 1 || len(payload.Questions[0].Options) != 2 {
		t.Fatalf("payload structure mismatch: %+v", payload)
	}
	if payload.Questions[0].Options[0].Label != "A" {
		t.Fatalf("option label lost: %+v", payload.Questions[0].Options)
	}

	if SnapshotToPublicPayload(nil) != nil {
		t.Fatal("nil snapshot should produce nil payload")
	}
}

func TestBuildSnapshotIsFrozenCopy(t *testing.T) {
	template := &model.SurveyTemplate{
		Title: "v1",
		Questions: []model.SurveyQuestion{
			{ID: "q1", Text: "original"},
		},
	}
	template.ID = "tpl-1"

	snapshot := BuildSnapshot(template)

	template.Title = "v2"
	template.Questions[0] = model.SurveyQuestion{ID: "q1", Text: "edited"}

	if snapshot.Title != "v1" {
		t.Fatalf("snapshot title = %q, want v1", snapshot.Title)
	}
	if snapshot.Questions[0].Text != "original" {
		t.Fatalf("snapshot question = %q, want original", snapshot.Questions[0].Text)
	}
	if snapshot.SurveyID != "tpl-1" {
		t.Fatalf("snapshot survey id = %q", snapshot.SurveyID)
	}
}
