package service

import (
	"bytes"
	"class_connect_backend/internal/config"
	"class_connect_backend/internal/model"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AIService 调用 OpenAI 兼容接口，为课程批量生成 (学习风格, 心情)→活动 映射建议
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type ProposedMapping struct {
	LearningStyle string `json:"learning_style"`
	Mood          string `json:"mood"`
	ActivityID    string `json:"activity_id"`
}

type proposedMappings struct {
	Mappings []ProposedMapping `json:"mappings"`
}

func buildMappingPrompt(course *model.Course, activities []model.Activity) string {
	type activityPayload struct {
		ActivityID string          `json:"activity_id"`
		Name       string          `json:"name"`
		Summary    string          `json:"summary"`
		Type       string          `json:"type"`
		Tags       []string        `json:"tags"`
		Content    json.RawMessage `json:"content"`
	}

	payload := make([]activityPayload, 0, len(activities))
	for _, a := range activities {
		payload = append(payload, activityPayload{
			ActivityID: a.ID,
			Name:       a.Name,
			Summary:    a.Summary,
			Type:       a.Type,
			Tags:       a.Tags,
			Content:    a.Content,
		})
	}

	styles, _ := json.Marshal(course.LearningStyleCategories)
	moods, _ := json.Marshal(course.MoodLabels)
	activitiesJSON, _ := json.MarshalIndent(payload, "", "  ")

	return fmt.Sprintf(
		"You are a classroom strategy assistant.\n\n"+
			"Course title: %s\n"+
			"Known learning styles: %s\n"+
			"Known moods: %s\n\n"+
			"Available activities (JSON array):\n%s\n\n"+
			"Task:\n"+
			"For every combination of learning style and mood, choose the most "+
			"suitable activity based on its name, summary, type, tags and content. "+
			"If no activity clearly fits, choose the one tagged %q.\n\n"+
			"Return only a valid JSON object of the form "+
			`{"mappings":[{"learning_style":"...","mood":"...","activity_id":"..."}]}`+
			" with one entry per combination. No explanations, no text outside the JSON.",
		course.Title, styles, moods, activitiesJSON, SystemDefaultActivityTag,
	)
}

// ProposeMappings 请求模型为课程的全部组合给出活动建议
func (s *AIService) ProposeMappings(course *model.Course, activities []model.Activity) ([]ProposedMapping, error) {
	reqBody := map[string]interface{}{
		"model": s.config.Model,
		"messages": []AIChatMessage{
			{Role: "user", Content: buildMappingPrompt(course, activities)},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, err
	}
	if completion.Error != nil {
		return nil, fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("AI API returned no choices")
	}

	content := stripCodeFence(completion.Choices[0].Message.Content)

	var parsed proposedMappings
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("AI API returned invalid mapping JSON: %w", err)
	}
	return parsed.Mappings, nil
}

// stripCodeFence 容忍模型把 JSON 包在 ``` 代码块里返回
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
