package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/crm-tools/internal/model"
	"github.com/sells-group/crm-tools/pkg/anthropic"
)

const classifySystemPrompt = `You are a CRM lead qualification assistant. Analyze inbound lead text using the BANT framework (Budget, Authority, Need, Timeframe).

Respond with ONLY a valid JSON object in exactly this shape:
{
  "lead_type": "<one of: Qualified Buyer, Job Applicant, Investor, Researcher, Other>",
  "bant_analysis": {
    "Budget": "<what the text reveals about budget, or 'unknown'>",
    "Authority": "<what the text reveals about decision authority, or 'unknown'>",
    "Need": "<what the text reveals about their need, or 'unknown'>",
    "Timeframe": "<what the text reveals about timing, or 'unknown'>"
  },
  "is_qualified": <true if this is a qualified buying opportunity, else false>
}`

const classifyUserPrompt = `Inbound lead text:

%s`

// Classify sends inbound free text to the model and recovers a validated
// Classification from its output. The raw response may be wrapped in
// markdown fences or prose; a balanced-JSON scan tolerates both. Output
// that parses but does not match the expected schema is rejected — the
// pipeline never passes a half-filled classification downstream.
func (s *Service) Classify(ctx context.Context, text string) (*model.Classification, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Reason: "inbound text is empty"}
	}

	temp := s.aiCfg.Temperature
	resp, err := s.createMessage(ctx, anthropic.MessageRequest{
		Model:       s.aiCfg.Model,
		MaxTokens:   s.aiCfg.MaxTokens,
		System:      classifySystemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(classifyUserPrompt, text)},
		},
	})
	if err != nil {
		return nil, &RemoteCallError{Op: "anthropic.create_message", Err: err}
	}
	resp.Usage.LogCost(s.aiCfg.Model, "classify")

	raw := responseText(resp)
	if strings.TrimSpace(raw) == "" {
		return nil, &MalformedResponseError{Raw: raw, Reason: "response contained no text content"}
	}

	cls, err := parseClassification(raw)
	if err != nil {
		zap.L().Warn("classify: rejected model output",
			zap.String("reason", err.Error()),
			zap.Int("raw_len", len(raw)),
		)
		return nil, err
	}

	zap.L().Debug("classify: parsed classification",
		zap.String("lead_type", string(cls.LeadType)),
		zap.Bool("is_qualified", cls.IsQualified),
	)
	return cls, nil
}

// parseClassification extracts and validates the classification document.
func parseClassification(raw string) (*model.Classification, error) {
	doc, ok := extractJSONDocument(raw)
	if !ok {
		return nil, &MalformedResponseError{Raw: raw, Reason: "no balanced JSON document in response"}
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(doc), &fields); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	leadType, ok := fields["lead_type"].(string)
	if !ok {
		return nil, &ValidationError{Field: "lead_type", Reason: "missing or not a string"}
	}
	category, ok := matchCategory(leadType)
	if !ok {
		return nil, &ValidationError{Field: "lead_type", Reason: fmt.Sprintf("%q is not a known lead type", leadType)}
	}

	bantRaw, ok := fields["bant_analysis"].(map[string]any)
	if !ok {
		return nil, &ValidationError{Field: "bant_analysis", Reason: "missing or not an object"}
	}

	qualified, ok := fields["is_qualified"].(bool)
	if !ok {
		return nil, &ValidationError{Field: "is_qualified", Reason: "missing or not a boolean"}
	}

	return &model.Classification{
		LeadType: category,
		BANT: model.BANT{
			Budget:    bantField(bantRaw, "Budget"),
			Authority: bantField(bantRaw, "Authority"),
			Need:      bantField(bantRaw, "Need"),
			Timeframe: bantField(bantRaw, "Timeframe"),
		},
		IsQualified: qualified,
		Raw:         fields,
	}, nil
}

// matchCategory resolves a model-supplied lead type against the fixed
// enumeration, tolerating case differences.
func matchCategory(s string) (model.LeadCategory, bool) {
	for _, c := range model.AllLeadCategories() {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, true
		}
	}
	return "", false
}

// bantField coerces a BANT entry to text; models occasionally emit
// booleans or numbers for these free-form fields.
func bantField(bant map[string]any, key string) string {
	v, ok := bant[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// responseText joins the text blocks of a model response.
func responseText(resp *anthropic.MessageResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "" || b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String()
}
