package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/crm-tools/internal/model"
	"github.com/sells-group/crm-tools/pkg/anthropic"
	"github.com/sells-group/crm-tools/pkg/serper"
)

const enrichSystemPrompt = `You are an AI lead enrichment assistant. Given search result snippets for professionals, extract structured lead data.

For each entry:
- Extract: full name, job title, company, location
- Infer: timezone, working hours (e.g., 9am-5pm local), work style (remote/hybrid/in-person), best time to email
- Create: a one-sentence personal note from interests/posts/snippet clues

Respond with ONLY a JSON array of objects with keys: name, title, location, timezone, working_hours, style, best_time, note.`

const defaultProspectLimit = 5

// enrichedProfile is one entry of the model's enrichment output.
type enrichedProfile struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Location     string `json:"location"`
	Timezone     string `json:"timezone"`
	WorkingHours string `json:"working_hours"`
	Style        string `json:"style"`
	BestTime     string `json:"best_time"`
	Note         string `json:"note"`
}

// Prospect searches for professionals matching role at company, enriches
// the results through the model, and creates one lead per enriched entry.
// Per-entry creation failures are recorded on the entry, not fatal to the
// run; a search or enrichment failure fails the whole run.
func (s *Service) Prospect(ctx context.Context, company, role string, maxLeads int) ([]model.ProspectLead, error) {
	if s.search == nil {
		return nil, &ValidationError{Reason: "prospecting is not configured (no search API key)"}
	}
	if strings.TrimSpace(company) == "" {
		return nil, &ValidationError{Field: "company", Reason: "company is required"}
	}
	if role == "" {
		role = "product manager"
	}
	if maxLeads <= 0 {
		maxLeads = defaultProspectLimit
	}

	query := fmt.Sprintf(`site:linkedin.com/in "%s" "%s"`, role, company)
	results, err := s.search.Search(ctx, query)
	if err != nil {
		return nil, &RemoteCallError{Op: "serper.search", Err: err}
	}
	if len(results) == 0 {
		return nil, &NotFoundError{Entity: "Profiles matching", Key: query}
	}
	if len(results) > maxLeads {
		results = results[:maxLeads]
	}

	profiles, err := s.enrichProfiles(ctx, results)
	if err != nil {
		return nil, err
	}

	links := make(map[string]string, len(results))
	for _, r := range results {
		links[strings.ToLower(r.Title)] = r.Link
	}

	leads := make([]model.ProspectLead, 0, len(profiles))
	for _, p := range profiles {
		if p.Name == "" {
			continue
		}
		lead := model.ProspectLead{
			Name:  p.Name,
			Title: p.Title,
		}
		for title, link := range links {
			if strings.Contains(title, strings.ToLower(p.Name)) {
				lead.Link = link
				break
			}
		}

		leadID, _, err := s.CreateLead(ctx, model.LeadInput{
			Name:        fmt.Sprintf("%s from %s", p.Name, company),
			CompanyName: company,
			ContactName: p.Name,
			Description: p.render(),
		})
		if err != nil {
			lead.Error = err.Error()
			zap.L().Warn("prospect: lead creation failed",
				zap.String("name", p.Name),
				zap.Error(err),
			)
		} else {
			lead.LeadID = leadID
			lead.Created = true
		}
		leads = append(leads, lead)
	}

	return leads, nil
}

// enrichProfiles asks the model to structure the raw search snippets.
func (s *Service) enrichProfiles(ctx context.Context, results []serper.SearchResult) ([]enrichedProfile, error) {
	snippets, err := json.Marshal(results)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("marshal search results: %v", err)}
	}

	temp := s.aiCfg.Temperature
	resp, err := s.createMessage(ctx, anthropic.MessageRequest{
		Model:       s.aiCfg.Model,
		MaxTokens:   s.aiCfg.MaxTokens,
		System:      enrichSystemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf("Search results:\n%s", snippets)},
		},
	})
	if err != nil {
		return nil, &RemoteCallError{Op: "anthropic.create_message", Err: err}
	}
	resp.Usage.LogCost(s.aiCfg.Model, "prospect_enrich")

	raw := responseText(resp)
	doc, ok := extractJSONDocument(raw)
	if !ok {
		return nil, &MalformedResponseError{Raw: raw, Reason: "no balanced JSON document in response"}
	}

	var profiles []enrichedProfile
	if err := json.Unmarshal([]byte(doc), &profiles); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Reason: fmt.Sprintf("expected a JSON array of profiles: %v", err)}
	}
	return profiles, nil
}

// render flattens an enriched profile into the lead description.
func (p enrichedProfile) render() string {
	return fmt.Sprintf(
		"Title: %s. Location: %s. Timezone: %s. Hours: %s. Style: %s. Best time: %s. Notes: %s",
		p.Title, p.Location, p.Timezone, p.WorkingHours, p.Style, p.BestTime, p.Note,
	)
}
