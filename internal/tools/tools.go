package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sells-group/crm-tools/internal/crm"
	"github.com/sells-group/crm-tools/internal/model"
)

// Input types double as the JSON argument contract for both surfaces.

// CreateLeadInput is the argument object for create_lead.
type CreateLeadInput struct {
	Name        string   `json:"name"`
	CompanyName string   `json:"company_name,omitempty"`
	ContactName string   `json:"contact_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// QualifyLeadInput is the argument object for qualify_lead.
type QualifyLeadInput struct {
	Email      string `json:"email"`
	LeadText   string `json:"lead_text"`
	AssignToMe bool   `json:"assign_to_me,omitempty"`
}

// ClassifyLeadInput is the argument object for classify_lead.
type ClassifyLeadInput struct {
	LeadText string `json:"lead_text"`
}

// GetTasksInput is the argument object for get_project_tasks.
type GetTasksInput struct {
	ProjectName string `json:"project_name"`
	MaxTasks    int    `json:"max_tasks,omitempty"`
}

// ProspectInput is the argument object for prospect_leads.
type ProspectInput struct {
	Company  string `json:"company"`
	Role     string `json:"role,omitempty"`
	MaxLeads int    `json:"max_leads,omitempty"`
}

func builtinTools(svc *crm.Service) []*Tool {
	return []*Tool{
		{
			Name:        "create_lead",
			Description: "Create a new lead in the CRM. Only the lead name is required; tags are created on demand and a matching company email domain auto-assigns a salesperson.",
			InputSchema: objectSchema(map[string]any{
				"name":         stringProp("Lead title"),
				"company_name": stringProp("Company name"),
				"contact_name": stringProp("Contact person"),
				"email":        stringProp("Contact email address"),
				"phone":        stringProp("Phone number"),
				"description":  stringProp("Free-form notes"),
				"tags": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Tag names to attach, created if missing",
				},
			}, []string{"name"}),
			Run: func(ctx context.Context, args json.RawMessage) Result {
				var in CreateLeadInput
				if err := decodeArgs(args, &in); err != nil {
					return failCreate(fmt.Sprintf("invalid arguments: %v", err))
				}
				leadID, assigned, err := svc.CreateLead(ctx, model.LeadInput(in))
				if err != nil {
					return failCreate(err.Error())
				}
				msg := "Lead created."
				if assigned {
					msg = "Lead created and auto-assigned to the company's salesperson."
				}
				return Result{
					Payload: model.CreateResult{Success: true, LeadID: leadID, Assigned: assigned, Message: msg},
					Success: true,
					Message: msg,
				}
			},
		},
		{
			Name:        "qualify_lead",
			Description: "Classify inbound lead text with the BANT framework and update the matching CRM lead: qualification notes, lead/opportunity type, and optionally assignment to the calling operator.",
			InputSchema: objectSchema(map[string]any{
				"email":        stringProp("Email address identifying the lead record"),
				"lead_text":    stringProp("The inbound free text to classify"),
				"assign_to_me": map[string]any{"type": "boolean", "description": "Assign the lead to the authenticated operator"},
			}, []string{"email", "lead_text"}),
			Run: func(ctx context.Context, args json.RawMessage) Result {
				var in QualifyLeadInput
				if err := decodeArgs(args, &in); err != nil {
					return failUpdate(fmt.Sprintf("invalid arguments: %v", err))
				}
				policy := model.AssignNone
				if in.AssignToMe {
					policy = model.AssignCaller
				}
				leadID, cls, err := svc.QualifyLeadByEmail(ctx, in.Email, in.LeadText, policy)
				if err != nil {
					return failUpdate(err.Error())
				}
				msg := fmt.Sprintf("Lead %d updated: %s.", leadID, cls.LeadType)
				return Result{
					Payload: model.UpdateResult{Success: true, LeadID: leadID, Message: msg},
					Success: true,
					Message: msg,
				}
			},
		},
		{
			Name:        "classify_lead",
			Description: "Classify inbound lead text with the BANT framework without touching any CRM record.",
			InputSchema: objectSchema(map[string]any{
				"lead_text": stringProp("The inbound free text to classify"),
			}, []string{"lead_text"}),
			Run: func(ctx context.Context, args json.RawMessage) Result {
				var in ClassifyLeadInput
				if err := decodeArgs(args, &in); err != nil {
					return Result{Payload: model.ClassifyResult{Success: false, Error: fmt.Sprintf("invalid arguments: %v", err)}}
				}
				cls, err := svc.Classify(ctx, in.LeadText)
				if err != nil {
					return Result{Payload: model.ClassifyResult{Success: false, Error: err.Error()}, Message: err.Error()}
				}
				msg := fmt.Sprintf("Classified as %s.", cls.LeadType)
				return Result{
					Payload: model.ClassifyResult{Success: true, Classification: cls},
					Success: true,
					Message: msg,
				}
			},
		},
		{
			Name:        "get_project_tasks",
			Description: "Fetch up to max_tasks tasks of the named project.",
			InputSchema: objectSchema(map[string]any{
				"project_name": stringProp("Exact project name"),
				"max_tasks":    map[string]any{"type": "integer", "description": "Maximum number of tasks to return (default 10)"},
			}, []string{"project_name"}),
			Run: func(ctx context.Context, args json.RawMessage) Result {
				var in GetTasksInput
				if err := decodeArgs(args, &in); err != nil {
					return failTasks(fmt.Sprintf("invalid arguments: %v", err))
				}
				tasks, err := svc.GetProjectTasks(ctx, in.ProjectName, in.MaxTasks)
				if err != nil {
					return failTasks(err.Error())
				}
				msg := fmt.Sprintf("Retrieved %d tasks.", len(tasks))
				return Result{
					Payload: model.TaskListResult{Success: true, Count: len(tasks), Tasks: tasks},
					Success: true,
					Message: msg,
				}
			},
		},
		{
			Name:        "prospect_leads",
			Description: "Search for professionals matching a role at a company, enrich the results, and create a CRM lead for each.",
			InputSchema: objectSchema(map[string]any{
				"company":   stringProp("Company to prospect"),
				"role":      stringProp("Role title (default: product manager)"),
				"max_leads": map[string]any{"type": "integer", "description": "Maximum leads to create (default 5)"},
			}, []string{"company"}),
			Run: func(ctx context.Context, args json.RawMessage) Result {
				var in ProspectInput
				if err := decodeArgs(args, &in); err != nil {
					return failProspect(fmt.Sprintf("invalid arguments: %v", err))
				}
				leads, err := svc.Prospect(ctx, in.Company, in.Role, in.MaxLeads)
				if err != nil {
					return failProspect(err.Error())
				}
				created := 0
				for _, l := range leads {
					if l.Created {
						created++
					}
				}
				msg := fmt.Sprintf("Created %d of %d prospected leads.", created, len(leads))
				return Result{
					Payload: model.ProspectResult{Success: true, Count: created, Leads: leads},
					Success: true,
					Message: msg,
				}
			},
		},
	}
}

func failCreate(msg string) Result {
	return Result{Payload: model.CreateResult{Success: false, Message: msg}, Message: msg}
}

func failUpdate(msg string) Result {
	return Result{Payload: model.UpdateResult{Success: false, Error: msg}, Message: msg}
}

func failTasks(msg string) Result {
	return Result{Payload: model.TaskListResult{Success: false, Error: msg}, Message: msg}
}

func failProspect(msg string) Result {
	return Result{Payload: model.ProspectResult{Success: false, Error: msg}, Message: msg}
}

func objectSchema(props map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}
