package model

// CreateResult is the outcome of a lead creation.
type CreateResult struct {
	Success  bool   `json:"success"`
	LeadID   int64  `json:"lead_id,omitempty"`
	Assigned bool   `json:"assigned"`
	Message  string `json:"message,omitempty"`
}

// UpdateResult is the outcome of a classification-driven lead update.
type UpdateResult struct {
	Success bool   `json:"success"`
	LeadID  int64  `json:"lead_id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TaskListResult is the outcome of a project task fetch.
type TaskListResult struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Tasks   []Task `json:"tasks,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ClassifyResult surfaces a classification to the tool caller.
type ClassifyResult struct {
	Success        bool            `json:"success"`
	Classification *Classification `json:"classification,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// ProspectLead is one created lead from a prospecting run.
type ProspectLead struct {
	LeadID  int64  `json:"lead_id,omitempty"`
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Link    string `json:"link,omitempty"`
	Created bool   `json:"created"`
	Error   string `json:"error,omitempty"`
}

// ProspectResult is the outcome of a prospecting run.
type ProspectResult struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Leads   []ProspectLead `json:"leads,omitempty"`
	Error   string         `json:"error,omitempty"`
}
