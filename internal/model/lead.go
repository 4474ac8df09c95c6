package model

// LeadInput carries caller-supplied fields for lead creation. Only Name is
// required; every other field is omitted from the remote payload when empty,
// because Odoo treats an absent field differently from an explicit empty one.
type LeadInput struct {
	Name        string   `json:"name"`
	CompanyName string   `json:"company_name,omitempty"`
	ContactName string   `json:"contact_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// LeadType is the remote record's type flag.
type LeadType string

const (
	LeadTypeLead        LeadType = "lead"
	LeadTypeOpportunity LeadType = "opportunity"
)

// Task is a project task projection returned by the task fetcher.
type Task struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Assignees   []int64 `json:"assignees,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Description string `json:"description,omitempty"`
}

// AssignPolicy selects how a lead's owning salesperson is set. The two
// assignment sources are deliberately distinct: AssignCaller uses the
// authenticated operator's uid, AssignDomainMatch uses the salesperson of
// the company whose email domain matches the lead's.
type AssignPolicy string

const (
	AssignNone        AssignPolicy = "none"
	AssignCaller      AssignPolicy = "caller"
	AssignDomainMatch AssignPolicy = "domain_match"
)
