package crm

// Remote table names and field conventions for the Odoo instance.
const (
	tableLead    = "crm.lead"
	tablePartner = "res.partner"
	tableProject = "project.project"
	tableTask    = "project.task"
	tableTag     = "crm.tag"
)

// priorityHigh is the ordinal Odoo uses for "high" lead priority.
const priorityHigh = "2"

// replaceAllTags builds the Odoo relation command that replaces the full
// tag membership of a record with the given ids: (6, 0, ids).
func replaceAllTags(ids []int64) []any {
	return []any{[]any{int64(6), int64(0), ids}}
}
