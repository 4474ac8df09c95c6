package crm

import (
	"context"

	"github.com/sells-group/crm-tools/internal/model"
	"github.com/sells-group/crm-tools/pkg/odoo"
)

// taskFields is the fixed projection read for each task.
var taskFields = []string{"name", "user_ids", "date_deadline", "priority", "description"}

// GetProjectTasks fetches up to maxTasks tasks of the project matching
// projectName exactly. There is no pagination beyond the limit.
func (s *Service) GetProjectTasks(ctx context.Context, projectName string, maxTasks int) ([]model.Task, error) {
	if projectName == "" {
		return nil, &ValidationError{Field: "project_name", Reason: "project name is required"}
	}
	if maxTasks <= 0 {
		maxTasks = 10
	}

	projects, err := s.searchIDs(ctx, tableProject,
		[]any{[]any{"name", "=", projectName}}, 1)
	if err != nil {
		return nil, &RemoteCallError{Op: tableProject + ".search", Err: err}
	}
	if len(projects) == 0 {
		return nil, &NotFoundError{Entity: "Project", Key: projectName}
	}

	records, err := s.searchRead(ctx, tableTask,
		[]any{[]any{"project_id", "=", projects[0]}},
		taskFields, maxTasks)
	if err != nil {
		return nil, &RemoteCallError{Op: tableTask + ".search_read", Err: err}
	}

	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		id, _ := odoo.FieldInt64(rec, "id")
		tasks = append(tasks, model.Task{
			ID:          id,
			Name:        odoo.FieldString(rec, "name"),
			Assignees:   odoo.FieldIDList(rec, "user_ids"),
			Deadline:    odoo.FieldString(rec, "date_deadline"),
			Priority:    odoo.FieldString(rec, "priority"),
			Description: odoo.FieldString(rec, "description"),
		})
	}
	return tasks, nil
}
