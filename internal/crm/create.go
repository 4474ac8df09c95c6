package crm

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/crm-tools/internal/model"
)

// maxTagConcurrency bounds the parallel tag find-or-create fan-out.
const maxTagConcurrency = 4

// CreateLead creates a new CRM lead from the supplied fields. Absent
// optional fields are omitted from the payload entirely — Odoo treats
// field-absence differently from explicit empties. When the email's
// domain matches a company with a default salesperson, the lead is
// auto-assigned to them and bumped to high priority; the returned bool
// reports whether that happened.
func (s *Service) CreateLead(ctx context.Context, input model.LeadInput) (int64, bool, error) {
	if strings.TrimSpace(input.Name) == "" {
		return 0, false, &ValidationError{Field: "name", Reason: "lead name is required"}
	}

	values := map[string]any{
		"name": input.Name,
	}
	setIfPresent(values, "partner_name", input.CompanyName)
	setIfPresent(values, "contact_name", input.ContactName)
	setIfPresent(values, "email_from", input.Email)
	setIfPresent(values, "phone", input.Phone)
	setIfPresent(values, "description", input.Description)

	if len(input.Tags) > 0 {
		tagIDs, err := s.resolveTags(ctx, input.Tags)
		if err != nil {
			return 0, false, err
		}
		values["tag_ids"] = replaceAllTags(tagIDs)
	}

	assigned := false
	if strings.Contains(input.Email, "@") {
		if userID, ok := s.ResolveSalesperson(ctx, input.Email); ok {
			values["user_id"] = userID
			values["priority"] = priorityHigh
			assigned = true
		}
	}

	leadID, err := s.createRecord(ctx, tableLead, values)
	if err != nil {
		return 0, false, &RemoteCallError{Op: tableLead + ".create", Err: err}
	}

	zap.L().Info("lead created",
		zap.Int64("lead_id", leadID),
		zap.String("name", input.Name),
		zap.Bool("auto_assigned", assigned),
	)
	return leadID, assigned, nil
}

// resolveTags maps tag names to tag record ids, creating records for names
// that do not exist yet. Resolution preserves input order.
func (s *Service) resolveTags(ctx context.Context, names []string) ([]int64, error) {
	ids := make([]int64, len(names))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxTagConcurrency)

	for i, name := range names {
		g.Go(func() error {
			id, err := s.findOrCreateTag(gCtx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			ids[i] = id
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Service) findOrCreateTag(ctx context.Context, name string) (int64, error) {
	existing, err := s.searchIDs(ctx, tableTag,
		[]any{[]any{"name", "=", name}}, 1)
	if err != nil {
		return 0, &RemoteCallError{Op: tableTag + ".search", Err: err}
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	id, err := s.createRecord(ctx, tableTag, map[string]any{"name": name})
	if err != nil {
		return 0, &RemoteCallError{Op: tableTag + ".create", Err: err}
	}
	zap.L().Debug("created tag", zap.String("name", name), zap.Int64("tag_id", id))
	return id, nil
}

func setIfPresent(values map[string]any, key, value string) {
	if value != "" {
		values[key] = value
	}
}
