package crm

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/crm-tools/internal/model"
)

// UpdateLeadByEmail locates the lead whose email_from equals email (first
// match, store order) and applies the classification to it: qualification
// notes into description, type flag from the verdict, and optionally an
// owning salesperson per the assignment policy.
//
// AssignCaller sets user_id to the authenticated operator's uid;
// AssignDomainMatch sets it from the domain-matched company's salesperson.
// The two identity sources are independent and must not be conflated.
func (s *Service) UpdateLeadByEmail(ctx context.Context, email string, cls *model.Classification, policy model.AssignPolicy) (int64, error) {
	if email == "" {
		return 0, &ValidationError{Field: "email", Reason: "email is required"}
	}
	if cls == nil {
		return 0, &ValidationError{Field: "classification", Reason: "classification is required"}
	}

	ids, err := s.searchIDs(ctx, tableLead,
		[]any{[]any{"email_from", "=", email}}, 1)
	if err != nil {
		return 0, &RemoteCallError{Op: tableLead + ".search", Err: err}
	}
	if len(ids) == 0 {
		return 0, &NotFoundError{Entity: "Lead with email", Key: email}
	}
	leadID := ids[0]

	values := map[string]any{
		"description": cls.RenderNotes(),
		"type":        string(cls.RecordType()),
	}

	switch policy {
	case model.AssignCaller:
		uid, err := s.store.UID(ctx)
		if err != nil {
			return 0, &ConnectionError{Err: err}
		}
		values["user_id"] = uid
	case model.AssignDomainMatch:
		if userID, ok := s.ResolveSalesperson(ctx, email); ok {
			values["user_id"] = userID
		}
	}

	// Single record, never bulk: additional matches are left untouched.
	acked, err := s.writeRecord(ctx, tableLead, []int64{leadID}, values)
	if err != nil {
		return 0, &RemoteCallError{Op: tableLead + ".write", Err: err}
	}
	if !acked {
		return 0, &RemoteCallError{Op: tableLead + ".write", Err: errWriteNotAcked}
	}

	zap.L().Info("lead updated from classification",
		zap.Int64("lead_id", leadID),
		zap.String("lead_type", string(cls.LeadType)),
		zap.Bool("is_qualified", cls.IsQualified),
		zap.String("assign_policy", string(policy)),
	)
	return leadID, nil
}

// QualifyLeadByEmail classifies inbound text and applies the result to the
// lead matching email in one call chain. This is the pipeline the tool
// surface exposes as a single operation.
func (s *Service) QualifyLeadByEmail(ctx context.Context, email, text string, policy model.AssignPolicy) (int64, *model.Classification, error) {
	cls, err := s.Classify(ctx, text)
	if err != nil {
		return 0, nil, err
	}
	leadID, err := s.UpdateLeadByEmail(ctx, email, cls, policy)
	if err != nil {
		return 0, cls, err
	}
	return leadID, cls, nil
}
