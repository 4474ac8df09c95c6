package crm

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/crm-tools/pkg/odoo"
)

// ResolveSalesperson maps an email's domain to the default salesperson of
// a matching company record. The lookup is advisory: any store failure is
// logged and reported as no-match, never surfaced to the caller.
func (s *Service) ResolveSalesperson(ctx context.Context, email string) (int64, bool) {
	domain, ok := emailDomain(email)
	if !ok {
		return 0, false
	}

	records, err := s.searchRead(ctx, tablePartner,
		[]any{[]any{"email", "ilike", "%@" + domain}},
		[]string{"user_id"}, 1)
	if err != nil {
		zap.L().Warn("domain resolver: partner lookup failed",
			zap.String("domain", domain),
			zap.Error(err),
		)
		return 0, false
	}
	if len(records) == 0 {
		return 0, false
	}

	userID, ok := odoo.FieldRelation(records[0], "user_id")
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

// emailDomain extracts the lower-cased host part of an email address.
// Addresses without '@' produce no domain and no store call is made.
func emailDomain(email string) (string, bool) {
	idx := strings.LastIndex(email, "@")
	if idx < 0 || idx == len(email)-1 {
		return "", false
	}
	return strings.ToLower(email[idx+1:]), true
}
