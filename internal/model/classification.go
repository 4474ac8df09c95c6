package model

import (
	"fmt"
	"sort"
	"strings"
)

// LeadCategory is the model's qualification verdict for an inbound lead.
type LeadCategory string

const (
	CategoryQualifiedBuyer LeadCategory = "Qualified Buyer"
	CategoryJobApplicant   LeadCategory = "Job Applicant"
	CategoryInvestor       LeadCategory = "Investor"
	CategoryResearcher     LeadCategory = "Researcher"
	CategoryOther          LeadCategory = "Other"
)

// AllLeadCategories returns the fixed category enumeration.
func AllLeadCategories() []LeadCategory {
	return []LeadCategory{
		CategoryQualifiedBuyer,
		CategoryJobApplicant,
		CategoryInvestor,
		CategoryResearcher,
		CategoryOther,
	}
}

// BANT is the Budget/Authority/Need/Timeframe qualification breakdown.
// Fields are free-form model text ("Yes, mentioned a $50k budget", "unknown").
type BANT struct {
	Budget    string `json:"Budget"`
	Authority string `json:"Authority"`
	Need      string `json:"Need"`
	Timeframe string `json:"Timeframe"`
}

// Classification is the structured judgment recovered from the model for one
// piece of inbound text. It is produced per invocation and never persisted.
type Classification struct {
	LeadType    LeadCategory `json:"lead_type"`
	BANT        BANT         `json:"bant_analysis"`
	IsQualified bool         `json:"is_qualified"`

	// Raw holds the full decoded document so notes can render keys the
	// schema does not model (e.g. a free-form "reasoning" field).
	Raw map[string]any `json:"-"`
}

// noteHeader prefixes the description written back to the CRM record.
const noteHeader = "--- AI Lead Qualification ---"

// RenderNotes flattens the classification into the newline-joined
// description stored on the lead record.
func (c *Classification) RenderNotes() string {
	lines := []string{noteHeader}

	keys := make([]string, 0, len(c.Raw))
	for k := range c.Raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, renderValue(c.Raw[k])))
	}
	return strings.Join(lines, "\n")
}

// RecordType maps the qualification verdict onto the remote type flag.
func (c *Classification) RecordType() LeadType {
	if c.IsQualified {
		return LeadTypeOpportunity
	}
	return LeadTypeLead
}

func renderValue(v any) string {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, renderValue(val[k])))
		}
		return strings.Join(parts, "; ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, renderValue(item))
		}
		return strings.Join(parts, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
