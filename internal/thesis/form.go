package thesis

import (
	"fmt"
	"strings"

	"StockAdvisor/internal/config"
)

// FieldList is a growing list of free-text inputs. Count drives how many
// inputs are shown; Add grows it by one. Only non-empty values are kept.
type FieldList struct {
	Key          string
	Title        string
	FieldLabel   string
	Placeholders []string
	Fallback     string // placeholder format past the fixed ones, takes the 1-based index

	count  int
	values map[int]string
}

// NewFieldList creates a list showing count inputs.
func NewFieldList(key, title, fieldLabel string, count int) *FieldList {
	if count < 0 {
		count = 0
	}
	return &FieldList{Key: key, Title: title, FieldLabel: fieldLabel, count: count, values: map[int]string{}}
}

// Count returns how many inputs are currently shown.
func (l *FieldList) Count() int { return l.count }

// Add shows one more input.
func (l *FieldList) Add() { l.count++ }

// Label returns the display label of input i, 1-based.
func (l *FieldList) Label(i int) string {
	return fmt.Sprintf("%s %d", l.FieldLabel, i+1)
}

// Placeholder returns the hint for input i.
func (l *FieldList) Placeholder(i int) string {
	if i < len(l.Placeholders) {
		return l.Placeholders[i]
	}
	if l.Fallback != "" {
		return fmt.Sprintf(l.Fallback, i+1)
	}
	return ""
}

// Set stores the value of input i.
func (l *FieldList) Set(i int, v string) error {
	if i < 0 || i >= l.count {
		return fmt.Errorf("%s: field %d out of range (have %d)", l.Key, i+1, l.count)
	}
	l.values[i] = strings.TrimSpace(v)
	return nil
}

// Value returns the stored value of input i, or "".
func (l *FieldList) Value(i int) string { return l.values[i] }

// Seed stores existing values in order, growing the list to fit them.
func (l *FieldList) Seed(values []string) {
	if len(values) > l.count {
		l.count = len(values)
	}
	for i, v := range values {
		l.values[i] = strings.TrimSpace(v)
	}
}

// Entries returns the non-empty values in input order.
func (l *FieldList) Entries() []string {
	out := make([]string, 0, l.count)
	for i := 0; i < l.count; i++ {
		if v := l.values[i]; v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Form owns the per-session state of the five thesis lists.
type Form struct {
	Ideas        *FieldList
	Catalysts    *FieldList
	Fundamentals *FieldList
	Risks        *FieldList
	Plan         *FieldList
}

// NewForm creates a form with the configured initial input counts.
func NewForm(c config.FieldCounts) *Form {
	f := &Form{
		Ideas:        NewFieldList("ideas", SectionIdeas, "Idea", c.Ideas),
		Catalysts:    NewFieldList("catalysts", SectionCatalysts, "Catalyst", c.Catalysts),
		Fundamentals: NewFieldList("fundamentals", SectionFundamentals, "Analysis item", c.Fundamentals),
		Risks:        NewFieldList("risks", SectionRisks, "Risk", c.Risks),
		Plan:         NewFieldList("plan", SectionPlan, "Strategy", c.Plan),
	}
	f.Fundamentals.Placeholders = []string{
		"Revenue growth (e.g. 50% a year)",
		"Cash flow (e.g. two years of runway)",
		"Competitive edge (e.g. proprietary technology)",
	}
	f.Fundamentals.Fallback = "Additional analysis %d"
	f.Plan.Placeholders = []string{
		"Entry strategy (e.g. enter 30% first)",
		"Take-profit target (e.g. $25)",
		"Stop-loss line (e.g. $12)",
	}
	f.Plan.Fallback = "Additional strategy %d"
	return f
}

// Lists returns the lists in document order.
func (f *Form) Lists() []*FieldList {
	return []*FieldList{f.Ideas, f.Catalysts, f.Fundamentals, f.Risks, f.Plan}
}

// Seed loads the lists already present in in, such as ones read from a file.
func (f *Form) Seed(in *Input) {
	f.Ideas.Seed(in.Ideas)
	f.Catalysts.Seed(in.Catalysts)
	f.Fundamentals.Seed(in.Fundamentals)
	f.Risks.Seed(in.Risks)
	f.Plan.Seed(in.Plan)
}

// Apply copies the non-empty entries of every list into in.
func (f *Form) Apply(in *Input) {
	in.Ideas = f.Ideas.Entries()
	in.Catalysts = f.Catalysts.Entries()
	in.Fundamentals = f.Fundamentals.Entries()
	in.Risks = f.Risks.Entries()
	in.Plan = f.Plan.Entries()
}
