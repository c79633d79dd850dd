// Package tender holds the canonical tender (RFP) model, the collection
// helpers used by the run pipeline, and the portal client that retrieves
// listings.
package tender

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ReferenceField = "Reference"
	IssuerField    = "IssuedBy"
)

// Sections are the free-text requirement sections of a tender.
type Sections struct {
	Overview                string `json:"overview,omitempty"`
	ScopeOfSupply           string `json:"scope_of_supply,omitempty"`
	TechnicalSpecifications string `json:"technical_specifications,omitempty"`
	Testing                 string `json:"testing_requirements,omitempty"`
	DeliveryTimeline        string `json:"delivery_timeline,omitempty"`
	PricingTerms            string `json:"pricing_terms,omitempty"`
	EvaluationCriteria      string `json:"evaluation_criteria,omitempty"`
}

// Tender is the canonical record produced by the portal adapter. It is
// passed by reference downstream and never mutated after selection.
type Tender struct {
	Reference          string   `json:"reference,omitempty"`
	Title              string   `json:"title,omitempty"`
	IssuedBy           string   `json:"issued_by,omitempty"`
	Category           string   `json:"category,omitempty"`
	SubmissionDeadline string   `json:"submission_deadline,omitempty"`
	Sections           Sections `json:"sections,omitempty"`
}

// RequirementText concatenates the sections consumed by the product matcher.
func (t *Tender) RequirementText() string {
	return strings.TrimSpace(strings.Join([]string{
		t.Sections.ScopeOfSupply,
		t.Sections.TechnicalSpecifications,
	}, " "))
}

// Deadline parses the submission deadline. ok is false when the deadline
// is missing or unparseable, which downstream code treats as "no deadline".
func (t *Tender) Deadline() (time.Time, bool) {
	return ParseDeadline(t.SubmissionDeadline)
}

func (t *Tender) GetStringField(name string) string {
	switch name {
	case ReferenceField:
		return t.Reference
	case IssuerField:
		return t.IssuedBy
	default:
		return ""
	}
}

// Tenders is a mutable working list used by the filter pipeline.
type Tenders struct {
	Items []*Tender
}

func (ts *Tenders) Len() int {
	return len(ts.Items)
}

func (ts *Tenders) FindByReference(ref string) *Tender {
	for _, t := range ts.Items {
		if t.Reference == ref {
			return t
		}
	}
	return nil
}

// Exclude removes tenders whose field matches any target and returns the
// removed references.
func (ts *Tenders) Exclude(name string, targets []string) []string {
	wanted := make(map[string]bool, len(targets))
	for _, target := range targets {
		wanted[target] = true
	}

	var excluded []string
	kept := ts.Items[:0]
	for _, t := range ts.Items {
		if wanted[t.GetStringField(name)] {
			excluded = append(excluded, t.Reference)
			continue
		}
		kept = append(kept, t)
	}
	ts.Items = kept
	return excluded
}

// ReportByIssuer groups tender summaries by issuing body.
func (ts *Tenders) ReportByIssuer() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, t := range ts.Items {
		key := t.IssuedBy
		if key == "" {
			key = "unknown issuer"
		}
		report[key] = append(report[key], map[string]string{
			"reference": t.Reference,
			"title":     t.Title,
			"category":  t.Category,
			"deadline":  t.SubmissionDeadline,
			"overview":  t.Sections.Overview,
		})
	}
	return report
}

func (ts *Tenders) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "tenders_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ts); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ExcludedTenders is the persistent record of tenders an operator has
// chosen to skip in future cycles.
type ExcludedTenders struct {
	Items []*ExcludedTender
}

type ExcludedTender struct {
	Reference  string
	Title      string
	IssuedBy   string
	ExcludedAt time.Time
}

func (ts *Tenders) ToExcluded() *ExcludedTenders {
	excluded := &ExcludedTenders{}
	for _, t := range ts.Items {
		excluded.Items = append(excluded.Items, &ExcludedTender{
			Reference:  t.Reference,
			Title:      t.Title,
			IssuedBy:   t.IssuedBy,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

func GetExcludedTendersFromFile(path string) (*ExcludedTenders, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedTenders{}, nil
	}

	var excluded ExcludedTenders
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, fmt.Errorf("decoding exclude file %q: %w", path, err)
	}
	return &excluded, nil
}

func (e *ExcludedTenders) Append(other *ExcludedTenders) {
	e.Items = append(e.Items, other.Items...)
}

func (e *ExcludedTenders) References() []string {
	refs := make([]string, 0, len(e.Items))
	for _, t := range e.Items {
		refs = append(refs, t.Reference)
	}
	return refs
}

func (e *ExcludedTenders) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
