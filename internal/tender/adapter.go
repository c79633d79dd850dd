package tender

import (
	"strings"
)

// Raw is a tender record as the portal serves it. The feed has drifted
// over time: snake_case and camelCase key variants coexist, and the
// requirement sections arrive either as a numbered-heading map or as flat
// fields. The adapter folds all of that into the canonical Tender so the
// rest of the code never sees dual naming.
type Raw struct {
	ProjectName         string            `json:"project_name" mapstructure:"project_name"`
	ProjectNameCamel    string            `json:"projectName" mapstructure:"projectName"`
	Reference           string            `json:"rfp_reference" mapstructure:"rfp_reference"`
	IssuedBy            string            `json:"issued_by" mapstructure:"issued_by"`
	Category            string            `json:"category" mapstructure:"category"`
	Deadline            string            `json:"submission_deadline" mapstructure:"submission_deadline"`
	DeadlineCamel       string            `json:"submissionDeadline" mapstructure:"submissionDeadline"`
	Sections            map[string]string `json:"sections" mapstructure:"sections"`
	ScopeOfSupply       string            `json:"scope_of_supply" mapstructure:"scope_of_supply"`
	TechnicalSpecs      string            `json:"technical_specifications" mapstructure:"technical_specifications"`
	TestingRequirements string            `json:"testing_requirements" mapstructure:"testing_requirements"`
	DeliveryTimeline    string            `json:"delivery_timeline" mapstructure:"delivery_timeline"`
	PricingDetails      string            `json:"pricing_details" mapstructure:"pricing_details"`
	EvaluationCriteria  string            `json:"evaluation_criteria" mapstructure:"evaluation_criteria"`
}

// Canonical section headings used by the portal's numbered-map variant.
const (
	sectionOverview   = "project overview"
	sectionScope      = "scope of supply"
	sectionTechnical  = "technical specifications"
	sectionTesting    = "acceptance & test requirements"
	sectionDelivery   = "delivery timeline"
	sectionPricing    = "pricing details"
	sectionEvaluation = "evaluation criteria"
)

// Canonical converts a raw portal record into the canonical schema.
func (r *Raw) Canonical() *Tender {
	t := &Tender{
		Reference:          r.Reference,
		Title:              firstNonEmpty(r.ProjectName, r.ProjectNameCamel),
		IssuedBy:           r.IssuedBy,
		Category:           r.Category,
		SubmissionDeadline: firstNonEmpty(r.Deadline, r.DeadlineCamel),
		Sections: Sections{
			ScopeOfSupply:           r.ScopeOfSupply,
			TechnicalSpecifications: r.TechnicalSpecs,
			Testing:                 r.TestingRequirements,
			DeliveryTimeline:        r.DeliveryTimeline,
			PricingTerms:            r.PricingDetails,
			EvaluationCriteria:      r.EvaluationCriteria,
		},
	}

	for heading, body := range r.Sections {
		switch normalizeHeading(heading) {
		case sectionOverview:
			t.Sections.Overview = body
		case sectionScope:
			t.Sections.ScopeOfSupply = body
		case sectionTechnical:
			t.Sections.TechnicalSpecifications = body
		case sectionTesting:
			t.Sections.Testing = body
		case sectionDelivery:
			t.Sections.DeliveryTimeline = body
		case sectionPricing:
			t.Sections.PricingTerms = body
		case sectionEvaluation:
			t.Sections.EvaluationCriteria = body
		}
	}

	return t
}

// normalizeHeading strips the "1. " style numbering prefix and lowercases.
func normalizeHeading(heading string) string {
	s := strings.TrimSpace(strings.ToLower(heading))
	if idx := strings.Index(s, ". "); idx >= 0 && idx <= 2 {
		s = s[idx+2:]
	}
	return strings.TrimSpace(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
