package analyzer

import (
	"regexp"
	"strings"

	"github.com/tallerhub/aiops-reporter/internal/models"
)

// The five labels mandated by the prompt's reply template.
const (
	labelAnomaly        = "Anomalía Detectada"
	labelCategory       = "Tipo"
	labelJustification  = "Justificación"
	labelRecommendation = "Recomendación"
	labelPriority       = "Prioridad"
)

// fieldMissing is the value a field resolves to when its label is absent from
// the reply. Extraction never fails.
const fieldMissing = "N/A"

// fieldRule captures one labeled field from the reply. Rules are independent
// and order-insensitive; adding a field is a new entry, not new control flow.
type fieldRule struct {
	pattern *regexp.Regexp
	assign  func(*models.Classification, string)
}

// labelPattern matches a bolded label followed by a colon (inside or outside
// the bold markers, the generator is not consistent) and captures the rest of
// the line.
func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\*\*\s*` + regexp.QuoteMeta(label) + `\s*:?\s*\*\*\s*:?[ \t]*([^\n]*)`)
}

var fieldRules = []fieldRule{
	{labelPattern(labelAnomaly), func(c *models.Classification, v string) { c.AnomalyDetected = v }},
	{labelPattern(labelCategory), func(c *models.Classification, v string) { c.Category = v }},
	{labelPattern(labelJustification), func(c *models.Classification, v string) { c.Justification = v }},
	{labelPattern(labelRecommendation), func(c *models.Classification, v string) { c.Recommendation = v }},
	{labelPattern(labelPriority), func(c *models.Classification, v string) { c.Priority = v }},
}

// Extract pulls the five template fields out of a raw reply. Missing labels
// resolve to "N/A"; the raw text is preserved verbatim.
func Extract(raw string) models.Classification {
	result := models.Classification{
		AnomalyDetected: fieldMissing,
		Category:        fieldMissing,
		Justification:   fieldMissing,
		Recommendation:  fieldMissing,
		Priority:        fieldMissing,
		Raw:             raw,
	}

	for _, rule := range fieldRules {
		m := rule.pattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if value == "" {
			continue
		}
		rule.assign(&result, value)
	}

	return result
}
