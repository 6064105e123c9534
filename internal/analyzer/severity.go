package analyzer

import (
	"strings"

	"github.com/tallerhub/aiops-reporter/internal/models"
)

// SeverityPublisher receives the derived severity keyed by category.
// *metrics.Registry satisfies it.
type SeverityPublisher interface {
	SetAnomalySeverity(category string, severity models.Severity)
}

// MapSeverity derives the ordinal severity from the free-text verdict.
// Affirmative tokens win over "potential"; anything else, including malformed
// text, maps to NORMAL. The verdict is unvalidated natural language, so the
// rule is conservative: ambiguity never escalates.
func MapSeverity(verdict string) models.Severity {
	v := strings.ToLower(verdict)
	if strings.Contains(v, "sí") || strings.Contains(v, "yes") || containsWord(v, "si") {
		return models.SeverityCritical
	}
	if strings.Contains(v, "potencial") || strings.Contains(v, "potential") {
		return models.SeverityPotential
	}
	return models.SeverityNormal
}

// containsWord reports whether token appears as a whole word. A bare "si" must
// not match inside words like "posible" or "presión".
func containsWord(s, token string) bool {
	for _, word := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != 'í' && r != 'é' && r != 'á' && r != 'ó' && r != 'ú' && r != 'ñ'
	}) {
		if word == token {
			return true
		}
	}
	return false
}

// SeverityMapper maps classifications onto the severity scale and publishes
// the result as the labeled gauge.
type SeverityMapper struct {
	publisher SeverityPublisher
}

// NewSeverityMapper constructs a mapper publishing to the given registry.
func NewSeverityMapper(publisher SeverityPublisher) *SeverityMapper {
	return &SeverityMapper{publisher: publisher}
}

// MapAndPublish derives the severity and overwrites the gauge for the
// classification's category. Last writer wins.
func (m *SeverityMapper) MapAndPublish(c models.Classification) models.Severity {
	severity := MapSeverity(c.AnomalyDetected)
	if m.publisher != nil {
		m.publisher.SetAnomalySeverity(c.Category, severity)
	}
	return severity
}
