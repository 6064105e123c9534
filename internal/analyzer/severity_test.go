package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tallerhub/aiops-reporter/internal/models"
)

func TestMapSeverity(t *testing.T) {
	tests := []struct {
		verdict string
		want    models.Severity
	}{
		{"Sí", models.SeverityCritical},
		{"sí", models.SeverityCritical},
		{"Si", models.SeverityCritical},
		{"Yes", models.SeverityCritical},
		{"Potencial", models.SeverityPotential},
		{"potential anomaly", models.SeverityPotential},
		{"No", models.SeverityNormal},
		{"No anomaly", models.SeverityNormal},
		{"N/A", models.SeverityNormal},
		{"", models.SeverityNormal},
		// A bare "si" must only match as a whole word.
		{"posible degradación", models.SeverityNormal},
		// Affirmative takes precedence over potential.
		{"Sí, potencialmente grave", models.SeverityCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapSeverity(tt.verdict), "verdict %q", tt.verdict)
	}
}

type recordingPublisher struct {
	category string
	severity models.Severity
	calls    int
}

func (r *recordingPublisher) SetAnomalySeverity(category string, severity models.Severity) {
	r.category = category
	r.severity = severity
	r.calls++
}

func TestMapAndPublishSetsGaugeByCategory(t *testing.T) {
	pub := &recordingPublisher{}
	mapper := NewSeverityMapper(pub)

	severity := mapper.MapAndPublish(models.Classification{
		AnomalyDetected: "Sí",
		Category:        "Recursos",
	})

	assert.Equal(t, models.SeverityCritical, severity)
	assert.Equal(t, "Recursos", pub.category)
	assert.Equal(t, models.SeverityCritical, pub.severity)
	assert.Equal(t, 1, pub.calls)
}

func TestMapAndPublishOverwritesPriorValue(t *testing.T) {
	pub := &recordingPublisher{}
	mapper := NewSeverityMapper(pub)

	mapper.MapAndPublish(models.Classification{AnomalyDetected: "Sí", Category: "Recursos"})
	mapper.MapAndPublish(models.Classification{AnomalyDetected: "No", Category: "Recursos"})

	assert.Equal(t, models.SeverityNormal, pub.severity)
	assert.Equal(t, 2, pub.calls)
}
