package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tallerhub/aiops-reporter/internal/models"
)

func sampleBusiness() models.BusinessSnapshot {
	return models.BusinessSnapshot{
		PendingOrders:     5,
		InProgressOrders:  2,
		CompletedOrders:   10,
		Customers:         40,
		Vehicles:          55,
		RevenueToday:      1234.5,
		ActiveTechnicians: 6,
		ActiveServices:    12,
		CapturedAt:        time.Date(2025, 6, 3, 15, 30, 0, 0, time.UTC),
	}
}

func TestComposePromptIsDeterministic(t *testing.T) {
	b := sampleBusiness()
	s := models.SystemSnapshot{CPUUsage: models.SampleOf(85.2031)}

	assert.Equal(t, ComposePrompt(b, s), ComposePrompt(b, s))
}

func TestComposePromptStatesAllFigures(t *testing.T) {
	b := sampleBusiness()
	s := models.SystemSnapshot{
		CPUUsage:  models.SampleOf(85.2031),
		DiskUsage: models.SampleOf(73.9),
	}

	prompt := ComposePrompt(b, s)

	assert.Contains(t, prompt, "Órdenes de trabajo pendientes: 5")
	assert.Contains(t, prompt, "Órdenes de trabajo en proceso: 2")
	assert.Contains(t, prompt, "Órdenes de trabajo completadas: 10")
	assert.Contains(t, prompt, "Clientes registrados: 40")
	assert.Contains(t, prompt, "Vehículos registrados: 55")
	assert.Contains(t, prompt, "Ingresos de hoy: $1234.50")
	assert.Contains(t, prompt, "Técnicos activos: 6")
	assert.Contains(t, prompt, "Servicios activos: 12")

	// Present samples render with two decimals; absent ones as N/A.
	assert.Contains(t, prompt, "Uso de CPU: 85.20%")
	assert.Contains(t, prompt, "Memoria disponible: N/A")
	assert.Contains(t, prompt, "Uso de disco: 73.90%")
}

func TestComposePromptMandatesReplyTemplate(t *testing.T) {
	prompt := ComposePrompt(sampleBusiness(), models.SystemSnapshot{})

	assert.Contains(t, prompt, "**Anomalía Detectada:**")
	assert.Contains(t, prompt, "**Tipo:**")
	assert.Contains(t, prompt, "**Justificación:**")
	assert.Contains(t, prompt, "**Recomendación:**")
	assert.Contains(t, prompt, "**Prioridad:**")
}

func TestComposedTemplateRoundTripsThroughExtraction(t *testing.T) {
	// A reply that echoes the mandated template must extract cleanly.
	reply := "**Anomalía Detectada:** No\n**Tipo:** Ninguno\n**Justificación:** sin desviaciones\n**Recomendación:** continuar monitoreo\n**Prioridad:** Baja"
	c := Extract(reply)

	assert.Equal(t, "No", c.AnomalyDetected)
	assert.Equal(t, "Ninguno", c.Category)
	assert.Equal(t, "sin desviaciones", c.Justification)
	assert.Equal(t, "continuar monitoreo", c.Recommendation)
	assert.Equal(t, "Baja", c.Priority)
}
