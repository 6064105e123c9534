package analyzer

import (
	"context"
	"log/slog"

	"github.com/tallerhub/aiops-reporter/internal/models"
)

// CompletionClient is the text-completion surface the classifier needs.
// *groq.Client satisfies it.
type CompletionClient interface {
	Configured() bool
	Complete(ctx context.Context, prompt string) (string, error)
}

// NotConfiguredClassification is the fixed result substituted when no API
// credential exists. This is a degrade-gracefully path, not an error.
func NotConfiguredClassification() models.Classification {
	return models.Classification{
		AnomalyDetected: "No anomaly",
		Category:        "General",
		Justification:   "Groq API key not configured",
		Recommendation:  "Configurar GROQ_API_KEY para habilitar el análisis automático",
		Priority:        "Baja",
	}
}

// ErrorClassification is the fixed result substituted when the completion
// call fails. The report still goes out; only the classification degraded.
func ErrorClassification() models.Classification {
	return models.Classification{
		AnomalyDetected: "Error",
		Category:        "Sistema",
		Justification:   "No se pudo contactar el servicio de análisis",
		Recommendation:  "Verificar credenciales y conectividad con Groq",
		Priority:        "Media",
	}
}

// Classifier sends a composed prompt to the completion service and projects
// the free-text reply into a structured classification.
type Classifier struct {
	llm    CompletionClient
	logger *slog.Logger
}

// NewClassifier constructs a classifier over the given client.
func NewClassifier(llm CompletionClient, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{llm: llm, logger: logger}
}

// Classify runs one best-effort completion. It never returns an error:
// missing credentials and call failures degrade to their fixed results.
func (c *Classifier) Classify(ctx context.Context, prompt string) models.Classification {
	if c.llm == nil || !c.llm.Configured() {
		c.logger.Debug("classifier skipped, no API key configured")
		return NotConfiguredClassification()
	}

	reply, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		c.logger.Warn("classifier call failed", slog.Any("error", err))
		return ErrorClassification()
	}

	return Extract(reply)
}
