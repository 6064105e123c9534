package analyzer

import (
	"fmt"
	"strings"

	"github.com/tallerhub/aiops-reporter/internal/models"
)

// ComposePrompt renders both snapshots into the classifier prompt. Pure and
// deterministic: the same snapshots always produce the same string.
//
// The reply template at the end is load-bearing: the five bolded labels are
// the only contract that makes field extraction reliable against a
// non-deterministic text generator. Changing a label here requires changing
// the matching extraction rule.
func ComposePrompt(b models.BusinessSnapshot, s models.SystemSnapshot) string {
	var sb strings.Builder

	sb.WriteString("Eres un analista AIOps de un taller mecánico. Analiza el estado actual del negocio y de la infraestructura y determina si existe alguna anomalía operativa.\n\n")

	sb.WriteString(fmt.Sprintf("Métricas de negocio (capturadas %s):\n", b.CapturedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("- Órdenes de trabajo pendientes: %d\n", b.PendingOrders))
	sb.WriteString(fmt.Sprintf("- Órdenes de trabajo en proceso: %d\n", b.InProgressOrders))
	sb.WriteString(fmt.Sprintf("- Órdenes de trabajo completadas: %d\n", b.CompletedOrders))
	sb.WriteString(fmt.Sprintf("- Clientes registrados: %d\n", b.Customers))
	sb.WriteString(fmt.Sprintf("- Vehículos registrados: %d\n", b.Vehicles))
	sb.WriteString(fmt.Sprintf("- Ingresos de hoy: $%.2f\n", b.RevenueToday))
	sb.WriteString(fmt.Sprintf("- Técnicos activos: %d\n", b.ActiveTechnicians))
	sb.WriteString(fmt.Sprintf("- Servicios activos: %d\n", b.ActiveServices))

	sb.WriteString("\nMétricas de infraestructura:\n")
	sb.WriteString(fmt.Sprintf("- Uso de CPU: %s\n", s.CPUUsage.FormatPercent()))
	sb.WriteString(fmt.Sprintf("- Memoria disponible: %s\n", s.MemoryAvailable.FormatPercent()))
	sb.WriteString(fmt.Sprintf("- Uso de disco: %s\n", s.DiskUsage.FormatPercent()))

	sb.WriteString("\nResponde EXACTAMENTE con el siguiente formato, un campo por línea y en este orden:\n")
	sb.WriteString("**" + labelAnomaly + ":** [Sí / No / Potencial]\n")
	sb.WriteString("**" + labelCategory + ":** [Negocio / Recursos / Sistema / Ninguno]\n")
	sb.WriteString("**" + labelJustification + ":** [justificación en máximo 100 palabras]\n")
	sb.WriteString("**" + labelRecommendation + ":** [acción concreta recomendada]\n")
	sb.WriteString("**" + labelPriority + ":** [Alta / Media / Baja]\n")

	return sb.String()
}
