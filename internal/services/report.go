package services

import (
	"time"

	"github.com/tallerhub/aiops-reporter/internal/models"
)

// AssembleReport projects the pipeline outputs into the externally visible
// report. Pure: no I/O, no registry access.
func AssembleReport(
	ts time.Time,
	business models.BusinessSnapshot,
	system models.SystemSnapshot,
	classification models.Classification,
	severity models.Severity,
) models.Report {
	return models.Report{
		Timestamp: ts,
		Status:    "ok",
		Business:  business,
		System: models.SystemReport{
			CPUUsage:        system.CPUUsage.FormatPercent(),
			MemoryAvailable: system.MemoryAvailable.FormatPercent(),
			DiskUsage:       system.DiskUsage.FormatPercent(),
		},
		Analysis: classification,
		Severity: severity.String(),
	}
}
