package models

import (
	"fmt"
	"time"
)

// BusinessSnapshot is a point-in-time capture of workshop activity. Built fresh
// on every check request and never mutated afterwards.
type BusinessSnapshot struct {
	PendingOrders     int64     `json:"pending_orders"`
	InProgressOrders  int64     `json:"in_progress_orders"`
	CompletedOrders   int64     `json:"completed_orders"`
	Customers         int64     `json:"customers"`
	Vehicles          int64     `json:"vehicles"`
	RevenueToday      float64   `json:"revenue_today"`
	ActiveTechnicians int64     `json:"active_technicians"`
	ActiveServices    int64     `json:"active_services"`
	CapturedAt        time.Time `json:"captured_at"`
}

// Sample is a gauge reading that may be absent. Absence is an expected outcome
// when the metrics backend is down or the query returns no vector.
type Sample struct {
	Value   float64
	Present bool
}

// SampleOf wraps a concrete reading.
func SampleOf(v float64) Sample {
	return Sample{Value: v, Present: true}
}

// FormatPercent renders the sample with two decimals and a percent suffix, or
// "N/A" when absent.
func (s Sample) FormatPercent() string {
	if !s.Present {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", s.Value)
}

// SystemSnapshot captures infrastructure gauges. Each field is independent:
// one backend failure never blanks the others.
type SystemSnapshot struct {
	CPUUsage        Sample
	MemoryAvailable Sample
	DiskUsage       Sample
}

// Classification is the structured projection of the classifier's free-text
// reply. Fields the reply did not contain hold the literal "N/A".
type Classification struct {
	AnomalyDetected string `json:"anomaly_detected"`
	Category        string `json:"type"`
	Justification   string `json:"justification"`
	Recommendation  string `json:"recommendation"`
	Priority        string `json:"priority"`
	Raw             string `json:"raw_response,omitempty"`
}

// Severity is the ordinal scale derived from the classifier verdict.
type Severity int

const (
	SeverityNormal    Severity = 0
	SeverityPotential Severity = 1
	SeverityCritical  Severity = 2
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityPotential:
		return "POTENTIAL"
	default:
		return "NORMAL"
	}
}

// SystemReport is the externally visible rendering of a SystemSnapshot.
type SystemReport struct {
	CPUUsage        string `json:"cpu_usage"`
	MemoryAvailable string `json:"memory_available"`
	DiskUsage       string `json:"disk_usage"`
}

// Report is the full response of a check run. Transient: assembled per request
// and discarded once written.
type Report struct {
	Timestamp time.Time        `json:"timestamp"`
	Status    string           `json:"status"`
	Business  BusinessSnapshot `json:"business_metrics"`
	System    SystemReport     `json:"system_metrics"`
	Analysis  Classification   `json:"ai_analysis"`
	Severity  string           `json:"severity"`
}

// ErrorResponse is the uniform JSON body for failed requests.
type ErrorResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
