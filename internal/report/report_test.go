package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/domain/panel"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/faultinfo"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/offices"
)

func fixedTime() time.Time {
	return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
}

func samplePrediction(label string, confidence float64) panel.FaultPrediction {
	return panel.FaultPrediction{
		Label:      label,
		Confidence: confidence,
		Distribution: map[string]float64{
			label: confidence,
		},
	}
}

func sampleContact() panel.ContactDetails {
	return panel.ContactDetails{
		Name:          "Asha Verma",
		Phone:         "+91-9876543210",
		Email:         "asha.verma@example.com",
		Pincode:       "110001",
		PanelLocation: "Rooftop, Block C",
		Notes:         "Output dropped after last week's hailstorm.",
	}
}

func TestAssembleRendersText(t *testing.T) {
	pred := samplePrediction("Hot Spots", 0.873)
	info := faultinfo.Get(pred.Label)
	office, ok := offices.FindNearest("110001")
	if !ok {
		t.Fatal("no office for 110001")
	}

	r, err := Assemble(pred, info, sampleContact(), office, fixedTime())
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	wantFragments := []string{
		"FAULT DETECTION REPORT",
		"Hot Spots",
		"87.3%",
		office.Email,
		office.Phone,
		"Asha Verma",
		"2026-03-14 10:30:00",
	}
	for _, want := range wantFragments {
		if !strings.Contains(r.Text, want) {
			t.Errorf("report text missing %q:\n%s", want, r.Text)
		}
	}
}

func TestAssembleRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*panel.ContactDetails)
	}{
		{name: "empty name", mutate: func(c *panel.ContactDetails) { c.Name = "" }},
		{name: "whitespace name", mutate: func(c *panel.ContactDetails) { c.Name = "   " }},
		{name: "empty phone", mutate: func(c *panel.ContactDetails) { c.Phone = "" }},
		{name: "empty email", mutate: func(c *panel.ContactDetails) { c.Email = "" }},
	}

	pred := samplePrediction("Microcracks", 0.55)
	info := faultinfo.Get(pred.Label)
	office, _ := offices.FindNearest("400001")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contact := sampleContact()
			tt.mutate(&contact)

			r, err := Assemble(pred, info, contact, office, fixedTime())
			if err == nil {
				t.Fatal("Assemble() expected validation error, got nil")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Assemble() error = %v, want ErrValidation", err)
			}
			if r != nil {
				t.Error("Assemble() produced a partial report on validation failure")
			}
		})
	}
}

func TestDescriptionIsPureFunctionOfLabel(t *testing.T) {
	// Two inspections landing on the same label must carry identical
	// description text regardless of the underlying image.
	office, _ := offices.FindNearest("560001")
	info := faultinfo.Get("Delamination")

	first, err := Assemble(samplePrediction("Delamination", 0.91), info, sampleContact(), office, fixedTime())
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	second, err := Assemble(samplePrediction("Delamination", 0.34), info, sampleContact(), office, fixedTime())
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if first.Description != second.Description {
		t.Error("description differs between reports with the same label")
	}
}

func TestMailtoAndTelURIs(t *testing.T) {
	pred := samplePrediction("PID", 0.42)
	info := faultinfo.Get(pred.Label)
	office, _ := offices.FindNearest("700017")

	r, err := Assemble(pred, info, sampleContact(), office, fixedTime())
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if !strings.HasPrefix(r.MailtoURI, "mailto:"+office.Email+"?") {
		t.Errorf("mailto URI = %q, want recipient %q", r.MailtoURI, office.Email)
	}
	if !strings.Contains(r.MailtoURI, "subject=") || !strings.Contains(r.MailtoURI, "body=") {
		t.Errorf("mailto URI missing subject or body: %q", r.MailtoURI)
	}
	if strings.ContainsAny(strings.TrimPrefix(r.TelURI, "tel:"), "-+ ") {
		t.Errorf("tel URI not cleaned: %q", r.TelURI)
	}
	if !strings.HasPrefix(r.TelURI, "tel:") {
		t.Errorf("tel URI = %q, want tel: scheme", r.TelURI)
	}
}

func TestFormatConfidence(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		expected   string
	}{
		{name: "typical", confidence: 0.873, expected: "87.3%"},
		{name: "rounds up", confidence: 0.8756, expected: "87.6%"},
		{name: "zero", confidence: 0, expected: "0.0%"},
		{name: "full", confidence: 1, expected: "100.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatConfidence(tt.confidence); got != tt.expected {
				t.Errorf("FormatConfidence(%v) = %q, want %q", tt.confidence, got, tt.expected)
			}
		})
	}
}
