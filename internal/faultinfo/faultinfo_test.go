package faultinfo

import (
	"testing"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/classifier"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/domain/panel"
)

func TestGetCoversEveryClassifierLabel(t *testing.T) {
	for _, label := range classifier.ClassNames {
		t.Run(label, func(t *testing.T) {
			info := Get(label)
			if info.Description == "" {
				t.Errorf("no description for %q", label)
			}
			if len(info.RepairSteps) == 0 {
				t.Errorf("no repair steps for %q", label)
			}
			if len(info.Prevention) == 0 {
				t.Errorf("no prevention tips for %q", label)
			}
		})
	}
}

func TestFaultEntriesCarrySeverity(t *testing.T) {
	valid := map[panel.Severity]bool{
		panel.SeverityLow:    true,
		panel.SeverityMedium: true,
		panel.SeverityHigh:   true,
	}
	for _, label := range classifier.ClassNames {
		info := Get(label)
		if label == "Healthy Panel" {
			if info.Severity != "" {
				t.Errorf("Healthy Panel has severity %q, want none", info.Severity)
			}
			continue
		}
		if !valid[info.Severity] {
			t.Errorf("%q has severity %q, want Low/Medium/High", label, info.Severity)
		}
		if info.CostEstimate == "" {
			t.Errorf("%q has no cost estimate", label)
		}
	}
}

func TestGetUnknownLabel(t *testing.T) {
	info := Get("Alien Corrosion")
	if info.Description != "" || info.Severity != "" || len(info.RepairSteps) != 0 {
		t.Errorf("unknown label returned non-zero info: %+v", info)
	}
}

func TestLabelsMatchTable(t *testing.T) {
	got := labels()
	if len(got) != len(classifier.ClassNames) {
		t.Fatalf("knowledge base has %d labels, classifier declares %d", len(got), len(classifier.ClassNames))
	}
	known := make(map[string]bool, len(got))
	for _, l := range got {
		known[l] = true
	}
	for _, l := range classifier.ClassNames {
		if !known[l] {
			t.Errorf("classifier label %q missing from knowledge base", l)
		}
	}
}
