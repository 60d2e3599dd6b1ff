// Package faultinfo is the static knowledge base mapping each fault
// class to its description, severity, repair steps and prevention tips.
// The table is built once at init and never mutated.
package faultinfo

import (
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/domain/panel"
)

var table = map[string]panel.FaultInfo{
	"Healthy Panel": {
		Description: "No fault detected. The EL image shows uniform luminescence across all cells with no dark regions, cracks, or inactive areas.",
		RepairSteps: []string{
			"No repair required",
			"Continue routine visual inspections every 6 months",
		},
		Prevention: []string{
			"Keep panels clean and free of debris",
			"Schedule periodic EL imaging to catch faults early",
			"Monitor string-level output for gradual degradation",
		},
	},
	"Microcracks": {
		Description: "Hairline fractures in the silicon cells, visible as thin dark lines in the EL image. Microcracks reduce the active cell area and tend to grow under thermal cycling and mechanical load.",
		Severity:    panel.SeverityMedium,
		Symptoms: []string{
			"Thin dark lines crossing individual cells",
			"Gradual power loss of 1-5% per affected cell",
			"Cracks spreading after hail, transport, or foot traffic",
		},
		RepairSteps: []string{
			"Map affected cells from the EL image",
			"Measure string IV curves to quantify power loss",
			"Replace the panel if cracked cells exceed 10% of total area",
			"Otherwise monitor crack growth at the next scheduled inspection",
		},
		Prevention: []string{
			"Use qualified installers and avoid standing on modules",
			"Specify panels with reinforced cell interconnects",
			"Inspect after severe weather events",
		},
		CostEstimate: "₹2,000 - ₹15,000 per panel depending on extent",
	},
	"Hot Spots": {
		Description: "Localized overheating where a shaded or damaged cell dissipates power instead of generating it. Appears as bright spots in thermal images and dark cells in EL. Sustained hot spots can melt encapsulant and start fires.",
		Severity:    panel.SeverityHigh,
		Symptoms: []string{
			"Dark cells in the EL image with bright halo boundaries",
			"Discolored or burnt patches on the backsheet",
			"Sharp output drops under partial shading",
		},
		RepairSteps: []string{
			"Take the affected string offline immediately",
			"Verify bypass diode operation across the affected substring",
			"Remove shading sources or relocate the panel",
			"Replace the panel if cell damage or burn marks are present",
		},
		Prevention: []string{
			"Eliminate recurring shading (trees, antennas, soiling)",
			"Test bypass diodes during annual maintenance",
			"Use module-level power electronics in shade-prone layouts",
		},
		CostEstimate: "₹8,000 - ₹25,000 per panel including diagnosis",
	},
	"Snail Trails": {
		Description: "Dark discolored traces along cell edges and microcracks caused by silver paste corrosion reacting with moisture that entered through the backsheet. Usually cosmetic at first but indicates moisture ingress and underlying cracks.",
		Severity:    panel.SeverityLow,
		Symptoms: []string{
			"Brown or grey worm-like traces on the cell surface",
			"Traces following crack lines or cell edges",
			"Appears 1-3 years after installation",
		},
		RepairSteps: []string{
			"Confirm with EL imaging whether cracks underlie the trails",
			"Check backsheet integrity for moisture entry points",
			"Monitor power output quarterly",
			"Replace only if paired with measurable power loss",
		},
		Prevention: []string{
			"Source panels with moisture-resistant encapsulants",
			"Avoid mechanical stress that creates the underlying cracks",
		},
		CostEstimate: "₹0 - ₹5,000 (monitoring only unless power loss occurs)",
	},
	"Cell Breakage": {
		Description: "Complete fracture of one or more cells, shown as large dark inactive regions in the EL image. Broken cells are electrically dead and force current through bypass diodes, cutting panel output sharply.",
		Severity:    panel.SeverityHigh,
		Symptoms: []string{
			"Large dark regions covering whole cells or cell groups",
			"Visible shattered glass or impact marks",
			"Output drop of one third or more per bypassed substring",
		},
		RepairSteps: []string{
			"Disconnect the panel from the string",
			"Document the damage for warranty or insurance claims",
			"Replace the panel; cell-level repair is not economical",
			"Inspect neighboring panels for impact damage",
		},
		Prevention: []string{
			"Install hail guards in exposed locations",
			"Use appropriate mounting torque to avoid frame stress",
			"Handle panels by the frame only during maintenance",
		},
		CostEstimate: "₹18,000 - ₹35,000 for panel replacement",
	},
	"Delamination": {
		Description: "Separation of the encapsulant layers from the cells or glass, visible as milky or bubbled regions. Delamination admits moisture, accelerates corrosion, and grows steadily once started.",
		Severity:    panel.SeverityMedium,
		Symptoms: []string{
			"Milky white or bubbled areas between glass and cells",
			"Yellowing encapsulant near panel edges",
			"Corrosion spots on cell fingers and busbars",
		},
		RepairSteps: []string{
			"Photograph and measure the delaminated area",
			"Check insulation resistance for safety",
			"Claim under product warranty if within the warranty period",
			"Replace the panel when delamination reaches active cell area",
		},
		Prevention: []string{
			"Buy panels certified for damp-heat endurance (IEC 61215)",
			"Ensure adequate rear ventilation to limit operating temperature",
		},
		CostEstimate: "₹15,000 - ₹30,000 for panel replacement",
	},
	"Bypass Diode Failure": {
		Description: "A failed bypass diode either short-circuits a substring (losing a third of panel output permanently) or fails open and removes hot-spot protection. Shows as a uniformly dark substring in the EL image.",
		Severity:    panel.SeverityMedium,
		Symptoms: []string{
			"One third of the panel uniformly dark in EL",
			"Panel voltage lower than nameplate by one substring",
			"Junction box discoloration or burnt smell",
		},
		RepairSteps: []string{
			"Verify with IV curve tracing and diode forward-voltage test",
			"Replace the failed diode in the junction box if accessible",
			"Replace the junction box or panel for potted designs",
			"Re-test the string after repair",
		},
		Prevention: []string{
			"Avoid prolonged partial shading that heats diodes",
			"Include diode checks in annual maintenance",
		},
		CostEstimate: "₹1,500 - ₹8,000 per junction box repair",
	},
	"PID": {
		Description: "Potential Induced Degradation: leakage current driven by high system voltage causes sodium ion migration that shunts cells. EL shows a characteristic checkerboard of dark cells concentrated near the frame and the negative end of the string.",
		Severity:    panel.SeverityHigh,
		Symptoms: []string{
			"Checkerboard pattern of darkened cells in EL",
			"Worst degradation on panels at the negative string end",
			"Power loss of 10-30% accelerating in humid conditions",
		},
		RepairSteps: []string{
			"Confirm PID with EL imaging at string level",
			"Install a PID recovery box to reverse-bias panels overnight",
			"Ground the negative pole of the inverter if topology allows",
			"Replace panels that do not recover after 4-8 weeks",
		},
		Prevention: []string{
			"Specify PID-resistant panels (IEC 62804 tested)",
			"Use inverters with functional grounding",
			"Keep system voltage within panel certification limits",
		},
		CostEstimate: "₹10,000 - ₹50,000 per string depending on recovery method",
	},
}

// Get returns the knowledge-base entry for a fault class. Labels
// outside the known set return a zero-value FaultInfo rather than an
// error; the classifier and this table are closed over the same label
// set, so that path is a defensive fallback only.
func Get(label string) panel.FaultInfo {
	return table[label]
}

// labels returns the set of labels the knowledge base covers.
func labels() []string {
	out := make([]string, 0, len(table))
	for label := range table {
		out = append(out, label)
	}
	return out
}
