// Package offices is the bundled service-office directory. Offices are
// keyed by pincode prefixes of varying length; a user-entered code
// resolves to the most specific (longest) matching prefix.
package offices

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/domain/panel"
)

// directory keys are pincode prefixes. A longer prefix wins over a
// shorter one covering the same code ("110001" resolves to the "110"
// office, not the "11" regional office).
var directory = map[string]panel.ServiceOffice{
	"11": {
		Name:         "North Region Solar Service Hub",
		Email:        "north.service@solarfaulty.in",
		Phone:        "+91-11-4100-2200",
		Address:      "Plot 14, Okhla Industrial Estate Phase III, New Delhi 110020",
		WorkingHours: "Mon-Sat: 9:00 AM - 6:00 PM",
	},
	"110": {
		Name:         "New Delhi Service Center",
		Email:        "delhi.service@solarfaulty.in",
		Phone:        "+91-11-2334-5566",
		Address:      "23 Barakhamba Road, Connaught Place, New Delhi 110001",
		WorkingHours: "Mon-Sat: 9:00 AM - 7:00 PM",
	},
	"400": {
		Name:         "Mumbai Service Center",
		Email:        "mumbai.service@solarfaulty.in",
		Phone:        "+91-22-6678-9900",
		Address:      "Unit 7, Andheri East MIDC, Mumbai 400093",
		WorkingHours: "Mon-Sat: 9:30 AM - 6:30 PM",
	},
	"411": {
		Name:         "Pune Service Center",
		Email:        "pune.service@solarfaulty.in",
		Phone:        "+91-20-4455-6677",
		Address:      "Survey 12, Hinjewadi Phase 1, Pune 411057",
		WorkingHours: "Mon-Sat: 9:00 AM - 6:00 PM",
	},
	"500": {
		Name:         "Hyderabad Service Center",
		Email:        "hyderabad.service@solarfaulty.in",
		Phone:        "+91-40-2771-8899",
		Address:      "3rd Floor, Cyber Gateway, HITEC City, Hyderabad 500081",
		WorkingHours: "Mon-Sat: 9:00 AM - 6:00 PM",
	},
	"560": {
		Name:         "Bengaluru Service Center",
		Email:        "bengaluru.service@solarfaulty.in",
		Phone:        "+91-80-4123-7788",
		Address:      "91 Residency Road, Bengaluru 560025",
		WorkingHours: "Mon-Sat: 9:00 AM - 7:00 PM",
	},
	"600": {
		Name:         "Chennai Service Center",
		Email:        "chennai.service@solarfaulty.in",
		Phone:        "+91-44-2852-3344",
		Address:      "12 Mount Road, Guindy, Chennai 600032",
		WorkingHours: "Mon-Sat: 9:30 AM - 6:30 PM",
	},
	"700": {
		Name:         "Kolkata Service Center",
		Email:        "kolkata.service@solarfaulty.in",
		Phone:        "+91-33-2287-1122",
		Address:      "5 Camac Street, Kolkata 700017",
		WorkingHours: "Mon-Sat: 9:00 AM - 6:00 PM",
	},
	"302": {
		Name:         "Jaipur Service Center",
		Email:        "jaipur.service@solarfaulty.in",
		Phone:        "+91-141-402-5566",
		Address:      "B-4 Malviya Industrial Area, Jaipur 302017",
		WorkingHours: "Mon-Sat: 9:00 AM - 6:00 PM",
	},
}

// sortedPrefixes holds the directory keys longest-first so the first
// prefix match during lookup is the most specific one.
var sortedPrefixes = func() []string {
	prefixes := make([]string, 0, len(directory))
	for p := range directory {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	return prefixes
}()

// Normalize strips spaces and dashes from a user-entered pincode and
// upper-cases it (some countries use alphanumeric codes).
func Normalize(raw string) string {
	code := strings.TrimSpace(raw)
	code = strings.ReplaceAll(code, " ", "")
	code = strings.ReplaceAll(code, "-", "")
	return strings.ToUpper(code)
}

// FindNearest resolves a pincode to the office with the longest
// matching prefix. The second return is false when no prefix matches;
// that is an informational outcome, not an error.
func FindNearest(code string) (panel.ServiceOffice, bool) {
	normalized := Normalize(code)
	if normalized == "" {
		return panel.ServiceOffice{}, false
	}
	for _, prefix := range sortedPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return directory[prefix], true
		}
	}
	return panel.ServiceOffice{}, false
}

// FormatContactInfo renders the fixed-layout contact block shown to
// the user and embedded in reports.
func FormatContactInfo(office panel.ServiceOffice) string {
	return fmt.Sprintf(
		"Name: %s\nAddress: %s\nPhone: %s\nEmail: %s\nWorking Hours: %s\n",
		office.Name, office.Address, office.Phone, office.Email, office.WorkingHours,
	)
}
