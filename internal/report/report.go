// Package report assembles fault reports from a prediction, the
// reporter's contact details and the matched service office, and
// renders them as plain text and as mailto:/tel: URIs.
package report

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/domain/panel"
)

// ErrValidation marks a user-correctable input problem: the report is
// not assembled and the caller should surface the message as-is.
var ErrValidation = errors.New("validation failed")

// Assemble validates the contact details and builds the full report.
// Required fields are name, phone and email; a missing one aborts
// assembly with a wrapped ErrValidation and no partial report.
func Assemble(
	pred panel.FaultPrediction,
	info panel.FaultInfo,
	contact panel.ContactDetails,
	office panel.ServiceOffice,
	now time.Time,
) (*panel.Report, error) {
	if strings.TrimSpace(contact.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(contact.Phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if strings.TrimSpace(contact.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	severity := info.Severity
	if severity == "" {
		severity = "Unknown"
	}

	r := &panel.Report{
		ID:          uuid.New(),
		Timestamp:   now,
		User:        contact,
		FaultType:   pred.Label,
		Confidence:  pred.Confidence,
		Severity:    severity,
		Description: info.Description,
		Office:      office,
	}
	r.Text = renderText(r)
	r.MailtoURI = mailtoURI(r)
	r.TelURI = telURI(office.Phone)
	return r, nil
}

// FormatConfidence renders a probability as a percentage with one
// decimal place, the way it is shown everywhere in the system.
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}

func renderText(r *panel.Report) string {
	var b strings.Builder
	b.WriteString("FAULT DETECTION REPORT\n")
	b.WriteString("======================\n\n")
	fmt.Fprintf(&b, "Date: %s\n", r.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "User: %s\n", r.User.Name)
	fmt.Fprintf(&b, "Phone: %s\n", r.User.Phone)
	fmt.Fprintf(&b, "Email: %s\n", r.User.Email)
	fmt.Fprintf(&b, "Pincode: %s\n", r.User.Pincode)
	fmt.Fprintf(&b, "Location: %s\n\n", r.User.PanelLocation)
	b.WriteString("FAULT DETECTED:\n")
	fmt.Fprintf(&b, "- Type: %s\n", r.FaultType)
	fmt.Fprintf(&b, "- Confidence: %s\n", FormatConfidence(r.Confidence))
	fmt.Fprintf(&b, "- Severity: %s\n", r.Severity)
	fmt.Fprintf(&b, "- Description: %s\n\n", r.Description)
	b.WriteString("SERVICE OFFICE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", r.Office.Name)
	fmt.Fprintf(&b, "- Address: %s\n", r.Office.Address)
	fmt.Fprintf(&b, "- Phone: %s\n", r.Office.Phone)
	fmt.Fprintf(&b, "- Email: %s\n\n", r.Office.Email)
	fmt.Fprintf(&b, "Additional Notes: %s\n", r.User.Notes)
	return b.String()
}

func mailtoURI(r *panel.Report) string {
	subject := fmt.Sprintf("Fault Report - %s", r.FaultType)
	body := fmt.Sprintf(`Dear %s,

I am reporting a solar panel fault detected through the fault detection system.

FAULT DETAILS:
- Type: %s
- Confidence: %s
- Severity: %s

MY DETAILS:
- Name: %s
- Phone: %s
- Email: %s
- Pincode: %s
- Panel Location: %s

Additional Notes: %s

Please contact me to schedule a service visit.

Thank you.`,
		r.Office.Name,
		r.FaultType, FormatConfidence(r.Confidence), r.Severity,
		r.User.Name, r.User.Phone, r.User.Email, r.User.Pincode, r.User.PanelLocation,
		r.User.Notes,
	)
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		r.Office.Email, url.QueryEscape(subject), url.QueryEscape(body))
}

func telURI(phone string) string {
	cleaned := strings.NewReplacer("-", "", " ", "", "+", "").Replace(phone)
	return "tel:" + cleaned
}
