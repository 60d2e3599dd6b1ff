package panel

import (
	"time"

	"github.com/google/uuid"
)

// FaultPrediction is the outcome of running one EL image through the
// classifier: the winning label, its probability, and the full
// distribution over every known fault class.
type FaultPrediction struct {
	Label        string             `json:"fault_type"`
	Confidence   float64            `json:"confidence"`
	Distribution map[string]float64 `json:"probabilities"`
}

// Severity of a fault class. Healthy panels carry no severity.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// FaultInfo is the static knowledge-base entry for one fault class.
type FaultInfo struct {
	Description  string   `json:"description"`
	Severity     Severity `json:"severity,omitempty"`
	Symptoms     []string `json:"symptoms,omitempty"`
	RepairSteps  []string `json:"repair_steps"`
	Prevention   []string `json:"prevention"`
	CostEstimate string   `json:"cost_estimate,omitempty"`
}

// ServiceOffice is a regional repair/support contact point from the
// bundled office directory.
type ServiceOffice struct {
	Name         string `json:"office_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	WorkingHours string `json:"working_hours"`
}

// ContactDetails are the user-entered fields of a fault report.
// Name, Phone and Email are required; the rest is optional.
type ContactDetails struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Pincode       string `json:"pincode,omitempty"`
	PanelLocation string `json:"panel_location,omitempty"`
	Notes         string `json:"additional_notes,omitempty"`
}

// Report is the assembled fault report for one inspection: prediction,
// knowledge-base snapshot, reporter contact details and the matched
// service office, plus derived renderings. Ephemeral per interaction.
type Report struct {
	ID          uuid.UUID      `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	User        ContactDetails `json:"user_details"`
	FaultType   string         `json:"fault_type"`
	Confidence  float64        `json:"confidence"`
	Severity    Severity       `json:"severity"`
	Description string         `json:"description"`
	Office      ServiceOffice  `json:"office_details"`
	Text        string         `json:"report_text"`
	MailtoURI   string         `json:"mailto_uri"`
	TelURI      string         `json:"tel_uri"`
}

// Inspection is one processed EL image upload.
type Inspection struct {
	ID         uuid.UUID       `json:"id"`
	Prediction FaultPrediction `json:"prediction"`
	Severity   Severity        `json:"severity,omitempty"`
	ImageName  string          `json:"image_name,omitempty"`
	ImageURL   string          `json:"image_url,omitempty"`
	Pincode    string          `json:"pincode,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
