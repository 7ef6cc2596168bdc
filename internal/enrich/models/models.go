// Package models defines the candidate and contact types shared by the
// contact discovery engine.
package models

// Source tags where a candidate came from; used for tie-breaking.
type Source string

const (
	SourceScraped   Source = "scraped"
	SourceDirectory Source = "directory"
)

// Seniority is the coarse executive > senior > management ordering supplied
// only by the directory service.
type Seniority string

const (
	SeniorityExecutive  Seniority = "executive"
	SenioritySenior     Seniority = "senior"
	SeniorityManagement Seniority = "management"
	SeniorityUnknown    Seniority = ""
)

// Rank orders seniorities for sorting; lower is more senior.
func (s Seniority) Rank() int {
	switch s {
	case SeniorityExecutive:
		return 0
	case SenioritySenior:
		return 1
	case SeniorityManagement:
		return 2
	default:
		return 3
	}
}

// Verification is the email deliverability signal from the directory service.
type Verification string

const (
	VerificationValid   Verification = "valid"
	VerificationInvalid Verification = "invalid"
	VerificationUnknown Verification = ""
)

// Candidate is one unverified, provenance-tagged guess at contact information.
// All fields except Source are optional; empty string means absent.
type Candidate struct {
	Name          string
	Email         string
	Title         string
	Source        Source
	Confidence    int // 0-100, directory only
	Seniority     Seniority
	Department    string
	Phone         string
	SocialProfile string
	Verified      Verification
}

// Contact is the engine's single reconciled output per firm. Empty string
// means "not found".
type Contact struct {
	Name          string `json:"contact_name"`
	Email         string `json:"contact_email"`
	Title         string `json:"contact_title"`
	Phone         string `json:"contact_phone"`
	SocialProfile string `json:"contact_linkedin"`
}

// IsEmpty reports whether nothing at all was found.
func (c Contact) IsEmpty() bool {
	return c.Name == "" && c.Email == "" && c.Title == "" && c.Phone == "" && c.SocialProfile == ""
}
