package registry

import "time"

// Firm is one investment-adviser registration from the SEC compilation.
// CRD is the regulator-assigned firm identifier and is unique per firm.
type Firm struct {
	CRD        int       `json:"crd"`
	Company    string    `json:"company"`
	LegalName  string    `json:"legal_name,omitempty"`
	Status     string    `json:"status"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Phone      string    `json:"phone,omitempty"`
	Website    string    `json:"website,omitempty"`
	Registered time.Time `json:"registered"`
	Employees  int       `json:"employees"`
	Clients    int       `json:"clients"`
	AUM        int64     `json:"aum"`
}

// Snapshot is the result of one feed pull: the firms matching the requested
// window plus provenance about the compilation they came from.
type Snapshot struct {
	Firms        []Firm    `json:"firms"`
	TotalRecords int       `json:"total_records"`
	SnapshotDate time.Time `json:"snapshot_date"`
	SourceURL    string    `json:"source_url"`
}
