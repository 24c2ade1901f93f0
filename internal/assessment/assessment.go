package assessment

// PAPIScore is one (scale code, score) pair from the PAPI Kostick survey.
type PAPIScore struct {
	ScaleCode string  `json:"scale_code"`
	Score     float64 `json:"score"`
}

// RawAssessment is the immutable per-employee snapshot read from storage.
// Every field besides the employee id is optional; missing or malformed
// fields only exclude the traits they feed, never the whole employee.
type RawAssessment struct {
	EmployeeID string      `json:"employee_id"`
	MBTI       string      `json:"mbti,omitempty"`
	DISC       string      `json:"disc,omitempty"`
	IQ         *float64    `json:"iq,omitempty"`
	GTQ        *float64    `json:"gtq,omitempty"`
	TIKI       *float64    `json:"tiki,omitempty"`
	Pauli      *float64    `json:"pauli,omitempty"`
	PAPI       []PAPIScore `json:"papi,omitempty"`
	Themes     []string    `json:"themes,omitempty"` // ranked, insertion order = rank
}

// RawTrait is one normalized value before taxonomy resolution. Family and
// Code identify the mapping row; Position distinguishes ordered components
// of multi-character codes (1..4 MBTI, 1..2 DISC, 1..5 theme ranks) and is
// zero for numeric traits.
type RawTrait struct {
	Family   string
	Code     string
	Numeric  bool
	Score    float64
	Value    string
	Position int
}

// NormalizedTrait is a taxonomy-resolved trait value for one employee.
type NormalizedTrait struct {
	EmployeeID string  `json:"employee_id"`
	TV         string  `json:"tv"`
	SubTV      string  `json:"sub_tv"`
	TGV        string  `json:"tgv"`
	Numeric    bool    `json:"numeric"`
	Score      float64 `json:"score,omitempty"`
	Value      string  `json:"value,omitempty"`
	Position   int     `json:"position,omitempty"`
	Inverse    bool    `json:"inverse,omitempty"`
}
