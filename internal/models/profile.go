package models

// StatementProfile holds extra header patterns and fee keywords for a
// statement layout. Patterns extend the built-in ones and must have
// exactly one capture group holding the raw value.
type StatementProfile struct {
	Name            string   `yaml:"name,omitempty"`
	DueDate         []string `yaml:"due_date,omitempty"`
	TotalValue      []string `yaml:"total_value,omitempty"`
	MinimumPayment  []string `yaml:"minimum_payment,omitempty"`
	ReferencePeriod []string `yaml:"reference_period,omitempty"`
	ClosingDate     []string `yaml:"closing_date,omitempty"`
	FeeKeywords     []string `yaml:"fee_keywords,omitempty"`
}

// IsEmpty reports whether the profile adds nothing to the defaults.
func (p StatementProfile) IsEmpty() bool {
	return len(p.DueDate) == 0 && len(p.TotalValue) == 0 && len(p.MinimumPayment) == 0 &&
		len(p.ReferencePeriod) == 0 && len(p.ClosingDate) == 0 && len(p.FeeKeywords) == 0
}
