package domain

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type FieldMessage struct {
	Field   string
	Message string
}

// ValidationResult is an immutable snapshot of a section's state at a point
// in time; it is re-issued in full on every data change. A section is valid
// iff it has zero errors; warnings never block progression.
type ValidationResult struct {
	Schedule ScheduleType
	Section  string
	IsValid  bool
	Errors   []FieldMessage
	Warnings []FieldMessage
}

// FieldRule is a declarative constraint on a single field.
type FieldRule struct {
	Field         string
	Required      bool
	Min           *float64
	Max           *float64
	AllowNegative bool
	Pattern       string
}

// CrossRule compares two fields of the same record. Operator semantics
// follow ConditionOperator plus "greater_than" used for numeric comparisons.
type CrossRule struct {
	Left     string
	Operator string
	Right    string
	Severity Severity
	Message  string
}

// RuleSet is the validation rule table for one schedule section. Collection
// sections (capital transactions, rental properties) apply the field rules to
// every element, with messages indexed by position.
type RuleSet struct {
	Schedule ScheduleType
	Section  string
	Fields   []FieldRule
	Cross    []CrossRule
}
