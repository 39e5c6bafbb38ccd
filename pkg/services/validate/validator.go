package validate

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

// RuleProvider serves the declarative validation rule tables. Satisfied by
// the rule catalog.
type RuleProvider interface {
	ValidationRules(schedule domain.ScheduleType, section string) (domain.RuleSet, error)
	Sections(schedule domain.ScheduleType) []string
}

// Validator evaluates schedule data against the catalog's rule sets. It is
// stateless apart from a compiled-pattern cache; results are returned as
// values, never thrown. The validator re-runs fully on every mutation, so
// results can never go stale.
type Validator struct {
	rules RuleProvider

	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

func New(rules RuleProvider) *Validator {
	return &Validator{
		rules:    rules,
		patterns: make(map[string]*regexp.Regexp),
	}
}

// ValidateSection checks one section of a schedule. The returned error is
// reserved for catalog/code mismatches (unknown section, data of the wrong
// schedule type); every data-shaped problem comes back inside the result.
func (v *Validator) ValidateSection(
	schedule domain.ScheduleType,
	section string,
	data domain.ScheduleData,
) (domain.ValidationResult, error) {
	if data.Schedule() != schedule {
		return domain.ValidationResult{}, fmt.Errorf(
			"schedule data is %s, expected %s", data.Schedule(), schedule)
	}
	rules, err := v.rules.ValidationRules(schedule, section)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	records, indexed, err := sectionRecords(data, section)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	result := domain.ValidationResult{Schedule: schedule, Section: section}
	failed := make(map[string]struct{})

	for i, rec := range records {
		name := func(field string) string {
			if indexed {
				return fmt.Sprintf("%s[%d].%s", section, i, field)
			}
			return field
		}

		for _, rule := range rules.Fields {
			field := name(rule.Field)
			if msg := v.checkField(rule, rec[rule.Field]); msg != "" {
				result.Errors = append(result.Errors, domain.FieldMessage{Field: field, Message: msg})
				failed[field] = struct{}{}
			}
		}

		for _, rule := range rules.Cross {
			msg, severity := checkCross(rule, rec)
			if msg == "" {
				continue
			}
			field := name(rule.Left)
			if severity == domain.SeverityError {
				result.Errors = append(result.Errors, domain.FieldMessage{Field: field, Message: msg})
				failed[field] = struct{}{}
			} else {
				result.Warnings = append(result.Warnings, domain.FieldMessage{Field: field, Message: msg})
			}
		}
	}

	// Errors win over warnings for the same field.
	result.Warnings = dropFailed(result.Warnings, failed)
	result.IsValid = len(result.Errors) == 0
	return result, nil
}

// ValidateSchedule runs every rule-bearing section of the schedule and
// returns the results in section order.
func (v *Validator) ValidateSchedule(data domain.ScheduleData) ([]domain.ValidationResult, error) {
	sections := v.rules.Sections(data.Schedule())
	sort.Strings(sections)
	out := make([]domain.ValidationResult, 0, len(sections))
	for _, section := range sections {
		result, err := v.ValidateSection(data.Schedule(), section, data)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}

// checkField applies required, range, and pattern rules in precedence order
// and returns the first violation.
func (v *Validator) checkField(rule domain.FieldRule, value any) string {
	if rule.Required && isEmpty(value) {
		return "required"
	}

	if n, ok := value.(float64); ok {
		if rule.Min != nil && n < *rule.Min {
			return fmt.Sprintf("must be at least %v", *rule.Min)
		}
		if rule.Max != nil && n > *rule.Max {
			return fmt.Sprintf("must be at most %v", *rule.Max)
		}
		if rule.Min == nil && !rule.AllowNegative && n < 0 {
			return "cannot be negative"
		}
	}

	if rule.Pattern != "" {
		if s, ok := value.(string); ok && s != "" {
			if !v.pattern(rule.Pattern).MatchString(s) {
				return "does not match the expected format"
			}
		}
	}

	return ""
}

func checkCross(rule domain.CrossRule, rec fieldRecord) (string, domain.Severity) {
	left, lok := rec[rule.Left].(float64)
	right, rok := rec[rule.Right].(float64)
	if !lok || !rok {
		return "", rule.Severity
	}

	violated := false
	switch rule.Operator {
	case "greater_than":
		violated = left > right
	case "less_than":
		violated = left < right
	case "equals":
		violated = left == right
	}
	if !violated {
		return "", rule.Severity
	}
	return rule.Message, rule.Severity
}

func (v *Validator) pattern(expr string) *regexp.Regexp {
	v.mu.Lock()
	defer v.mu.Unlock()
	if re, ok := v.patterns[expr]; ok {
		return re
	}
	re := regexp.MustCompile(expr)
	v.patterns[expr] = re
	return re
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

func dropFailed(warnings []domain.FieldMessage, failed map[string]struct{}) []domain.FieldMessage {
	if len(failed) == 0 {
		return warnings
	}
	out := warnings[:0]
	for _, w := range warnings {
		if _, bad := failed[w.Field]; !bad {
			out = append(out, w)
		}
	}
	return out
}
