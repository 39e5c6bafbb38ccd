package questionnaire

import (
	"fmt"
	"sort"
	"time"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/catalog"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

// TypeMismatchError reports a user-supplied answer whose shape disagrees with
// the question's declared answer type. It is surfaced to the UI as a
// field-level problem, never thrown across the API boundary.
type TypeMismatchError struct {
	Question string
	Expected domain.AnswerType
	Reason   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("answer for %q does not match type %s: %s", e.Question, e.Expected, e.Reason)
}

// Engine evaluates the questionnaire against the current answer set: which
// questions are visible, which documents the answers require, and whether the
// step is complete. It is the only mutator of the answer set.
//
// Hiding a question does not clear its answer; reverting an earlier answer
// restores the previously entered path. Hidden answers are excluded from
// visibility, completeness, and document derivation while hidden.
type Engine struct {
	cat     *catalog.Catalog
	answers map[string]any
}

// New wraps an answer set owned by the caller's session. A nil map starts an
// empty questionnaire.
func New(cat *catalog.Catalog, answers map[string]any) *Engine {
	if answers == nil {
		answers = make(map[string]any)
	}
	return &Engine{cat: cat, answers: answers}
}

// Answers exposes the underlying answer set for persistence. Callers must not
// mutate it directly.
func (e *Engine) Answers() map[string]any { return e.answers }

// SetAnswer validates and stores one answer, then returns the resulting
// visible question list. Unknown ids indicate a catalog/code mismatch and
// fail with catalog.ErrUnknownQuestion; ill-shaped values fail with
// *TypeMismatchError.
func (e *Engine) SetAnswer(id string, value any) ([]domain.QuestionDefinition, error) {
	q, err := e.cat.Question(id)
	if err != nil {
		return nil, err
	}
	normalized, err := normalize(q, value)
	if err != nil {
		return nil, err
	}
	e.answers[id] = normalized
	return e.VisibleQuestions(), nil
}

// VisibleQuestions evaluates visibility in catalog order. A question with no
// condition is always visible; a condition over an unanswered or hidden
// question keeps the dependent question hidden.
func (e *Engine) VisibleQuestions() []domain.QuestionDefinition {
	var out []domain.QuestionDefinition
	visible := e.visibility()
	for _, q := range e.cat.Questions() {
		if visible[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

// RequiredDocuments derives the document set from all visible, answered
// questions whose answer satisfies the trigger predicate. Fully recomputed on
// every call; the catalog is small enough that correctness beats diffing.
func (e *Engine) RequiredDocuments() []domain.DocumentType {
	seen := make(map[domain.DocumentType]struct{})
	for _, q := range e.VisibleQuestions() {
		if len(q.Documents) == 0 {
			continue
		}
		answer, ok := e.answers[q.ID]
		if !ok || !triggered(q, answer) {
			continue
		}
		for _, d := range q.Documents {
			seen[d] = struct{}{}
		}
	}
	out := make([]domain.DocumentType, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsStepComplete reports whether every visible required question holds a
// well-typed, non-empty answer.
func (e *Engine) IsStepComplete() bool {
	for _, q := range e.VisibleQuestions() {
		if !q.Required {
			continue
		}
		answer, ok := e.answers[q.ID]
		if !ok {
			return false
		}
		if _, err := normalize(q, answer); err != nil {
			return false
		}
	}
	return true
}

// visibility resolves the visible set transitively: a condition only holds
// when the question it references is itself visible and answered.
func (e *Engine) visibility() map[string]bool {
	questions := e.cat.Questions()
	byID := make(map[string]domain.QuestionDefinition, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	memo := make(map[string]bool, len(questions))
	var resolve func(id string) bool
	resolve = func(id string) bool {
		if v, done := memo[id]; done {
			return v
		}
		// Break cycles conservatively: a question participating in a
		// condition cycle stays hidden.
		memo[id] = false

		q := byID[id]
		if q.VisibleWhen == nil {
			memo[id] = true
			return true
		}
		cond := q.VisibleWhen
		if !resolve(cond.Question) {
			return false
		}
		answer, ok := e.answers[cond.Question]
		if !ok {
			return false
		}
		memo[id] = conditionHolds(cond, answer)
		return memo[id]
	}

	for _, q := range questions {
		resolve(q.ID)
	}
	return memo
}

func conditionHolds(cond *domain.VisibilityCondition, answer any) bool {
	switch cond.Operator {
	case domain.OperatorEquals:
		return looseEqual(answer, cond.Value)
	case domain.OperatorNotEquals:
		return !looseEqual(answer, cond.Value)
	case domain.OperatorIn:
		values, ok := cond.Value.([]any)
		if !ok {
			return false
		}
		for _, v := range values {
			if looseEqual(answer, v) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// triggered reports whether an answer arms the question's document trigger.
func triggered(q domain.QuestionDefinition, answer any) bool {
	switch q.Type {
	case domain.AnswerTypeBoolean:
		b, ok := answer.(bool)
		return ok && b
	case domain.AnswerTypeSingleChoice:
		s, ok := answer.(string)
		if !ok || s == "" {
			return false
		}
		if len(q.TriggerOn) == 0 {
			return true
		}
		return contains(q.TriggerOn, s)
	case domain.AnswerTypeMultiChoice:
		selected := toStringSlice(answer)
		if len(selected) == 0 {
			return false
		}
		if len(q.TriggerOn) == 0 {
			return true
		}
		for _, s := range selected {
			if contains(q.TriggerOn, s) {
				return true
			}
		}
		return false
	case domain.AnswerTypeNumeric, domain.AnswerTypeDate:
		return answer != nil
	default:
		return false
	}
}

// normalize checks an incoming value against the declared answer type and
// returns the canonical in-memory representation (float64 numerics, []string
// selections). Values arriving from JSON or a reloaded snapshot normalize to
// the same representation, which keeps document derivation deterministic
// across a save/load round trip.
func normalize(q domain.QuestionDefinition, value any) (any, error) {
	mismatch := func(reason string) (any, error) {
		return nil, &TypeMismatchError{Question: q.ID, Expected: q.Type, Reason: reason}
	}

	switch q.Type {
	case domain.AnswerTypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return mismatch("expected a boolean")
		}
		return b, nil

	case domain.AnswerTypeNumeric:
		var n float64
		switch v := value.(type) {
		case float64:
			n = v
		case float32:
			n = float64(v)
		case int:
			n = float64(v)
		case int64:
			n = float64(v)
		default:
			return mismatch("expected a number")
		}
		if q.Min != nil && n < *q.Min {
			return mismatch(fmt.Sprintf("value %v is below minimum %v", n, *q.Min))
		}
		if q.Max != nil && n > *q.Max {
			return mismatch(fmt.Sprintf("value %v is above maximum %v", n, *q.Max))
		}
		return n, nil

	case domain.AnswerTypeSingleChoice:
		s, ok := value.(string)
		if !ok {
			return mismatch("expected a choice value")
		}
		if len(q.Options) > 0 && !contains(q.Options, s) {
			return mismatch(fmt.Sprintf("%q is not one of the available options", s))
		}
		return s, nil

	case domain.AnswerTypeMultiChoice:
		selected := toStringSlice(value)
		if selected == nil {
			return mismatch("expected a list of choice values")
		}
		for _, s := range selected {
			if len(q.Options) > 0 && !contains(q.Options, s) {
				return mismatch(fmt.Sprintf("%q is not one of the available options", s))
			}
		}
		return selected, nil

	case domain.AnswerTypeDate:
		s, ok := value.(string)
		if !ok {
			return mismatch("expected a date string")
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return mismatch("expected YYYY-MM-DD")
		}
		return s, nil

	default:
		return mismatch(fmt.Sprintf("unsupported answer type %q", q.Type))
	}
}

// looseEqual compares an answer to a condition value, bridging the numeric
// and slice representations YAML and JSON decoders produce.
func looseEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// toStringSlice accepts both []string and the []any a JSON decoder yields.
// Returns nil (not an empty slice) when the value is not a string list.
func toStringSlice(v any) []string {
	switch vs := v.(type) {
	case []string:
		out := make([]string, len(vs))
		copy(out, vs)
		return out
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
