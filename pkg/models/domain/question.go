package domain

// AnswerType declares the shape of the value a question accepts.
type AnswerType string

const (
	AnswerTypeBoolean      AnswerType = "boolean"
	AnswerTypeSingleChoice AnswerType = "single_choice"
	AnswerTypeMultiChoice  AnswerType = "multi_choice"
	AnswerTypeNumeric      AnswerType = "numeric"
	AnswerTypeDate         AnswerType = "date"
)

// DocumentType identifies a source document the taxpayer must provide.
type DocumentType string

const (
	DocScheduleC         DocumentType = "SCHEDULE_C"
	DocScheduleD         DocumentType = "SCHEDULE_D"
	DocScheduleE         DocumentType = "SCHEDULE_E"
	DocScheduleF         DocumentType = "SCHEDULE_F"
	DocForm1099NEC       DocumentType = "FORM_1099_NEC"
	DocForm1099K         DocumentType = "FORM_1099_K"
	DocForm1099B         DocumentType = "FORM_1099_B"
	DocForm1098          DocumentType = "FORM_1098"
	DocFormW2            DocumentType = "FORM_W2"
	DocMileageLog        DocumentType = "MILEAGE_LOG"
	DocHomeOfficeRecords DocumentType = "HOME_OFFICE_RECORDS"
)

type ConditionOperator string

const (
	OperatorEquals    ConditionOperator = "equals"
	OperatorNotEquals ConditionOperator = "not_equals"
	OperatorIn        ConditionOperator = "in"
)

// VisibilityCondition is a declarative predicate over a previously given
// answer. A question whose condition references an unanswered question is
// treated as not yet visible.
type VisibilityCondition struct {
	Question string
	Operator ConditionOperator
	Value    any
}

// QuestionDefinition is an immutable catalog entry. Documents lists the
// document types required when the answer satisfies the trigger: boolean
// questions trigger on true, choice questions trigger when the answer matches
// one of TriggerOn (or any answer when TriggerOn is empty).
type QuestionDefinition struct {
	ID          string
	Prompt      string
	Type        AnswerType
	Required    bool
	Options     []string
	Min         *float64
	Max         *float64
	Documents   []DocumentType
	TriggerOn   []string
	VisibleWhen *VisibilityCondition
}
