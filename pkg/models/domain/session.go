package domain

// WizardStep is a stop in the return-assembly flow.
type WizardStep string

const (
	StepLanding       WizardStep = "landing"
	StepQuestionnaire WizardStep = "questionnaire"
	StepRequirements  WizardStep = "requirements"
	StepUpload        WizardStep = "upload"
	StepReview        WizardStep = "review"
	StepComplete      WizardStep = "complete"
)

// Schedules holds the per-schedule data records for a session. A nil entry
// means the schedule is not active for this return.
type Schedules struct {
	C *ScheduleCData
	D *ScheduleDData
	E *ScheduleEData
	F *ScheduleFData
}

// Active returns the data records for all active schedules.
func (s Schedules) Active() []ScheduleData {
	var out []ScheduleData
	if s.C != nil {
		out = append(out, s.C)
	}
	if s.D != nil {
		out = append(out, s.D)
	}
	if s.E != nil {
		out = append(out, s.E)
	}
	if s.F != nil {
		out = append(out, s.F)
	}
	return out
}

// Session is one in-progress return. CatalogVersion pins the rule catalog the
// session was started against, so catalog updates never invalidate a return
// mid-completion. Documents maps a required document type to the opaque
// upload identifier returned by the external capture service.
type Session struct {
	ID             string
	CatalogVersion string
	TaxYear        int
	Step           WizardStep
	Answers        map[string]any
	Schedules      Schedules
	Documents      map[DocumentType]string

	// RequirementsSnapshot is the document list presented to the user on
	// entering the requirements step. It only changes through an explicit
	// acknowledgement, never silently.
	RequirementsSnapshot []DocumentType
}

// RequirementsDelta describes how the live document derivation differs from
// the acknowledged snapshot.
type RequirementsDelta struct {
	Added   []DocumentType
	Removed []DocumentType
}

func (d RequirementsDelta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// QuestionnaireState is the result of an answer mutation.
type QuestionnaireState struct {
	Visible           []QuestionDefinition
	RequiredDocuments []DocumentType
	StepComplete      bool
	Pending           RequirementsDelta
}

// RequirementsState exposes the acknowledged snapshot next to the live
// derivation, with the delta between them.
type RequirementsState struct {
	Snapshot []DocumentType
	Current  []DocumentType
	Pending  RequirementsDelta
}

// ScheduleState is the result of a schedule data mutation: fresh totals,
// fresh validation, fresh aggregate. Nothing is patched incrementally.
type ScheduleState struct {
	Totals     ScheduleTotals
	Validation []ValidationResult
	Aggregate  Form1040Aggregate
}

type StepState struct {
	Step         WizardStep
	StepComplete bool
	Aggregate    Form1040Aggregate
}
