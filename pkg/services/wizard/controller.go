package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/adapters"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/catalog"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/calc"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/questionnaire"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/validate"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/store/session"
)

var stepOrder = []domain.WizardStep{
	domain.StepLanding,
	domain.StepQuestionnaire,
	domain.StepRequirements,
	domain.StepUpload,
	domain.StepReview,
	domain.StepComplete,
}

// scheduleDocs maps requirement documents to the schedule they activate.
// Every other document type is a source document satisfied by an upload.
var scheduleDocs = map[domain.DocumentType]domain.ScheduleType{
	domain.DocScheduleC: domain.ScheduleC,
	domain.DocScheduleD: domain.ScheduleD,
	domain.DocScheduleE: domain.ScheduleE,
	domain.DocScheduleF: domain.ScheduleF,
}

// sessionState pairs a session with the lock that serializes access to it.
// The HTTP layer runs every request on its own goroutine, so all reads and
// writes of session data happen under this lock.
type sessionState struct {
	mu sync.Mutex
	s  *domain.Session
}

type controller struct {
	cat       *catalog.Catalog
	calc      *calc.Registry
	validator *validate.Validator
	store     session.Store

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewController wires the engine components behind the wizard surface the UI
// layer calls. The controller exclusively owns the sessions it serves;
// components receive read-only views of session data.
func NewController(
	cat *catalog.Catalog,
	registry *calc.Registry,
	validator *validate.Validator,
	store session.Store,
) Controller {
	return &controller{
		cat:       cat,
		calc:      registry,
		validator: validator,
		store:     store,
		sessions:  make(map[string]*sessionState),
	}
}

func (c *controller) CreateSession(ctx context.Context, taxYear int) (domain.Session, error) {
	s := &domain.Session{
		ID:             uuid.NewString(),
		CatalogVersion: c.cat.Version(),
		TaxYear:        taxYear,
		Step:           domain.StepLanding,
		Answers:        make(map[string]any),
		Documents:      make(map[domain.DocumentType]string),
	}

	c.mu.Lock()
	c.sessions[s.ID] = &sessionState{s: s}
	c.mu.Unlock()

	if err := c.store.Put(ctx, adapters.MapDomainSessionToSnapshot(*s)); err != nil {
		return domain.Session{}, fmt.Errorf("failed to persist new session: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("session_id", s.ID).
		Int("tax_year", taxYear).
		Str("catalog_version", s.CatalogVersion).
		Msg("session created")
	return *s, nil
}

func (c *controller) GetSession(ctx context.Context, id string) (domain.Session, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return *st.s, nil
}

func (c *controller) SetAnswer(ctx context.Context, id, questionID string, value any) (domain.QuestionnaireState, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return domain.QuestionnaireState{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.s
	if finalized(s.Step) {
		return domain.QuestionnaireState{}, ErrFinalized
	}

	engine := questionnaire.New(c.cat, s.Answers)
	visible, err := engine.SetAnswer(questionID, value)
	if err != nil {
		return domain.QuestionnaireState{}, err
	}

	state := domain.QuestionnaireState{
		Visible:           visible,
		RequiredDocuments: engine.RequiredDocuments(),
		StepComplete:      engine.IsStepComplete(),
	}
	// Once a requirements snapshot exists, later answer changes surface as a
	// pending delta for the user to acknowledge instead of silently editing
	// the presented list.
	if s.RequirementsSnapshot != nil {
		state.Pending = requirementsDelta(state.RequiredDocuments, s.RequirementsSnapshot)
	}
	return state, nil
}

func (c *controller) VisibleQuestions(ctx context.Context, id string) ([]domain.QuestionDefinition, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return questionnaire.New(c.cat, st.s.Answers).VisibleQuestions(), nil
}

func (c *controller) Requirements(ctx context.Context, id string) (domain.RequirementsState, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return domain.RequirementsState{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return c.requirements(st.s), nil
}

func (c *controller) AcknowledgeRequirements(ctx context.Context, id string) (domain.RequirementsState, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return domain.RequirementsState{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.s
	if finalized(s.Step) {
		return domain.RequirementsState{}, ErrFinalized
	}
	s.RequirementsSnapshot = questionnaire.New(c.cat, s.Answers).RequiredDocuments()
	zerolog.Ctx(ctx).Info().
		Str("session_id", s.ID).
		Int("documents", len(s.RequirementsSnapshot)).
		Msg("requirements acknowledged")
	return c.requirements(s), nil
}

func (c *controller) RegisterUpload(ctx context.Context, id string, doc domain.DocumentType, uploadID string) error {
	st, err := c.session(ctx, id)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.s
	if finalized(s.Step) {
		return ErrFinalized
	}
	if uploadID == "" {
		return fmt.Errorf("upload id cannot be empty")
	}
	if !containsDoc(s.RequirementsSnapshot, doc) {
		return fmt.Errorf("document %s is not on the required list", doc)
	}
	s.Documents[doc] = uploadID
	return nil
}

func (c *controller) UpdateSchedule(ctx context.Context, id string, data domain.ScheduleData) (domain.ScheduleState, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return domain.ScheduleState{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.s
	if finalized(s.Step) {
		return domain.ScheduleState{}, ErrFinalized
	}

	switch d := data.(type) {
	case *domain.ScheduleCData:
		if d.TaxYear == 0 {
			d.TaxYear = s.TaxYear
		}
		s.Schedules.C = d
	case *domain.ScheduleDData:
		if d.TaxYear == 0 {
			d.TaxYear = s.TaxYear
		}
		s.Schedules.D = d
	case *domain.ScheduleEData:
		if d.TaxYear == 0 {
			d.TaxYear = s.TaxYear
		}
		s.Schedules.E = d
	case *domain.ScheduleFData:
		if d.TaxYear == 0 {
			d.TaxYear = s.TaxYear
		}
		s.Schedules.F = d
	default:
		return domain.ScheduleState{}, fmt.Errorf("%w: %T", calc.ErrUnknownScheduleType, data)
	}

	totals, err := c.calc.Calculate(data)
	if err != nil {
		return domain.ScheduleState{}, err
	}
	validation, err := c.validator.ValidateSchedule(data)
	if err != nil {
		return domain.ScheduleState{}, err
	}
	return domain.ScheduleState{
		Totals:     totals,
		Validation: validation,
		Aggregate:  c.aggregate(s),
	}, nil
}

func (c *controller) ValidateSection(
	ctx context.Context,
	id string,
	schedule domain.ScheduleType,
	section string,
) (domain.ValidationResult, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	data := scheduleData(st.s, schedule)
	if data == nil {
		return domain.ValidationResult{}, fmt.Errorf("%w: %s", ErrScheduleInactive, schedule)
	}
	return c.validator.ValidateSection(schedule, section, data)
}

func (c *controller) Totals(ctx context.Context, id string, schedule domain.ScheduleType) (domain.ScheduleTotals, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return domain.ScheduleTotals{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	data := scheduleData(st.s, schedule)
	if data == nil {
		return domain.ScheduleTotals{}, fmt.Errorf("%w: %s", ErrScheduleInactive, schedule)
	}
	return c.calc.Calculate(data)
}

func (c *controller) Aggregate(ctx context.Context, id string) (domain.Form1040Aggregate, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return domain.Form1040Aggregate{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return c.aggregate(st.s), nil
}

func (c *controller) Next(ctx context.Context, id string) (domain.StepState, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return domain.StepState{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.s

	switch s.Step {
	case domain.StepLanding:
		s.Step = domain.StepQuestionnaire

	case domain.StepQuestionnaire:
		engine := questionnaire.New(c.cat, s.Answers)
		if !engine.IsStepComplete() {
			return domain.StepState{}, &GateError{Step: s.Step, Reason: "required questions are unanswered"}
		}
		s.Step = domain.StepRequirements
		s.RequirementsSnapshot = engine.RequiredDocuments()

	case domain.StepRequirements:
		if pending := c.requirements(s).Pending; !pending.Empty() {
			return domain.StepState{}, &GateError{Step: s.Step, Reason: "document requirements changed and must be acknowledged"}
		}
		s.Step = domain.StepUpload

	case domain.StepUpload:
		if reason := c.uploadGate(s); reason != "" {
			return domain.StepState{}, &GateError{Step: s.Step, Reason: reason}
		}
		s.Step = domain.StepReview

	case domain.StepReview:
		s.Step = domain.StepComplete

	case domain.StepComplete:
		return domain.StepState{}, &GateError{Step: s.Step, Reason: "the return is already complete"}

	default:
		return domain.StepState{}, fmt.Errorf("unknown wizard step %q", s.Step)
	}

	zerolog.Ctx(ctx).Debug().
		Str("session_id", s.ID).
		Str("step", string(s.Step)).
		Msg("advanced")
	return c.stepState(s), nil
}

// Back is always permitted and never discards entered data.
func (c *controller) Back(ctx context.Context, id string) (domain.StepState, error) {
	st, err := c.session(ctx, id)
	if err != nil {
		return domain.StepState{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.s
	for i, step := range stepOrder {
		if step == s.Step && i > 0 {
			s.Step = stepOrder[i-1]
			break
		}
	}
	return c.stepState(s), nil
}

func (c *controller) Save(ctx context.Context, id string) error {
	st, err := c.session(ctx, id)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := c.store.Put(ctx, adapters.MapDomainSessionToSnapshot(*st.s)); err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}
	return nil
}

// uploadGate checks the review entry conditions: every schedule named by the
// requirements snapshot is started and free of validation errors, and every
// source document has a registered upload.
func (c *controller) uploadGate(s *domain.Session) string {
	for _, doc := range s.RequirementsSnapshot {
		schedule, isSchedule := scheduleDocs[doc]
		if !isSchedule {
			if _, uploaded := s.Documents[doc]; !uploaded {
				return fmt.Sprintf("document %s has not been uploaded", doc)
			}
			continue
		}

		data := scheduleData(s, schedule)
		if data == nil {
			return fmt.Sprintf("%s has not been started", schedule)
		}
		results, err := c.validator.ValidateSchedule(data)
		if err != nil {
			return err.Error()
		}
		for _, result := range results {
			if !result.IsValid {
				return fmt.Sprintf("%s section %q has validation errors", schedule, result.Section)
			}
		}
	}
	return ""
}

func (c *controller) requirements(s *domain.Session) domain.RequirementsState {
	current := questionnaire.New(c.cat, s.Answers).RequiredDocuments()
	state := domain.RequirementsState{
		Snapshot: s.RequirementsSnapshot,
		Current:  current,
	}
	if s.RequirementsSnapshot != nil {
		state.Pending = requirementsDelta(current, s.RequirementsSnapshot)
	}
	return state
}

func (c *controller) stepState(s *domain.Session) domain.StepState {
	state := domain.StepState{Step: s.Step, StepComplete: true, Aggregate: c.aggregate(s)}
	switch s.Step {
	case domain.StepQuestionnaire:
		state.StepComplete = questionnaire.New(c.cat, s.Answers).IsStepComplete()
	case domain.StepRequirements:
		state.StepComplete = c.requirements(s).Pending.Empty()
	case domain.StepUpload:
		state.StepComplete = c.uploadGate(s) == ""
	}
	return state
}

// session returns the lock-carrying state for a session, loading it from the
// store on first access. c.mu guards only the map; callers take st.mu before
// touching st.s.
func (c *controller) session(ctx context.Context, id string) (*sessionState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.sessions[id]; ok {
		return st, nil
	}
	snapshot, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s := adapters.MapSnapshotToDomainSession(snapshot)
	if s.Answers == nil {
		s.Answers = make(map[string]any)
	}
	if s.Documents == nil {
		s.Documents = make(map[domain.DocumentType]string)
	}
	st := &sessionState{s: &s}
	c.sessions[id] = st
	return st, nil
}

func scheduleData(s *domain.Session, schedule domain.ScheduleType) domain.ScheduleData {
	switch schedule {
	case domain.ScheduleC:
		if s.Schedules.C != nil {
			return s.Schedules.C
		}
	case domain.ScheduleD:
		if s.Schedules.D != nil {
			return s.Schedules.D
		}
	case domain.ScheduleE:
		if s.Schedules.E != nil {
			return s.Schedules.E
		}
	case domain.ScheduleF:
		if s.Schedules.F != nil {
			return s.Schedules.F
		}
	}
	return nil
}

func finalized(step domain.WizardStep) bool {
	return step == domain.StepReview || step == domain.StepComplete
}

func requirementsDelta(current, snapshot []domain.DocumentType) domain.RequirementsDelta {
	var delta domain.RequirementsDelta
	for _, doc := range current {
		if !containsDoc(snapshot, doc) {
			delta.Added = append(delta.Added, doc)
		}
	}
	for _, doc := range snapshot {
		if !containsDoc(current, doc) {
			delta.Removed = append(delta.Removed, doc)
		}
	}
	return delta
}

func containsDoc(list []domain.DocumentType, doc domain.DocumentType) bool {
	for _, item := range list {
		if item == doc {
			return true
		}
	}
	return false
}
