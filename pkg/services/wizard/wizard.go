package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

var (
	// ErrFinalized reports a mutation attempted after the aggregate was
	// finalized at the review step. Back() reopens the session.
	ErrFinalized = errors.New("session is finalized; navigate back to edit")

	ErrScheduleInactive = errors.New("schedule is not active for this session")
)

// GateError reports a refused forward transition and why.
type GateError struct {
	Step   domain.WizardStep
	Reason string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("cannot advance from %s: %s", e.Step, e.Reason)
}

// Controller orchestrates the return-assembly flow on behalf of the external
// UI layer: step sequencing, validation gates, and aggregate recomputation
// after every mutating operation.
type Controller interface {
	CreateSession(ctx context.Context, taxYear int) (domain.Session, error)
	GetSession(ctx context.Context, id string) (domain.Session, error)

	SetAnswer(ctx context.Context, id, questionID string, value any) (domain.QuestionnaireState, error)
	VisibleQuestions(ctx context.Context, id string) ([]domain.QuestionDefinition, error)

	Requirements(ctx context.Context, id string) (domain.RequirementsState, error)
	AcknowledgeRequirements(ctx context.Context, id string) (domain.RequirementsState, error)
	RegisterUpload(ctx context.Context, id string, doc domain.DocumentType, uploadID string) error

	UpdateSchedule(ctx context.Context, id string, data domain.ScheduleData) (domain.ScheduleState, error)
	ValidateSection(ctx context.Context, id string, schedule domain.ScheduleType, section string) (domain.ValidationResult, error)
	Totals(ctx context.Context, id string, schedule domain.ScheduleType) (domain.ScheduleTotals, error)
	Aggregate(ctx context.Context, id string) (domain.Form1040Aggregate, error)

	Next(ctx context.Context, id string) (domain.StepState, error)
	Back(ctx context.Context, id string) (domain.StepState, error)
	Save(ctx context.Context, id string) error
}
