package adapters

import (
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/store"
)

// MapDomainSessionToSnapshot converts an in-memory session to its persisted
// form.
func MapDomainSessionToSnapshot(s domain.Session) store.SessionSnapshot {
	snapshot := store.SessionSnapshot{
		ID:             s.ID,
		CatalogVersion: s.CatalogVersion,
		TaxYear:        s.TaxYear,
		Step:           string(s.Step),
		Answers:        s.Answers,
		Schedules: store.ScheduleSnapshot{
			C: s.Schedules.C,
			D: s.Schedules.D,
			E: s.Schedules.E,
			F: s.Schedules.F,
		},
	}
	if len(s.Documents) > 0 {
		snapshot.Documents = make(map[string]string, len(s.Documents))
		for doc, uploadID := range s.Documents {
			snapshot.Documents[string(doc)] = uploadID
		}
	}
	for _, doc := range s.RequirementsSnapshot {
		snapshot.Requirements = append(snapshot.Requirements, string(doc))
	}
	return snapshot
}

// MapSnapshotToDomainSession restores a session from its persisted form,
// normalizing answer values so a reloaded session derives the same visible
// questions and required documents as the pre-save one.
func MapSnapshotToDomainSession(snapshot store.SessionSnapshot) domain.Session {
	s := domain.Session{
		ID:             snapshot.ID,
		CatalogVersion: snapshot.CatalogVersion,
		TaxYear:        snapshot.TaxYear,
		Step:           domain.WizardStep(snapshot.Step),
		Answers:        normalizeAnswers(snapshot.Answers),
		Schedules: domain.Schedules{
			C: snapshot.Schedules.C,
			D: snapshot.Schedules.D,
			E: snapshot.Schedules.E,
			F: snapshot.Schedules.F,
		},
		Documents: make(map[domain.DocumentType]string, len(snapshot.Documents)),
	}
	for doc, uploadID := range snapshot.Documents {
		s.Documents[domain.DocumentType(doc)] = uploadID
	}
	for _, doc := range snapshot.Requirements {
		s.RequirementsSnapshot = append(s.RequirementsSnapshot, domain.DocumentType(doc))
	}
	return s
}

// normalizeAnswers folds decoder-specific representations back to the
// engine's canonical ones: integral numbers to float64, string lists to
// []string.
func normalizeAnswers(answers map[string]any) map[string]any {
	out := make(map[string]any, len(answers))
	for id, value := range answers {
		out[id] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case []any:
		strings := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return v
			}
			strings = append(strings, s)
		}
		return strings
	default:
		return value
	}
}
