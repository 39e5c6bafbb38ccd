package wizard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/adapters"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/catalog"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/api"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/questionnaire"
	wizardsvc "github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/wizard"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/store/session"
)

type Handler struct {
	controller wizardsvc.Controller
}

func NewHandler(controller wizardsvc.Controller) *Handler {
	return &Handler{controller: controller}
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req api.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s, err := h.controller.CreateSession(ctx, req.TaxYear)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, r, adapters.MapDomainSessionToAPI(s))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.controller.GetSession(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapDomainSessionToAPI(s))
}

func (h *Handler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "session")
	questionID := chi.URLParam(r, "question")

	var req api.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	state, err := h.controller.SetAnswer(ctx, id, questionID, req.Value)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapQuestionnaireStateToAPI(state))
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	visible, err := h.controller.VisibleQuestions(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	out := make([]api.Question, 0, len(visible))
	for _, q := range visible {
		out = append(out, adapters.MapDomainQuestionToAPI(q))
	}
	writeJSON(w, r, out)
}

func (h *Handler) GetRequirements(w http.ResponseWriter, r *http.Request) {
	state, err := h.controller.Requirements(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapRequirementsStateToAPI(state))
}

func (h *Handler) AcknowledgeRequirements(w http.ResponseWriter, r *http.Request) {
	state, err := h.controller.AcknowledgeRequirements(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapRequirementsStateToAPI(state))
}

func (h *Handler) RegisterUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "session")
	doc := domain.DocumentType(chi.URLParam(r, "document"))

	var req api.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := h.controller.RegisterUpload(ctx, id, doc, req.UploadID); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "session")
	schedule := domain.ScheduleType(chi.URLParam(r, "schedule"))

	data, err := decodeSchedule(schedule, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	state, err := h.controller.UpdateSchedule(ctx, id, data)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapScheduleStateToAPI(state))
}

func (h *Handler) ValidateSection(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.ValidateSection(
		r.Context(),
		chi.URLParam(r, "session"),
		domain.ScheduleType(chi.URLParam(r, "schedule")),
		chi.URLParam(r, "section"),
	)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapValidationResultToAPI(result))
}

func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.controller.Totals(
		r.Context(),
		chi.URLParam(r, "session"),
		domain.ScheduleType(chi.URLParam(r, "schedule")),
	)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapScheduleTotalsToAPI(totals))
}

func (h *Handler) GetReturn(w http.ResponseWriter, r *http.Request) {
	aggregate, err := h.controller.Aggregate(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapAggregateToAPI(aggregate))
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.controller.Next(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapStepStateToAPI(state))
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	state, err := h.controller.Back(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapStepStateToAPI(state))
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Save(r.Context(), chi.URLParam(r, "session")); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeSchedule(schedule domain.ScheduleType, r *http.Request) (domain.ScheduleData, error) {
	switch schedule {
	case domain.ScheduleC:
		var payload api.ScheduleC
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, err
		}
		return adapters.MapAPIScheduleCToDomain(payload), nil
	case domain.ScheduleD:
		var payload api.ScheduleD
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, err
		}
		return adapters.MapAPIScheduleDToDomain(payload), nil
	case domain.ScheduleE:
		var payload api.ScheduleE
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, err
		}
		return adapters.MapAPIScheduleEToDomain(payload), nil
	case domain.ScheduleF:
		var payload api.ScheduleF
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, err
		}
		return adapters.MapAPIScheduleFToDomain(payload), nil
	default:
		return nil, errors.New("unknown schedule type " + string(schedule))
	}
}

// writeFailure maps engine errors onto HTTP statuses. Data-shaped outcomes
// (validation results) never arrive here; they are encoded as payloads.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var typeMismatch *questionnaire.TypeMismatchError
	var gate *wizardsvc.GateError

	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err)
	case errors.Is(err, wizardsvc.ErrScheduleInactive):
		writeError(w, r, http.StatusNotFound, err)
	case errors.As(err, &typeMismatch):
		writeError(w, r, http.StatusUnprocessableEntity, err)
	case errors.Is(err, catalog.ErrUnknownQuestion), errors.Is(err, catalog.ErrUnknownRuleSet):
		writeError(w, r, http.StatusBadRequest, err)
	case errors.As(err, &gate), errors.Is(err, wizardsvc.ErrFinalized):
		writeError(w, r, http.StatusConflict, err)
	default:
		writeError(w, r, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
