package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/fieldkeeper/internal/models"
	"github.com/iudanet/fieldkeeper/internal/server/storage"
	"github.com/iudanet/fieldkeeper/internal/validation"
	"github.com/iudanet/fieldkeeper/pkg/api"
)

// ReplayObserver is notified when a request is answered from the idempotency store.
type ReplayObserver interface {
	Replayed(route string)
}

// FieldHandler serves reports, staff records and the full resync view.
type FieldHandler struct {
	logger      *slog.Logger
	store       storage.FieldStorage
	idempotency storage.IdempotencyStorage
	replays     ReplayObserver
	now         func() time.Time
}

// NewFieldHandler создает handler полевых данных. replays может быть nil.
func NewFieldHandler(logger *slog.Logger, store storage.FieldStorage, idempotency storage.IdempotencyStorage, replays ReplayObserver) *FieldHandler {
	return &FieldHandler{
		logger:      logger,
		store:       store,
		idempotency: idempotency,
		replays:     replays,
		now:         time.Now,
	}
}

// requestError ошибка обработки мутации с HTTP статусом для клиента
type requestError struct {
	message string
	status  int
}

func (e *requestError) Error() string { return e.message }

func badRequest(err error) error {
	return &requestError{status: http.StatusBadRequest, message: err.Error()}
}

// mutation применяет изменение и возвращает ответ для клиента
type mutation func(ctx context.Context, userID string, r *http.Request) (*api.MutationResponse, error)

// SubmitReport обрабатывает POST /api/v1/reports.
// Повторная отправка отчета с тем же id заменяет его.
func (h *FieldHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, userID string, r *http.Request) (*api.MutationResponse, error) {
		var wire api.Report
		if err := decodeBody(r.Body, &wire); err != nil {
			return nil, badRequest(err)
		}

		report := models.ReportFromAPI(wire)
		if report.CapturedAt.IsZero() {
			report.CapturedAt = h.now().UTC()
		}
		if err := report.Validate(); err != nil {
			return nil, badRequest(err)
		}

		if err := h.store.SaveReport(ctx, userID, &report); err != nil {
			return nil, err
		}

		return &api.MutationResponse{ID: report.ID, Applied: true}, nil
	})
}

// DeleteReport обрабатывает DELETE /api/v1/reports/{id}
func (h *FieldHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, userID string, r *http.Request) (*api.MutationResponse, error) {
		id := r.PathValue("id")
		if err := validation.ValidateRecordID("report id", id); err != nil {
			return nil, badRequest(err)
		}

		if err := h.store.DeleteReport(ctx, userID, id); err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				return nil, &requestError{status: http.StatusNotFound, message: "report not found"}
			}
			return nil, err
		}

		return &api.MutationResponse{ID: id, Applied: true}, nil
	})
}

// AddStaff обрабатывает POST /api/v1/staff
func (h *FieldHandler) AddStaff(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, userID string, r *http.Request) (*api.MutationResponse, error) {
		staff, err := h.decodeStaff(r, "")
		if err != nil {
			return nil, err
		}

		applied, err := h.store.AddStaff(ctx, userID, staff)
		if err != nil {
			return nil, err
		}

		return &api.MutationResponse{ID: staff.ID, Applied: applied}, nil
	})
}

// UpdateStaff обрабатывает PUT /api/v1/staff/{id}.
// Устаревшая правка не применяется и возвращается с applied=false.
func (h *FieldHandler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, userID string, r *http.Request) (*api.MutationResponse, error) {
		staff, err := h.decodeStaff(r, r.PathValue("id"))
		if err != nil {
			return nil, err
		}

		applied, err := h.store.UpdateStaff(ctx, userID, staff)
		if err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				return nil, &requestError{status: http.StatusNotFound, message: "staff record not found"}
			}
			return nil, err
		}

		return &api.MutationResponse{ID: staff.ID, Applied: applied}, nil
	})
}

// Resync обрабатывает GET /api/v1/resync: полный срез данных пользователя
func (h *FieldHandler) Resync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	reports, err := h.store.ListReports(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list reports", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	staff, err := h.store.ListStaff(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list staff", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ResyncResponse{
		ServerTime: h.now().UTC(),
		Reports:    make([]api.Report, 0, len(reports)),
		Staff:      make([]api.StaffRecord, 0, len(staff)),
	}
	for _, report := range reports {
		resp.Reports = append(resp.Reports, models.ReportToAPI(report))
	}
	for _, s := range staff {
		resp.Staff = append(resp.Staff, models.StaffToAPI(s))
	}

	h.logger.DebugContext(ctx, "resync served",
		slog.String("user_id", userID),
		slog.Int("reports", len(resp.Reports)),
		slog.Int("staff", len(resp.Staff)))

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// decodeStaff читает запись из тела; pathID, если задан, должен совпадать с id записи
func (h *FieldHandler) decodeStaff(r *http.Request, pathID string) (*models.StaffRecord, error) {
	var wire api.StaffRecord
	if err := decodeBody(r.Body, &wire); err != nil {
		return nil, badRequest(err)
	}

	staff := models.StaffFromAPI(wire)
	if pathID != "" {
		if staff.ID == "" {
			staff.ID = pathID
		}
		if staff.ID != pathID {
			return nil, &requestError{status: http.StatusBadRequest, message: "staff id does not match path"}
		}
	}
	if staff.UpdatedAt.IsZero() {
		staff.UpdatedAt = h.now().UTC()
	}
	if err := staff.Validate(); err != nil {
		return nil, badRequest(err)
	}

	return &staff, nil
}

// mutate выполняет изменение не более одного раза на Idempotency-Key.
// Ответ на уже обработанный ключ берется из хранилища с replayed=true.
func (h *FieldHandler) mutate(w http.ResponseWriter, r *http.Request, apply mutation) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	route := r.Pattern
	key := r.Header.Get(api.IdempotencyKeyHeader)

	if key != "" {
		if len(key) > validation.MaxRecordIDLen*2 {
			sendError(w, h.logger, "idempotency key is too long", http.StatusBadRequest)
			return
		}

		processed, err := h.idempotency.GetProcessedAction(ctx, userID, key)
		switch {
		case err == nil:
			h.replay(w, r, processed)
			return
		case !errors.Is(err, storage.ErrActionNotProcessed):
			h.logger.ErrorContext(ctx, "failed to check idempotency key", slog.Any("error", err))
			sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	resp, err := apply(ctx, userID, r)
	if err != nil {
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			h.logger.WarnContext(ctx, "mutation rejected",
				slog.String("route", route),
				slog.String("user_id", userID),
				slog.String("error", reqErr.message))
			sendError(w, h.logger, reqErr.message, reqErr.status)
			return
		}
		h.logger.ErrorContext(ctx, "mutation failed",
			slog.String("route", route),
			slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	if key != "" {
		h.remember(ctx, userID, key, route, resp)
	}

	h.logger.InfoContext(ctx, "mutation applied",
		slog.String("route", route),
		slog.String("user_id", userID),
		slog.String("id", resp.ID),
		slog.Bool("applied", resp.Applied))

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// remember сохраняет ответ; ошибка не мешает клиенту получить ответ
func (h *FieldHandler) remember(ctx context.Context, userID, key, route string, resp *api.MutationResponse) {
	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to encode processed action", slog.Any("error", err))
		return
	}

	if err := h.idempotency.SaveProcessedAction(ctx, &storage.ProcessedAction{
		UserID:    userID,
		Key:       key,
		Route:     route,
		Status:    http.StatusOK,
		Response:  body,
		CreatedAt: h.now(),
	}); err != nil {
		h.logger.WarnContext(ctx, "failed to store processed action",
			slog.String("key", key),
			slog.Any("error", err))
	}
}

func (h *FieldHandler) replay(w http.ResponseWriter, r *http.Request, processed *storage.ProcessedAction) {
	ctx := r.Context()

	// ключ действия уникален, другой маршрут означает ошибку клиента
	if processed.Route != r.Pattern {
		h.logger.WarnContext(ctx, "idempotency key reused for another route",
			slog.String("key", processed.Key),
			slog.String("stored_route", processed.Route),
			slog.String("route", r.Pattern))
		sendError(w, h.logger, "idempotency key already used for another request", http.StatusUnprocessableEntity)
		return
	}

	var resp api.MutationResponse
	if err := json.Unmarshal(processed.Response, &resp); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode processed action", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}
	resp.Replayed = true

	if h.replays != nil {
		h.replays.Replayed(r.Pattern)
	}

	h.logger.InfoContext(ctx, "mutation replayed",
		slog.String("route", r.Pattern),
		slog.String("key", processed.Key))

	sendJSON(w, h.logger, resp, processed.Status)
}
