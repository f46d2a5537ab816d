package rest

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
	"github.com/juristack/lawoffice-backend/internal/service/export"
	appointmentsvc "github.com/juristack/lawoffice-backend/internal/service/appointment"
	caseopssvc "github.com/juristack/lawoffice-backend/internal/service/caseops"
	clientsvc "github.com/juristack/lawoffice-backend/internal/service/client"
	documentsvc "github.com/juristack/lawoffice-backend/internal/service/document"
	ledgersvc "github.com/juristack/lawoffice-backend/internal/service/ledger"
)

// Services bundles the application services the handlers dispatch to.
type Services struct {
	Clients      *clientsvc.Service
	Cases        *caseopssvc.Service
	Documents    *documentsvc.Service
	Appointments *appointmentsvc.Service
	Ledger       *ledgersvc.Service
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	services *Services
	logger   *zap.Logger
}

// NewHandler creates the handler set.
func NewHandler(services *Services, logger *zap.Logger) *Handler {
	return &Handler{services: services, logger: logger}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		var fe validation.FieldErrors
		fe.Reject("id", validation.KindMalformed, "invalid id in path")
		return uuid.Nil, fe.Err()
	}
	return id, nil
}

// Clients

func (h *Handler) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	c, err := h.services.Clients.Register(r.Context(), req.toInput())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	c, err := h.services.Clients.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"
	clients, err := h.services.Clients.List(r.Context(), onlyActive)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *Handler) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req createClientRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	c, err := h.services.Clients.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeactivateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.services.Clients.Deactivate(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleExportClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.services.Clients.List(r.Context(), false)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="clientes.csv"`)
	if err := export.Clients(w, clients); err != nil {
		h.logger.Error("client export failed", zap.Error(err))
	}
}

// Cases

func (h *Handler) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	c, err := h.services.Cases.Open(r.Context(), req.toInput())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleGetCase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	c, err := h.services.Cases.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleListClientCases(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	cases, err := h.services.Cases.ListByClient(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cases)
}

func (h *Handler) handleCreateDeadline(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req createDeadlineRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	d, err := h.services.Cases.RecordDeadline(r.Context(), legalcaseDeadlineInput(caseID, req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) handleCreateCaseUpdate(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req createCaseUpdateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	u, err := h.services.Cases.RecordUpdate(r.Context(), legalcaseUpdateInput(caseID, req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Documents

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	d, err := h.services.Documents.Attach(r.Context(), req.toInput())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	d, err := h.services.Documents.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) handleListCaseDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	docs, err := h.services.Documents.ListByCase(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.services.Documents.Remove(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Appointments

func (h *Handler) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	a, err := h.services.Appointments.Schedule(r.Context(), req.toInput())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleListUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.services.Appointments.ListUpcoming(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

func (h *Handler) handleConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	a, err := h.services.Appointments.Confirm(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) handleCancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	a, err := h.services.Appointments.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Ledger

func (h *Handler) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	e, err := h.services.Ledger.Record(r.Context(), req.toInput())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) handleMarkEntryPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req markPaidRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	e, err := h.services.Ledger.MarkPaid(r.Context(), id, req.PaidAt)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) handleCaseLedger(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	entries, err := h.services.Ledger.ListByCase(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleCaseBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	balance, err := h.services.Ledger.CaseBalance(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"balance": balance.String()})
}

func (h *Handler) handleCreateFeeContract(w http.ResponseWriter, r *http.Request) {
	var req createFeeContractRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	fc, err := h.services.Ledger.Contract(r.Context(), req.toInput())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, fc)
}

func (h *Handler) handleExportCaseLedger(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	entries, err := h.services.Ledger.ListByCase(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="financeiro.csv"`)
	if err := export.Ledger(w, entries); err != nil {
		h.logger.Error("ledger export failed", zap.Error(err))
	}
}
