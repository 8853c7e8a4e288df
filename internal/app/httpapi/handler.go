// Package httpapi exposes the sandbox REST API.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	app "github.com/sellsense/ef-sandbox/internal/app"
	"github.com/sellsense/ef-sandbox/internal/app/domain/docrequest"
	"github.com/sellsense/ef-sandbox/internal/app/domain/recipient"
	"github.com/sellsense/ef-sandbox/internal/app/domain/transaction"
	"github.com/sellsense/ef-sandbox/internal/app/metrics"
	"github.com/sellsense/ef-sandbox/internal/app/seed"
	"github.com/sellsense/ef-sandbox/internal/app/services/ledger"
	"github.com/sellsense/ef-sandbox/internal/app/services/onboarding"
	recipientsvc "github.com/sellsense/ef-sandbox/internal/app/services/recipients"
	"github.com/sellsense/ef-sandbox/internal/app/storage"
)

// APIPrefix is the base path the embedded-finance API is served under.
const APIPrefix = "/ef/do/v1"

const (
	defaultRecipientPageSize   = 25
	maxRecipientPageSize       = 25
	defaultTransactionPageSize = 10
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app *app.Application
}

// NewHandler returns a router exposing the sandbox REST API.
func NewHandler(application *app.Application) http.Handler {
	h := &handler{app: application}
	r := mux.NewRouter()

	r.HandleFunc("/ping", h.ping).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/_reset", h.reset).Methods(http.MethodPost)
	r.HandleFunc("/_status", h.status).Methods(http.MethodGet)
	r.HandleFunc("/_scenarios", h.scenarios).Methods(http.MethodGet)

	api := r.PathPrefix(APIPrefix).Subrouter()

	api.HandleFunc("/clients", h.createClient).Methods(http.MethodPost)
	api.HandleFunc("/clients", h.listClients).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id}", h.getClient).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id}", h.updateClient).Methods(http.MethodPost)
	api.HandleFunc("/clients/{id}/verifications", h.verifyClient).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}", h.amendParty).Methods(http.MethodPost)

	api.HandleFunc("/document-requests", h.listDocumentRequests).Methods(http.MethodGet)
	api.HandleFunc("/document-requests", h.upsertDocumentRequest).Methods(http.MethodPost)
	api.HandleFunc("/document-requests/{id}", h.getDocumentRequest).Methods(http.MethodGet)
	api.HandleFunc("/document-requests/{id}/submit", h.submitDocumentRequest).Methods(http.MethodPost)
	api.HandleFunc("/questions", h.listQuestions).Methods(http.MethodGet)
	api.HandleFunc("/documents", h.createDocument).Methods(http.MethodPost)
	api.HandleFunc("/documents/{id}", h.getDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/file", h.getDocumentFile).Methods(http.MethodGet)

	api.HandleFunc("/recipients", h.createRecipient).Methods(http.MethodPost)
	api.HandleFunc("/recipients", h.listRecipients).Methods(http.MethodGet)
	api.HandleFunc("/recipients/{id}", h.getRecipient).Methods(http.MethodGet)
	api.HandleFunc("/recipients/{id}", h.amendRecipient).Methods(http.MethodPost)
	api.HandleFunc("/recipients/{id}/verify-microdeposit", h.verifyMicrodeposit).Methods(http.MethodPost)
	api.HandleFunc("/payment-recipients", h.listPaymentRecipients).Methods(http.MethodGet)

	api.HandleFunc("/accounts", h.listAccounts).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}", h.getAccount).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}/balances", h.getAccountBalance).Methods(http.MethodGet)

	api.HandleFunc("/transactions", h.listTransactions).Methods(http.MethodGet)
	api.HandleFunc("/transactions", h.createTransaction).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id}", h.getTransaction).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{id}", h.updateTransactionStatus).Methods(http.MethodPatch)

	return r
}

// Service endpoints ----------------------------------------------------------

func (h *handler) ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) reset(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Scenario string `json:"scenario"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := h.app.Seed.Reset(r.Context(), payload.Scenario)
	metrics.RecordSeedReset(result.Scenario, result.Success)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	status, err := h.app.Seed.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *handler) scenarios(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": h.app.Seed.ScenarioDescriptors(),
		"default":   seed.DefaultScenario,
	})
}

// Clients and parties --------------------------------------------------------

func (h *handler) createClient(w http.ResponseWriter, r *http.Request) {
	var payload onboarding.CreateClientInput
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := h.app.Onboarding.CreateClient(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *handler) listClients(w http.ResponseWriter, r *http.Request) {
	views, err := h.app.Onboarding.ListClients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": views})
}

func (h *handler) getClient(w http.ResponseWriter, r *http.Request) {
	view, err := h.app.Onboarding.GetClient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Client not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handler) updateClient(w http.ResponseWriter, r *http.Request) {
	var payload onboarding.UpdateClientInput
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := h.app.Onboarding.UpdateClient(r.Context(), mux.Vars(r)["id"], payload)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Client not found")
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handler) verifyClient(w http.ResponseWriter, r *http.Request) {
	var payload onboarding.VerificationRequest
	if err := decodeJSON(r.Body, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	receipt, err := h.app.Onboarding.VerifyClient(r.Context(), mux.Vars(r)["id"], payload)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Client not found")
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *handler) amendParty(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := decodeJSON(r.Body, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	updated, err := h.app.Onboarding.AmendParty(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Party not found")
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Document requests, questions and documents ---------------------------------

func (h *handler) listDocumentRequests(w http.ResponseWriter, r *http.Request) {
	clientID := strings.TrimSpace(r.URL.Query().Get("clientId"))
	if clientID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "clientId is required")
		return
	}

	requests, err := h.app.Onboarding.ListDocumentRequests(r.Context(), clientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documentRequests": requests})
}

func (h *handler) upsertDocumentRequest(w http.ResponseWriter, r *http.Request) {
	var payload docrequest.DocumentRequest
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	dr, err := h.app.Onboarding.UpsertDocumentRequest(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, dr)
}

func (h *handler) getDocumentRequest(w http.ResponseWriter, r *http.Request) {
	dr, err := h.app.Onboarding.GetDocumentRequest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Document request not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, dr)
}

func (h *handler) submitDocumentRequest(w http.ResponseWriter, r *http.Request) {
	dr, err := h.app.Onboarding.SubmitDocumentRequest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Document request not found")
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, dr)
}

func (h *handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if raw := strings.TrimSpace(r.URL.Query().Get("questionIds")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": h.app.Onboarding.Questions(ids)})
}

func (h *handler) createDocument(w http.ResponseWriter, r *http.Request) {
	var payload onboarding.CreateDocumentInput
	if err := decodeJSON(r.Body, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.app.Onboarding.CreateDocument(payload))
}

func (h *handler) getDocument(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Onboarding.GetDocument(mux.Vars(r)["id"]))
}

func (h *handler) getDocumentFile(w http.ResponseWriter, r *http.Request) {
	file := h.app.Onboarding.DocumentFile()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="sample-document.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file)
}

// Recipients -----------------------------------------------------------------

func (h *handler) createRecipient(w http.ResponseWriter, r *http.Request) {
	var payload recipient.Recipient
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.app.Recipients.CreateRecipient(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) listRecipients(w http.ResponseWriter, r *http.Request) {
	h.writeRecipientPage(w, r, recipientsvc.Filter{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	})
}

func (h *handler) listPaymentRecipients(w http.ResponseWriter, r *http.Request) {
	h.writeRecipientPage(w, r, recipientsvc.Filter{
		Type:   string(recipient.TypeRecipient),
		Status: r.URL.Query().Get("status"),
	})
}

// writeRecipientPage serves the zero-based recipient pagination shared by
// the recipients and payment-recipients listings.
func (h *handler) writeRecipientPage(w http.ResponseWriter, r *http.Request, filter recipientsvc.Filter) {
	all, err := h.app.Recipients.ListRecipients(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if !hasPageParams(r) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"recipients":  all,
			"page":        0,
			"limit":       len(all),
			"total_items": len(all),
		})
		return
	}

	page := queryInt(r, "page", 0)
	if page < 0 {
		page = 0
	}
	limit := queryInt(r, "limit", defaultRecipientPageSize)
	if limit < 1 {
		limit = 1
	}
	if limit > maxRecipientPageSize {
		limit = maxRecipientPageSize
	}

	start := page * limit
	end := start + limit
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipients":  all[start:end],
		"page":        page,
		"limit":       limit,
		"total_items": len(all),
	})
}

func (h *handler) getRecipient(w http.ResponseWriter, r *http.Request) {
	rcp, err := h.app.Recipients.GetRecipient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Recipient not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rcp)
}

func (h *handler) amendRecipient(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := decodeJSON(r.Body, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	updated, err := h.app.Recipients.AmendRecipient(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Recipient not found")
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *handler) verifyMicrodeposit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Amounts []float64 `json:"amounts"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.app.Recipients.VerifyMicrodeposit(r.Context(), mux.Vars(r)["id"], payload.Amounts)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			writeErrorMessage(w, http.StatusNotFound, "Recipient not found")
		case errors.Is(err, recipientsvc.ErrInvalidAmounts):
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":   "Invalid amounts provided",
				"message": "Must provide exactly 2 amounts",
			})
		case errors.Is(err, recipientsvc.ErrAmountMismatch):
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":   "Invalid microdeposit amounts",
				"message": "The amounts provided do not match our records",
				"status":  "FAILED",
			})
		case errors.Is(err, recipientsvc.ErrMaxAttemptsExceeded):
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":   "Microdeposit verification failed",
				"message": "Maximum verification attempts exceeded",
				"status":  "FAILED_MAX_ATTEMPTS_EXCEEDED",
			})
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Accounts and balances ------------------------------------------------------

func (h *handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.app.Ledger.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": accounts})
}

func (h *handler) getAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := h.app.Ledger.GetAccount(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Account not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (h *handler) getAccountBalance(w http.ResponseWriter, r *http.Request) {
	bal, err := h.app.Ledger.GetAccountBalance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Balance not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, bal)
}

// Transactions ---------------------------------------------------------------

func (h *handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	all, err := h.app.Ledger.ListTransactions(r.Context(), ledger.Filter{
		AccountID: r.URL.Query().Get("accountId"),
		Status:    r.URL.Query().Get("status"),
		Type:      r.URL.Query().Get("type"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if !hasPageParams(r) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"items": all,
			"metadata": map[string]interface{}{
				"page":        1,
				"limit":       len(all),
				"total_items": len(all),
			},
		})
		return
	}

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", defaultTransactionPageSize)
	if limit < 1 {
		limit = defaultTransactionPageSize
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": all[start:end],
		"metadata": map[string]interface{}{
			"page":        page,
			"limit":       limit,
			"total_items": len(all),
		},
	})
}

func (h *handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type                   string          `json:"type"`
		Status                 string          `json:"status"`
		Amount                 decimal.Decimal `json:"amount"`
		Currency               string          `json:"currency"`
		RecipientID            string          `json:"recipientId"`
		CreditorAccountID      string          `json:"creditorAccountId"`
		DebtorAccountID        string          `json:"debtorAccountId"`
		CreditorName           string          `json:"creditorName"`
		DebtorName             string          `json:"debtorName"`
		TransactionReferenceID string          `json:"transactionReferenceId"`
		Description            string          `json:"description"`
		PaymentDate            string          `json:"paymentDate"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.app.Ledger.CreateTransaction(r.Context(), ledger.CreateInput{
		Type:              payload.Type,
		Status:            transaction.Status(strings.ToUpper(payload.Status)),
		Amount:            payload.Amount,
		Currency:          payload.Currency,
		RecipientID:       payload.RecipientID,
		CreditorAccountID: payload.CreditorAccountID,
		DebtorAccountID:   payload.DebtorAccountID,
		CreditorName:      payload.CreditorName,
		DebtorName:        payload.DebtorName,
		Reference:         payload.TransactionReferenceID,
		Description:       payload.Description,
		PaymentDate:       payload.PaymentDate,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Recipient not found")
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	metrics.RecordTransactionCreated(string(created.Status))
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := h.app.Ledger.GetTransaction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Transaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (h *handler) updateTransactionStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(payload.Status) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("status is required"))
		return
	}

	updated, err := h.app.Ledger.UpdateTransactionStatus(r.Context(), mux.Vars(r)["id"], transaction.Status(strings.ToUpper(payload.Status)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorMessage(w, http.StatusNotFound, "Transaction not found")
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Helpers --------------------------------------------------------------------

// hasPageParams reports whether the request asked for pagination at all.
// Listings return the full set when neither page nor limit is supplied.
func hasPageParams(r *http.Request) bool {
	q := r.URL.Query()
	return q.Get("page") != "" || q.Get("limit") != ""
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
