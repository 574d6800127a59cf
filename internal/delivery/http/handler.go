package httpd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/emashae/payment-gateway-api/internal/domain"
	"github.com/emashae/payment-gateway-api/internal/repository"
	"github.com/emashae/payment-gateway-api/internal/usecase"
	"github.com/emashae/payment-gateway-api/pkg/metrics"
)

type Handler struct {
	uc       *usecase.TransactionUsecase
	repo     *repository.SQLiteRepo
	validate *validator.Validate
	log      zerolog.Logger
}

func NewHandler(uc *usecase.TransactionUsecase, repo *repository.SQLiteRepo, log zerolog.Logger) *Handler {
	v := validator.New()

	// report field errors under their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		uc:       uc,
		repo:     repo,
		validate: v,
		log:      log,
	}
}

func (h *Handler) Routes(sig SigConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(RequestLogger(h.log))
	r.Use(MetricsMiddleware)
	r.Use(SignatureMiddleware(sig))

	r.Post("/api/v1/transactions", h.CreateTransaction)
	r.Get("/api/v1/transactions", h.ListTransactions)
	r.Get("/api/v1/transactions/{id}", h.GetTransaction)
	r.Get("/api/v1/healthz", h.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

var minAmount = decimal.NewFromFloat(0.01)

// POST /api/v1/transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	fieldErrs, txTime := h.validateCreate(&req)
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, ValidationErrResp{
			Message: "The given data was invalid.",
			Errors:  fieldErrs,
		})
		return
	}

	tx, err := h.uc.CreateTransaction(r.Context(), usecase.CreateInput{
		CardNumber:      req.CardNumber,
		Amount:          req.Amount,
		Currency:        strings.ToUpper(req.Currency),
		CustomerEmail:   req.CustomerEmail,
		Metadata:        req.Metadata,
		TransactionTime: txTime,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create transaction")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	metrics.IncDecision(string(tx.Status))
	h.log.Info().
		Str("id", tx.ID).
		Str("card", tx.MaskedCardNumber).
		Str("decision", string(tx.Status)).
		Msg("transaction decided")

	writeJSON(w, http.StatusCreated, toTxItem(*tx))
}

func (h *Handler) validateCreate(req *CreateTransactionReq) (map[string][]string, *time.Time) {
	fieldErrs := map[string][]string{}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrs[fe.Field()] = append(fieldErrs[fe.Field()], fieldMessage(fe))
			}
		}
	}

	if req.Amount.LessThan(minAmount) {
		fieldErrs["amount"] = append(fieldErrs["amount"], "amount must be at least 0.01")
	}

	var txTime *time.Time
	if req.TransactionTime != "" {
		ts, err := time.ParseInLocation(transactionTimeLayout, req.TransactionTime, time.Local)
		if err != nil {
			fieldErrs["transaction_time"] = append(fieldErrs["transaction_time"],
				"transaction_time must match the format YYYY-MM-DD HH:MM:SS")
		} else {
			txTime = &ts
		}
	}

	return fieldErrs, txTime
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "len":
		return fmt.Sprintf("%s must be %s characters", fe.Field(), fe.Param())
	case "numeric":
		return fe.Field() + " must contain only digits"
	case "email":
		return fe.Field() + " must be a valid email address"
	}
	return fe.Field() + " is invalid"
}

// GET /api/v1/transactions/{id}
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "transaction not found"})
			return
		}
		h.log.Error().Err(err).Str("id", id).Msg("get transaction")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, toTxItem(*t))
}

// GET /api/v1/transactions?status=&currency=&limit=&offset=
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.TxFilter{
		Currency: q.Get("currency"),
	}
	if st := q.Get("status"); st != "" {
		filter.Status = domain.TxStatus(st)
	}

	limit := 50
	offset := 0
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	items, err := h.repo.ListTransactions(r.Context(), filter, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list transactions")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	out := make([]TxItem, 0, len(items))
	for _, t := range items {
		out = append(out, toTxItem(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
