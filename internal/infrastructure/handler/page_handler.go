package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/damon-houk/fxrate-lookup/internal/application/render"
	"github.com/damon-houk/fxrate-lookup/internal/application/service"
	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// PageHandler serves the lookup page and handles form submissions
type PageHandler struct {
	currencies *service.CurrencyService
	lookup     *service.LookupService
	logger     logger.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(currencies *service.CurrencyService, lookup *service.LookupService, log logger.Logger) *PageHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &PageHandler{
		currencies: currencies,
		lookup:     lookup,
		logger:     log,
	}
}

// Index renders the empty lookup form
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	form := entity.FormValues{QueryType: r.URL.Query().Get("queryType")}

	view := newView(form, h.currencies.LoadCurrencies(r.Context()))
	h.write(w, r, view)
}

// Lookup validates and submits the form, then renders the page with the result.
// A rejected submission is answered without contacting the backend.
func (h *PageHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := r.ParseForm(); err != nil {
		h.logger.Warn("Invalid form submission", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid form submission",
			"The submitted form could not be parsed", http.StatusBadRequest, requestID)
		return
	}

	form := entity.FormValues{
		Currency:  r.Form.Get("currency"),
		QueryType: r.Form.Get("queryType"),
		Date:      r.Form.Get("date"),
		StartDate: r.Form.Get("startDate"),
		EndDate:   r.Form.Get("endDate"),
	}

	result, err := h.lookup.Submit(r.Context(), form)
	if err != nil {
		var validationErr *entity.ValidationError
		if !errors.As(err, &validationErr) {
			h.logger.Error("Lookup failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Lookup failed",
				"An unexpected error occurred while looking up rates", http.StatusInternalServerError, requestID)
			return
		}

		// only the submitted currency is offered back
		var codes []string
		if form.Currency != "" {
			codes = []string{form.Currency}
		}

		view := newView(form, codes)
		view.Alert = validationErr.Message
		h.write(w, r, view)
		return
	}

	resultView, err := newResultView(result)
	if err != nil {
		h.logger.Error("Failed to build download", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Failed to build download",
			"The result could not be encoded as CSV", http.StatusInternalServerError, requestID)
		return
	}

	view := newView(form, h.currencies.LoadCurrencies(r.Context()))
	view.Result = resultView
	h.write(w, r, view)
}

// Health reports that the process is serving
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.logger, http.StatusOK, HealthResponse{Status: "ok"}, middleware.GetRequestID(r.Context()))
}

// RegisterRoutes registers the page handler routes
func (h *PageHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.Index).Methods(http.MethodGet)
	router.HandleFunc("/lookup", h.Lookup).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
}

// newView echoes the submitted values back into the form
func newView(form entity.FormValues, codes []string) PageView {
	options := make([]CurrencyOption, 0, len(codes))
	for _, code := range codes {
		options = append(options, CurrencyOption{Code: code, Selected: code == form.Currency})
	}

	queryType := form.QueryType
	if _, ok := entity.ParseQueryMode(queryType); !ok {
		queryType = string(entity.ModeSingle)
	}

	return PageView{
		Currencies:          options,
		QueryType:           queryType,
		Visibility:          entity.VisibilityFor(form.QueryType),
		Date:                form.Date,
		StartDate:           form.StartDate,
		EndDate:             form.EndDate,
		MissingDateMsg:      entity.MsgMissingDate,
		MissingDateRangeMsg: entity.MsgMissingDateRange,
	}
}

func (h *PageHandler) write(w http.ResponseWriter, r *http.Request, view PageView) {
	requestID := middleware.GetRequestID(r.Context())

	body, err := renderPage(view)
	if err != nil {
		h.logger.Error("Failed to render page", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Failed to render page",
			"The page template could not be executed", http.StatusInternalServerError, requestID)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("Failed to write page", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}

func newResultView(result *render.Result) (*ResultView, error) {
	if !result.HasDownload() {
		return &ResultView{Message: result.Message}, nil
	}

	href, err := result.DownloadHref()
	if err != nil {
		return nil, err
	}

	view := &ResultView{
		HasTable: true,
		Heading:  result.Heading,
		Rows:     result.DataRows(),
		Filename: result.Filename,
		// the data URI is built from percent-encoded CSV text only
		DownloadHref: template.URL(href),
	}
	if result.ExportToken != "" {
		view.ExportURL = "/export/" + result.ExportToken
	}

	return view, nil
}
