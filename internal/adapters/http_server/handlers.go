package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"staydeal/internal/adapters/observability"
	"staydeal/internal/app"
	"staydeal/internal/domain"
)

type Handlers struct{ S *app.SettingsService }

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/discounts/calculate", h.calculateDiscount)
	s.mux.Post("/v1/discounts/opportunities", h.checkOpportunities)
	s.mux.Get("/v1/tenants/{tenantID}/negotiation-settings", h.getSettings)
	s.mux.Put("/v1/tenants/{tenantID}/negotiation-settings", h.updateSettings)
}

// ---- envelope ----

type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// writeError always carries the request id so a client report can be
// correlated with server-side logs.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg, RequestID: chimw.GetReqID(r.Context())})
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- discounts ----

type calculateRequest struct {
	TenantID        string  `json:"tenantId"`
	PropertyName    string  `json:"propertyName"`
	CheckIn         string  `json:"checkIn"`
	CheckOut        string  `json:"checkOut"`
	TotalPrice      float64 `json:"totalPrice"`
	ClientPhone     string  `json:"clientPhone"`
	PaymentMethod   string  `json:"paymentMethod,omitempty"`
	BookNow         bool    `json:"bookNow,omitempty"`
	ExtendStay      int     `json:"extendStay,omitempty"`
	LeadTemperature string  `json:"leadTemperature,omitempty"`
}

// parseISODate accepts both date-only and full RFC 3339 timestamps; the
// platform sends either depending on the calling surface.
func parseISODate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *Handlers) calculateDiscount(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.TenantID) == "" {
		writeError(w, r, http.StatusBadRequest, "tenantId is required")
		return
	}
	// The engine treats a positive price as a precondition; reject here so a
	// bad payload cannot surface as a silent zero discount.
	if req.TotalPrice <= 0 {
		writeError(w, r, http.StatusBadRequest, "totalPrice must be greater than zero")
		return
	}
	checkIn, err := parseISODate(req.CheckIn)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "checkIn must be an ISO date")
		return
	}
	checkOut, err := parseISODate(req.CheckOut)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "checkOut must be an ISO date")
		return
	}
	if req.ExtendStay < 0 {
		writeError(w, r, http.StatusBadRequest, "extendStay must not be negative")
		return
	}

	settings, err := h.S.GetSettings(r.Context(), req.TenantID)
	if err != nil {
		log.Error().Err(err).Str("tenant", req.TenantID).Msg("settings load failed")
		writeError(w, r, http.StatusInternalServerError, "failed to load negotiation settings")
		return
	}

	res := app.Evaluate(domain.DiscountCriteria{
		PropertyName:    req.PropertyName,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		OriginalPrice:   req.TotalPrice,
		ClientPhone:     req.ClientPhone,
		PaymentMethod:   strings.ToLower(strings.TrimSpace(req.PaymentMethod)),
		BookNow:         req.BookNow,
		ExtendStay:      req.ExtendStay,
		LeadTemperature: req.LeadTemperature,
	}, settings)
	observability.ObserveEvaluation(string(res.Strategy))

	writeData(w, res)
}

type opportunitiesRequest struct {
	TenantID string `json:"tenantId"`
}

func (h *Handlers) checkOpportunities(w http.ResponseWriter, r *http.Request) {
	var req opportunitiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.TenantID) == "" {
		writeError(w, r, http.StatusBadRequest, "tenantId is required")
		return
	}

	settings, err := h.S.GetSettings(r.Context(), req.TenantID)
	if err != nil {
		log.Error().Err(err).Str("tenant", req.TenantID).Msg("settings load failed")
		writeError(w, r, http.StatusInternalServerError, "failed to load negotiation settings")
		return
	}

	writeData(w, app.BuildOpportunityReport(settings))
}

// ---- settings ----

func (h *Handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if strings.TrimSpace(tenantID) == "" {
		writeError(w, r, http.StatusBadRequest, "tenantID is required")
		return
	}

	settings, err := h.S.GetSettings(r.Context(), tenantID)
	if err != nil {
		log.Error().Err(err).Str("tenant", tenantID).Msg("settings load failed")
		writeError(w, r, http.StatusInternalServerError, "failed to load negotiation settings")
		return
	}

	etag, body := calcETagAndBody(envelope{Success: true, Data: settings})
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write settings body")
	}
}

func (h *Handlers) updateSettings(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if strings.TrimSpace(tenantID) == "" {
		writeError(w, r, http.StatusBadRequest, "tenantID is required")
		return
	}

	var ns domain.NegotiationSettings
	if err := json.NewDecoder(r.Body).Decode(&ns); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.S.UpdateSettings(r.Context(), tenantID, ns); err != nil {
		if errors.Is(err, app.ErrInvalidSettings) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("tenant", tenantID).Msg("settings update failed")
		writeError(w, r, http.StatusInternalServerError, "failed to update negotiation settings")
		return
	}

	writeData(w, ns)
}
