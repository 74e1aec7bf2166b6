package presentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RaikyD/tracking-number-service/internal/domain"
	"github.com/RaikyD/tracking-number-service/internal/logger"
	"github.com/RaikyD/tracking-number-service/internal/metrics"
	"github.com/RaikyD/tracking-number-service/internal/presentation/helpers"
)

type TrackingService interface {
	GenerateTrackingNumber(attrs domain.OrderAttributes) (domain.TrackingNumberRecord, error)
	Lookup(id domain.TrackingNumber) (domain.OrderAttributes, bool)
}

// Publisher announces issued tracking numbers. Optional.
type Publisher interface {
	PublishIssued(ctx context.Context, rec domain.TrackingNumberRecord) error
}

type TrackingHandler struct {
	svc     TrackingService
	pub     Publisher
	metrics *metrics.Registry
	now     func() time.Time
}

func NewTrackingHandler(svc TrackingService, pub Publisher, m *metrics.Registry) *TrackingHandler {
	return &TrackingHandler{svc: svc, pub: pub, metrics: m, now: time.Now}
}

func (h *TrackingHandler) Register(r chi.Router) {
	r.Get("/next-tracking-number", h.NextTrackingNumber)
	r.Get("/tracking-numbers/{trackingNumber}", h.GetTrackingNumber)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
}

// requiredParams must be present in the query string; blank values are left
// to request validation so they get field-specific messages.
var requiredParams = []string{
	"originCountryId",
	"destinationCountryId",
	"weight",
	"customerId",
	"customerName",
	"customerSlug",
}

func (h *TrackingHandler) NextTrackingNumber(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	for _, name := range requiredParams {
		if _, ok := q[name]; !ok {
			helpers.FieldError(w, name, "Missing required parameter: "+name)
			return
		}
	}

	req := domain.TrackingRequest{
		OriginCountryID:      q.Get("originCountryId"),
		DestinationCountryID: q.Get("destinationCountryId"),
		Weight:               json.Number(q.Get("weight")),
		CustomerID:           q.Get("customerId"),
		CustomerName:         q.Get("customerName"),
		CustomerSlug:         q.Get("customerSlug"),
		CreatedAt:            q.Get("createdAt"),
	}

	attrs, err := req.Attributes(h.now)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			helpers.FieldError(w, verr.Field, verr.Message)
			return
		}
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	rec, err := h.svc.GenerateTrackingNumber(attrs)
	if h.metrics != nil {
		h.metrics.GenerateLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if h.metrics != nil {
			h.metrics.GenerateFailures.Inc()
		}
		logger.Error("generate tracking number failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.pub != nil {
		if err := h.pub.PublishIssued(r.Context(), rec); err != nil {
			if h.metrics != nil {
				h.metrics.PublishFailures.Inc()
			}
			logger.Warn("publish issued tracking number failed", "tracking_number", rec.TrackingNumber.String(), "err", err)
		}
	}

	helpers.WriteJSON(w, http.StatusOK, rec)
}

func (h *TrackingHandler) GetTrackingNumber(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseTrackingNumber(chi.URLParam(r, "trackingNumber"))
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid tracking number")
		return
	}

	attrs, ok := h.svc.Lookup(id)
	if !ok {
		helpers.HttpError(w, http.StatusNotFound, "tracking number not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, domain.TrackingNumberRecord{TrackingNumber: id, OrderAttributes: attrs})
}
