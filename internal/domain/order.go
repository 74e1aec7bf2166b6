package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderAttributes describes a shipment order after boundary validation.
type OrderAttributes struct {
	OriginCountryID      string
	DestinationCountryID string
	WeightKg             decimal.Decimal
	CreatedAt            time.Time
	CustomerID           uuid.UUID
	CustomerName         string
	CustomerSlug         string
}

// TrackingNumber is the name-based identifier issued for an order.
type TrackingNumber uuid.UUID

func ParseTrackingNumber(s string) (TrackingNumber, error) {
	if len(s) != 36 {
		return TrackingNumber{}, fmt.Errorf("invalid tracking number length: %d", len(s))
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return TrackingNumber{}, err
	}
	return TrackingNumber(id), nil
}

func (t TrackingNumber) String() string { return uuid.UUID(t).String() }

func (t TrackingNumber) MarshalText() ([]byte, error) { return uuid.UUID(t).MarshalText() }

func (t *TrackingNumber) UnmarshalText(b []byte) error {
	id, err := ParseTrackingNumber(string(b))
	if err != nil {
		return err
	}
	*t = id
	return nil
}

// TrackingNumberRecord is what a generation returns: the identifier plus the
// attributes it was issued for.
type TrackingNumberRecord struct {
	TrackingNumber TrackingNumber
	OrderAttributes
}

type recordJSON struct {
	TrackingNumber       TrackingNumber `json:"trackingNumber"`
	OriginCountryID      string         `json:"originCountryId"`
	DestinationCountryID string         `json:"destinationCountryId"`
	Weight               json.Number    `json:"weight"`
	CustomerID           uuid.UUID      `json:"customerId"`
	CustomerName         string         `json:"customerName"`
	CustomerSlug         string         `json:"customerSlug"`
	CreatedAt            time.Time      `json:"createdAt"`
}

// MarshalJSON renders the record flat, with weight as a JSON number.
func (r TrackingNumberRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		TrackingNumber:       r.TrackingNumber,
		OriginCountryID:      r.OriginCountryID,
		DestinationCountryID: r.DestinationCountryID,
		Weight:               json.Number(r.WeightKg.String()),
		CustomerID:           r.CustomerID,
		CustomerName:         r.CustomerName,
		CustomerSlug:         r.CustomerSlug,
		CreatedAt:            r.CreatedAt,
	})
}

func (r *TrackingNumberRecord) UnmarshalJSON(b []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	w, err := decimal.NewFromString(raw.Weight.String())
	if err != nil {
		return fmt.Errorf("weight: %w", err)
	}
	*r = TrackingNumberRecord{
		TrackingNumber: raw.TrackingNumber,
		OrderAttributes: OrderAttributes{
			OriginCountryID:      raw.OriginCountryID,
			DestinationCountryID: raw.DestinationCountryID,
			WeightKg:             w,
			CreatedAt:            raw.CreatedAt,
			CustomerID:           raw.CustomerID,
			CustomerName:         raw.CustomerName,
			CustomerSlug:         raw.CustomerSlug,
		},
	}
	return nil
}
