package application

import (
	"errors"
	"fmt"

	"github.com/RaikyD/tracking-number-service/internal/domain"
	"github.com/RaikyD/tracking-number-service/internal/repository"
	"github.com/RaikyD/tracking-number-service/internal/tracknum"
)

var ErrInternal = errors.New("error generating tracking number")

type TrackingService struct {
	store repository.DedupStore
}

func NewTrackingService(store repository.DedupStore) *TrackingService {
	return &TrackingService{store: store}
}

// GenerateTrackingNumber issues the tracking number for attrs and records it.
// Hashing runs without locks; only the store write is synchronized, inside
// the store. A repeated tracking number silently replaces the earlier
// attributes.
func (s *TrackingService) GenerateTrackingNumber(attrs domain.OrderAttributes) (rec domain.TrackingNumberRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = domain.TrackingNumberRecord{}, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	id := tracknum.For(attrs)
	// storing is the last step: nothing is visible if anything above fails
	s.store.Store(id, attrs)

	return domain.TrackingNumberRecord{TrackingNumber: id, OrderAttributes: attrs}, nil
}

// Lookup returns the attributes last issued under id, for duplicate
// submission checks by callers.
func (s *TrackingService) Lookup(id domain.TrackingNumber) (domain.OrderAttributes, bool) {
	return s.store.Lookup(id)
}
