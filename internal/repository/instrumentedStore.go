package repository

import (
	"github.com/RaikyD/tracking-number-service/internal/domain"
	"github.com/RaikyD/tracking-number-service/internal/metrics"
)

// InstrumentedStore counts writes, overwrites and lookup outcomes of the
// wrapped store.
type InstrumentedStore struct {
	inner DedupStore
	m     *metrics.Registry
}

func NewInstrumentedStore(inner DedupStore, m *metrics.Registry) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, m: m}
}

func (s *InstrumentedStore) Lookup(id domain.TrackingNumber) (domain.OrderAttributes, bool) {
	attrs, ok := s.inner.Lookup(id)
	if ok {
		s.m.LookupHits.Inc()
	} else {
		s.m.LookupMisses.Inc()
	}
	return attrs, ok
}

func (s *InstrumentedStore) Store(id domain.TrackingNumber, attrs domain.OrderAttributes) (domain.OrderAttributes, bool) {
	prev, existed := s.inner.Store(id, attrs)
	s.m.Stored.Inc()
	if existed {
		s.m.Overwritten.Inc()
	}
	return prev, existed
}
