package tracknum

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/tracking-number-service/internal/domain"
)

func TestGenerate_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"MYIDde619854-b59b-425e-9db4-943979e1bd492018-11-20T19:29:32+08:00", "25bcce90-9cdb-3c49-8022-7b809c851c32"},
		{"MYIDde619854-b59b-425e-9db4-943979e1bd492018-11-20T19:29+08:00", "3edc2d17-b1e6-3fb2-ab3c-49577550c201"},
		{"SGUSde619854-b59b-425e-9db4-943979e1bd492018-11-20T11:29:32.123Z", "f2b0fbe6-fde6-3d14-ae8f-04b56825610c"},
		{"", "d41d8cd9-8f00-3204-a980-0998ecf8427e"},
	}

	for _, tc := range tests {
		got := Generate([]byte(tc.name))
		assert.Equal(t, tc.want, got.String(), "name %q", tc.name)
	}
}

func TestGenerate_VersionAndVariant(t *testing.T) {
	id := uuid.UUID(Generate([]byte("anything at all")))
	assert.Equal(t, uuid.Version(3), id.Version())
	assert.Equal(t, uuid.RFC4122, id.Variant())
}

func TestFor_ReferenceOrder(t *testing.T) {
	attrs := domain.OrderAttributes{
		OriginCountryID:      "MY",
		DestinationCountryID: "ID",
		WeightKg:             decimal.RequireFromString("1.234"),
		CreatedAt:            time.Date(2018, 11, 20, 19, 29, 32, 0, time.FixedZone("", 8*3600)),
		CustomerID:           uuid.MustParse("de619854-b59b-425e-9db4-943979e1bd49"),
		CustomerName:         "RedBox Logistics",
		CustomerSlug:         "redbox-logistics",
	}

	first := For(attrs)
	assert.Equal(t, "25bcce90-9cdb-3c49-8022-7b809c851c32", first.String())
	assert.Equal(t, first, For(attrs))
}

func TestGenerate_SinglePerturbationsDoNotCollide(t *testing.T) {
	const perturbations = 10_000
	rng := rand.New(rand.NewSource(20181120))

	base := domain.OrderAttributes{
		OriginCountryID:      "MY",
		DestinationCountryID: "ID",
		WeightKg:             decimal.RequireFromString("1.234"),
		CreatedAt:            time.Date(2018, 11, 20, 19, 29, 32, 0, time.FixedZone("", 8*3600)),
		CustomerID:           uuid.MustParse("de619854-b59b-425e-9db4-943979e1bd49"),
	}

	seenName := map[string]bool{string(Canonicalize(base)): true}
	seenID := map[domain.TrackingNumber]string{For(base): string(Canonicalize(base))}

	for len(seenName) < perturbations+1 {
		attrs := base
		switch rng.Intn(4) {
		case 0:
			attrs.OriginCountryID = randomCountry(rng)
		case 1:
			attrs.DestinationCountryID = randomCountry(rng)
		case 2:
			var id uuid.UUID
			_, _ = rng.Read(id[:])
			attrs.CustomerID = id
		case 3:
			attrs.CreatedAt = base.CreatedAt.Add(time.Duration(rng.Int63n(int64(365 * 24 * time.Hour))))
		}

		name := string(Canonicalize(attrs))
		if seenName[name] {
			continue
		}
		seenName[name] = true

		id := For(attrs)
		prev, dup := seenID[id]
		require.False(t, dup, "collision between %q and %q", prev, name)
		seenID[id] = name
	}
}

func randomCountry(rng *rand.Rand) string {
	return string([]byte{byte('A' + rng.Intn(26)), byte('A' + rng.Intn(26))})
}
