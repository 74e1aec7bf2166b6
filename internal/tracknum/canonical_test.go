package tracknum

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/RaikyD/tracking-number-service/internal/domain"
)

func TestFormatTimestamp(t *testing.T) {
	plus8 := time.FixedZone("", 8*3600)
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"full seconds", time.Date(2018, 11, 20, 19, 29, 32, 0, plus8), "2018-11-20T19:29:32+08:00"},
		{"zero seconds dropped", time.Date(2018, 11, 20, 19, 29, 0, 0, plus8), "2018-11-20T19:29+08:00"},
		{"utc is Z", time.Date(2018, 11, 20, 11, 29, 32, 0, time.UTC), "2018-11-20T11:29:32Z"},
		{"millis", time.Date(2018, 11, 20, 11, 29, 32, 120_000_000, time.UTC), "2018-11-20T11:29:32.120Z"},
		{"micros", time.Date(2018, 11, 20, 11, 29, 32, 123_400_000+500, time.UTC), "2018-11-20T11:29:32.123400500Z"},
		{"micros exact", time.Date(2018, 11, 20, 11, 29, 32, 123_456_000, time.UTC), "2018-11-20T11:29:32.123456Z"},
		{"fraction keeps zero seconds", time.Date(2018, 11, 20, 11, 29, 0, 5_000_000, time.UTC), "2018-11-20T11:29:00.005Z"},
		{"negative offset", time.Date(2020, 1, 2, 3, 4, 5, 0, time.FixedZone("", -(5*3600 + 30*60))), "2020-01-02T03:04:05-05:30"},
		{"offset seconds", time.Date(2020, 1, 2, 3, 4, 5, 0, time.FixedZone("", 3600+30*60+15)), "2020-01-02T03:04:05+01:30:15"},
		{"small year", time.Date(33, 1, 1, 0, 0, 0, 0, time.UTC), "0033-01-01T00:00Z"},
		{"large year", time.Date(12345, 6, 7, 8, 9, 10, 0, time.UTC), "+12345-06-07T08:09:10Z"},
		{"negative year", time.Date(-1, 1, 1, 0, 0, 0, 0, time.UTC), "-0001-01-01T00:00Z"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatTimestamp(tc.in))
		})
	}
}

func TestCanonicalize(t *testing.T) {
	attrs := domain.OrderAttributes{
		OriginCountryID:      "MY",
		DestinationCountryID: "ID",
		WeightKg:             decimal.RequireFromString("1.234"),
		CreatedAt:            time.Date(2018, 11, 20, 19, 29, 32, 0, time.FixedZone("", 8*3600)),
		CustomerID:           uuid.MustParse("DE619854-B59B-425E-9DB4-943979E1BD49"),
		CustomerName:         "RedBox Logistics",
		CustomerSlug:         "redbox-logistics",
	}

	assert.Equal(t,
		"MYIDde619854-b59b-425e-9db4-943979e1bd492018-11-20T19:29:32+08:00",
		string(Canonicalize(attrs)))

	attrs.WeightKg = decimal.RequireFromString("99")
	attrs.CustomerName = "Someone Else"
	attrs.CustomerSlug = "someone-else"
	assert.Equal(t,
		"MYIDde619854-b59b-425e-9db4-943979e1bd492018-11-20T19:29:32+08:00",
		string(Canonicalize(attrs)), "non-hashed fields must not reach the canonical form")
}
