package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingNumberRecord_JSON(t *testing.T) {
	rec := TrackingNumberRecord{
		TrackingNumber: TrackingNumber(uuid.MustParse("25bcce90-9cdb-3c49-8022-7b809c851c32")),
		OrderAttributes: OrderAttributes{
			OriginCountryID:      "MY",
			DestinationCountryID: "ID",
			WeightKg:             decimal.RequireFromString("1.2340"),
			CreatedAt:            time.Date(2018, 11, 20, 19, 29, 32, 0, time.FixedZone("", 8*3600)),
			CustomerID:           uuid.MustParse("de619854-b59b-425e-9db4-943979e1bd49"),
			CustomerName:         "RedBox Logistics",
			CustomerSlug:         "redbox-logistics",
		},
	}

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"trackingNumber": "25bcce90-9cdb-3c49-8022-7b809c851c32",
		"originCountryId": "MY",
		"destinationCountryId": "ID",
		"weight": 1.234,
		"customerId": "de619854-b59b-425e-9db4-943979e1bd49",
		"customerName": "RedBox Logistics",
		"customerSlug": "redbox-logistics",
		"createdAt": "2018-11-20T19:29:32+08:00"
	}`, string(b))

	var back TrackingNumberRecord
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, rec.TrackingNumber, back.TrackingNumber)
	assert.True(t, rec.WeightKg.Equal(back.WeightKg))
	assert.True(t, rec.CreatedAt.Equal(back.CreatedAt))
	assert.Equal(t, rec.CustomerSlug, back.CustomerSlug)
}

func TestParseTrackingNumber(t *testing.T) {
	id, err := ParseTrackingNumber("25bcce90-9cdb-3c49-8022-7b809c851c32")
	require.NoError(t, err)
	assert.Equal(t, "25bcce90-9cdb-3c49-8022-7b809c851c32", id.String())

	_, err = ParseTrackingNumber("urn:uuid:25bcce90-9cdb-3c49-8022-7b809c851c32")
	assert.Error(t, err)
	_, err = ParseTrackingNumber("25bcce90")
	assert.Error(t, err)
}
