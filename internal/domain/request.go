package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports the first violated constraint of a TrackingRequest.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// TrackingRequest is the raw, textual form of a generation request as it
// arrives from HTTP query params, Kafka messages or CLI flags.
type TrackingRequest struct {
	OriginCountryID      string      `json:"originCountryId" validate:"notblank,country"`
	DestinationCountryID string      `json:"destinationCountryId" validate:"notblank,country"`
	Weight               json.Number `json:"weight" validate:"required,weightdigits,positive"`
	CustomerID           string      `json:"customerId" validate:"required,uuidtext"`
	CustomerName         string      `json:"customerName" validate:"notblank"`
	CustomerSlug         string      `json:"customerSlug" validate:"notblank,slug"`
	CreatedAt            string      `json:"createdAt,omitempty" validate:"omitempty,timestamp"`
}

const (
	maxWeightIntegerDigits  = 4
	maxWeightFractionDigits = 3
	// room for signs, padding zeros and exponent notation around 7 digits
	maxWeightTextLength = 32
)

var (
	countryRe = regexp.MustCompile(`^[A-Z]{2}$`)
	slugRe    = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	validate = newValidator()
)

// keyed by "<StructField>.<tag>"
var violationMessages = map[string]string{
	"OriginCountryID.notblank":      "Origin country ID is required",
	"OriginCountryID.country":       "Invalid origin country code",
	"DestinationCountryID.notblank": "Destination country ID is required",
	"DestinationCountryID.country":  "Invalid destination country code",
	"Weight.required":               "Weight is required",
	"Weight.positive":               "Weight must be positive",
	"Weight.weightdigits":           "Invalid weight format",
	"CustomerID.required":           "Customer ID is required",
	"CustomerID.uuidtext":           "Invalid customer ID",
	"CustomerName.notblank":         "Customer name is required",
	"CustomerSlug.notblank":         "Customer slug is required",
	"CustomerSlug.slug":             "Invalid customer slug",
	"CreatedAt.timestamp":           "Invalid created at timestamp",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "country", func(fl validator.FieldLevel) bool {
		return countryRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "uuidtext", func(fl validator.FieldLevel) bool {
		_, err := parseCustomerID(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "weightdigits", func(fl validator.FieldLevel) bool {
		d, err := parseWeight(fl.Field().String())
		return err == nil && weightDigitsOK(d)
	})
	mustRegister(v, "positive", func(fl validator.FieldLevel) bool {
		d, err := parseWeight(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	mustRegister(v, "timestamp", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339, fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func parseWeight(s string) (decimal.Decimal, error) {
	if len(s) > maxWeightTextLength {
		return decimal.Decimal{}, fmt.Errorf("weight longer than %d characters", maxWeightTextLength)
	}
	return decimal.NewFromString(s)
}

// weightDigitsOK checks the integer/fraction digit limits after dropping
// trailing zeros, so "1.2340" counts as three fraction digits. It works on
// coefficient and exponent only; rendering 1e100000000 as text would write
// out every digit.
func weightDigitsOK(d decimal.Decimal) bool {
	coef := new(big.Int).Abs(d.Coefficient())
	if coef.Sign() == 0 {
		return true
	}
	exp := int64(d.Exponent())

	ten := big.NewInt(10)
	q, r := new(big.Int), new(big.Int)
	for {
		q.QuoRem(coef, ten, r)
		if r.Sign() != 0 {
			break
		}
		coef.Set(q)
		exp++
	}

	if exp < -maxWeightFractionDigits {
		return false
	}
	return int64(len(coef.String()))+exp <= maxWeightIntegerDigits
}

func parseCustomerID(s string) (uuid.UUID, error) {
	if len(s) != 36 {
		return uuid.Nil, errors.New("customer id must be in 8-4-4-4-12 form")
	}
	return uuid.Parse(s)
}

// Validate returns a *ValidationError for the first violated constraint.
func (r TrackingRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: "Validation failed"}
	}
	fe := verrs[0]
	msg, ok := violationMessages[fe.StructField()+"."+fe.Tag()]
	if !ok {
		msg = "Validation failed"
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}

// Attributes validates the request and converts it into OrderAttributes.
// A missing CreatedAt is taken from now.
func (r TrackingRequest) Attributes(now func() time.Time) (OrderAttributes, error) {
	if err := r.Validate(); err != nil {
		return OrderAttributes{}, err
	}

	weight, err := parseWeight(r.Weight.String())
	if err != nil {
		return OrderAttributes{}, &ValidationError{Field: "weight", Message: "Invalid weight format"}
	}
	customerID, err := parseCustomerID(r.CustomerID)
	if err != nil {
		return OrderAttributes{}, &ValidationError{Field: "customerId", Message: "Invalid customer ID"}
	}

	var createdAt time.Time
	if r.CreatedAt == "" {
		createdAt = now()
	} else if createdAt, err = time.Parse(time.RFC3339, r.CreatedAt); err != nil {
		return OrderAttributes{}, &ValidationError{Field: "createdAt", Message: "Invalid created at timestamp"}
	}

	return OrderAttributes{
		OriginCountryID:      r.OriginCountryID,
		DestinationCountryID: r.DestinationCountryID,
		WeightKg:             weight,
		CreatedAt:            createdAt,
		CustomerID:           customerID,
		CustomerName:         r.CustomerName,
		CustomerSlug:         r.CustomerSlug,
	}, nil
}
