package filter

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/umay/models"
)

// ErrInvalidCriteria is wrapped by every [ValidationError].
var ErrInvalidCriteria = errors.New("invalid filter criteria")

// ValidationError names the query parameter that could not be parsed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidCriteria
}

// ParseCriteria builds Criteria from query parameters. Empty values are
// ignored; malformed numbers or dates and inverted ranges are rejected.
func ParseCriteria(values url.Values) (Criteria, error) {
	c := Criteria{
		NameSubstring:   strings.TrimSpace(values.Get(ParamSearch)),
		Midwives:        nonEmpty(values[ParamMidwives]),
		DeliveryMethods: nonEmpty(values[ParamDeliveryMethods]),
		Genders:         nonEmpty(values[ParamGenders]),
	}

	var err error
	if c.DateFrom, err = parseDate(values, ParamDateFrom); err != nil {
		return Criteria{}, err
	}
	if c.DateTo, err = parseDate(values, ParamDateTo); err != nil {
		return Criteria{}, err
	}
	if c.DateFrom != "" && c.DateTo != "" && c.DateFrom > c.DateTo {
		return Criteria{}, &ValidationError{Field: ParamDateFrom, Reason: "must not be after " + ParamDateTo}
	}

	if c.AgeRange, err = parseRange(values, ParamAgeMin, ParamAgeMax); err != nil {
		return Criteria{}, err
	}
	if c.ChildWeightRange, err = parseRange(values, ParamWeightMin, ParamWeightMax); err != nil {
		return Criteria{}, err
	}
	if c.BloodLossRange, err = parseRange(values, ParamBloodLossMin, ParamBloodLossMax); err != nil {
		return Criteria{}, err
	}

	return c, nil
}

func nonEmpty(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseDate(values url.Values, key string) (string, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse(models.BirthDateLayout, raw); err != nil {
		return "", &ValidationError{Field: key, Reason: "must be a date in YYYY-MM-DD format"}
	}
	return raw, nil
}

// decimalNumber is the only number syntax accepted in range bounds.
// strconv.ParseFloat alone would also take NaN, Inf and hex floats.
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

func parseNumber(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	raw = strings.Replace(raw, ",", ".", 1)
	if !decimalNumber.MatchString(raw) {
		return nil, &ValidationError{Field: key, Reason: "must be a number"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &ValidationError{Field: key, Reason: "must be a number"}
	}
	return &v, nil
}

func parseRange(values url.Values, minKey, maxKey string) (*Range, error) {
	lo, err := parseNumber(values, minKey)
	if err != nil {
		return nil, err
	}
	hi, err := parseNumber(values, maxKey)
	if err != nil {
		return nil, err
	}
	if lo == nil && hi == nil {
		return nil, nil
	}
	if lo != nil && hi != nil && *lo > *hi {
		return nil, &ValidationError{Field: minKey, Reason: "must not exceed " + maxKey}
	}
	return &Range{Min: lo, Max: hi}, nil
}
