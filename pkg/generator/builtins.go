package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/praskarnam/DSynth/pkg/expression"
	"github.com/praskarnam/DSynth/pkg/faker"
	"github.com/praskarnam/DSynth/pkg/schema"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	secondsPerDay  = 24 * 60 * 60

	defaultMinLength = 5
	defaultMaxLength = 20
	defaultMinValue  = 0
	defaultMaxValue  = 100
	defaultStartDate = "2020-01-01"
	defaultEndDate   = "2024-12-31"
)

// builtinFunc produces a value for one builtin kind.
type builtinFunc func(f *schema.Field, fk *faker.Faker) (any, error)

var builtins = map[schema.Kind]builtinFunc{
	schema.KindString:    genString,
	schema.KindInteger:   genInteger,
	schema.KindFloat:     genFloat,
	schema.KindBoolean:   func(_ *schema.Field, fk *faker.Faker) (any, error) { return fk.Boolean(), nil },
	schema.KindDate:      genDate,
	schema.KindDateTime:  genDateTime,
	schema.KindEmail:     provider((*faker.Faker).Email),
	schema.KindPhone:     provider((*faker.Faker).PhoneNumber),
	schema.KindName:      provider((*faker.Faker).Name),
	schema.KindAddress:   provider((*faker.Faker).Address),
	schema.KindCity:      provider((*faker.Faker).City),
	schema.KindCountry:   provider((*faker.Faker).Country),
	schema.KindZipcode:   provider((*faker.Faker).Zipcode),
	schema.KindCompany:   provider((*faker.Faker).Company),
	schema.KindJob:       provider((*faker.Faker).Job),
	schema.KindURL:       provider((*faker.Faker).URL),
	schema.KindIPAddress: provider((*faker.Faker).IPv4),
	schema.KindUUID:      provider((*faker.Faker).UUID),
}

func provider(method func(*faker.Faker) string) builtinFunc {
	return func(_ *schema.Field, fk *faker.Faker) (any, error) {
		return method(fk), nil
	}
}

// patternShapes are the digit patterns the string rule fills in directly.
// The leading digit is never zero.
var patternShapes = map[string][]int{
	`\d{3}`:             {3},
	`\d{5}`:             {5},
	`\d{3}-\d{3}-\d{4}`: {3, 3, 4},
}

func genString(f *schema.Field, fk *faker.Faker) (any, error) {
	if groups, ok := patternShapes[f.Pattern]; ok {
		parts := make([]string, len(groups))
		for i, n := range groups {
			parts[i] = leadingNonZero(fk, n)
		}
		return strings.Join(parts, "-"), nil
	}

	lo, hi := defaultMinLength, defaultMaxLength
	if f.MinLength != nil {
		lo = *f.MinLength
	}
	if f.MaxLength != nil {
		hi = *f.MaxLength
	}
	if lo < 0 || lo > hi {
		return nil, fmt.Errorf("%w: length range [%d, %d]", ErrConstraint, lo, hi)
	}
	target := lo + fk.Rand().IntN(hi-lo+1)
	text := strings.ReplaceAll(fk.Text(target), "\n", " ")
	return strings.TrimSpace(text), nil
}

// leadingNonZero returns n digits whose first digit is 1-9.
func leadingNonZero(fk *faker.Faker, n int) string {
	lo := int64(math.Pow10(n - 1))
	return strconv.FormatInt(lo+fk.Rand().Int64N(9*lo), 10)
}

func genInteger(f *schema.Field, fk *faker.Faker) (any, error) {
	lo, hi := float64(defaultMinValue), float64(defaultMaxValue)
	if f.MinValue != nil {
		lo = math.Ceil(*f.MinValue)
	}
	if f.MaxValue != nil {
		hi = math.Floor(*f.MaxValue)
	}
	if lo > hi {
		return nil, fmt.Errorf("%w: integer range [%v, %v]", ErrConstraint, lo, hi)
	}
	// hi-lo must fit in an int64 for the draw below.
	if lo < math.MinInt64 || hi >= math.Ldexp(1, 63) || hi-lo >= math.Ldexp(1, 63) {
		return nil, fmt.Errorf("%w: integer range [%v, %v] too wide", ErrConstraint, lo, hi)
	}
	first, last := int64(lo), int64(hi)
	return first + fk.Rand().Int64N(last-first+1), nil
}

func genFloat(f *schema.Field, fk *faker.Faker) (any, error) {
	lo, hi := float64(defaultMinValue), float64(defaultMaxValue)
	if f.MinValue != nil {
		lo = *f.MinValue
	}
	if f.MaxValue != nil {
		hi = *f.MaxValue
	}
	if lo > hi || math.IsInf(hi-lo, 0) || math.IsNaN(hi-lo) {
		return nil, fmt.Errorf("%w: float range [%v, %v]", ErrConstraint, lo, hi)
	}
	v := expression.Round2(lo + fk.Rand().Float64()*(hi-lo))
	return min(max(v, lo), hi), nil
}

// dateBounds parses the field's date range. ok is false when either bound
// is unparsable or the range is inverted.
func dateBounds(f *schema.Field) (start, end time.Time, ok bool) {
	startStr, endStr := defaultStartDate, defaultEndDate
	if f.StartDate != "" {
		startStr = f.StartDate
	}
	if f.EndDate != "" {
		endStr = f.EndDate
	}
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return start, end, false
	}
	end, err = time.Parse(dateLayout, endStr)
	if err != nil {
		return start, end, false
	}
	return start, end, !end.Before(start)
}

func genDate(f *schema.Field, fk *faker.Faker) (any, error) {
	start, end, ok := dateBounds(f)
	if !ok {
		return fk.Date().Format(dateLayout), nil
	}
	days := (end.Unix() - start.Unix()) / secondsPerDay
	return start.AddDate(0, 0, int(fk.Rand().Int64N(days+1))).Format(dateLayout), nil
}

func genDateTime(f *schema.Field, fk *faker.Faker) (any, error) {
	start, end, ok := dateBounds(f)
	if !ok {
		return fk.DateTime().Format(dateTimeLayout), nil
	}
	secs := end.Unix() - start.Unix()
	return time.Unix(start.Unix()+fk.Rand().Int64N(secs+1), 0).UTC().Format(dateTimeLayout), nil
}
