package expression

import (
	"fmt"
	"math"
	mathrand "math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout    = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// Source supplies randomness and provider methods to an evaluation.
// *faker.Faker satisfies it.
type Source interface {
	Rand() *mathrand.Rand
	Method(name string) (any, bool)
}

// Compiled patterns for the call forms.
var (
	// random.choice(['a', 'b', 'c'])
	choiceListPattern = regexp.MustCompile(`(?s)^random\.choice\(\s*\[(.*)\]\s*\)$`)
	// choice('a', 'b', 'c')
	choiceShortPattern = regexp.MustCompile(`(?s)^choice\((.*)\)$`)
	// random.int(min, max)
	randomIntPattern = regexp.MustCompile(`^random\.int\(\s*([+-]?\d+)\s*,\s*([+-]?\d+)\s*\)$`)
	// random.float(min, max)
	randomFloatPattern = regexp.MustCompile(`^random\.float\(\s*([+-]?(?:\d+\.?\d*|\.\d+))\s*,\s*([+-]?(?:\d+\.?\d*|\.\d+))\s*\)$`)
	// date.future(days)
	dateFuturePattern = regexp.MustCompile(`^date\.future\(\s*([+-]?\d+)\s*\)$`)
	// date.past(days)
	datePastPattern = regexp.MustCompile(`^date\.past\(\s*([+-]?\d+)\s*\)$`)
	// date.between('start', 'end')
	dateBetweenPattern = regexp.MustCompile(`^date\.between\(\s*['"]([^'"]*)['"]\s*,\s*['"]([^'"]*)['"]\s*\)$`)
	// faker.method or faker.method()
	fakerPattern = regexp.MustCompile(`^(?:faker|fake)\.(\w+)(?:\(\s*\))?$`)
)

// matcher is one grammar rule: match is a pure predicate-plus-extractor,
// eval turns the extracted arguments into a value.
type matcher struct {
	name  string
	match func(expr string) ([]string, bool)
	eval  func(in *Interpreter, args []string, src Source) (any, error)
}

// regexpMatch adapts a compiled pattern to a matcher predicate. The
// extracted arguments are the submatches.
func regexpMatch(re *regexp.Regexp) func(string) ([]string, bool) {
	return func(expr string) ([]string, bool) {
		m := re.FindStringSubmatch(expr)
		if m == nil {
			return nil, false
		}
		return m[1:], true
	}
}

// singleRules are checked in order for a single (non-composite) expression.
var singleRules = []matcher{
	{name: "choice", match: regexpMatch(choiceListPattern), eval: evalChoice},
	{name: "choice", match: regexpMatch(choiceShortPattern), eval: evalChoice},
	{name: "random.int", match: regexpMatch(randomIntPattern), eval: evalRandomInt},
	{name: "random.float", match: regexpMatch(randomFloatPattern), eval: evalRandomFloat},
	{name: "date.future", match: regexpMatch(dateFuturePattern), eval: evalDateFuture},
	{name: "date.past", match: regexpMatch(datePastPattern), eval: evalDatePast},
	{name: "date.between", match: regexpMatch(dateBetweenPattern), eval: evalDateBetween},
	{name: "faker", match: regexpMatch(fakerPattern), eval: evalFaker},
	{name: "arithmetic", match: matchArithmetic, eval: evalArithmetic},
	{name: "literal", match: matchQuoted, eval: evalQuoted},
}

// Interpreter evaluates expressions. It is safe for concurrent use as long
// as each goroutine passes its own Source.
type Interpreter struct {
	now      func() time.Time
	programs *programCache
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock sets the clock used by date.future and date.past.
func WithClock(now func() time.Time) Option {
	return func(in *Interpreter) {
		if now != nil {
			in.now = now
		}
	}
}

// New creates an Interpreter.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		now:      time.Now,
		programs: newProgramCache(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Evaluate evaluates expr. A composite expression with more than one
// successful part yields []any; everything else yields a scalar
// (string, int64, float64 or bool).
func (in *Interpreter) Evaluate(expr string, src Source) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("%w: panic: %v", ErrEvaluation, r)
		}
	}()

	expr = strings.TrimSpace(expr)
	if !isBracketedList(expr) {
		if parts, ok := splitTopLevel(expr); ok {
			return in.evaluateComposite(expr, parts, src)
		}
	}
	return in.evaluateSingle(expr, src)
}

func (in *Interpreter) evaluateComposite(expr string, parts []string, src Source) (any, error) {
	results := make([]any, 0, len(parts))
	for _, part := range parts {
		v, err := in.evaluateSingle(part, src)
		if err != nil {
			continue
		}
		results = append(results, v)
	}

	switch len(results) {
	case 0:
		return nil, fmt.Errorf("%w: no part of composite %q evaluated", ErrEvaluation, expr)
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

func (in *Interpreter) evaluateSingle(expr string, src Source) (any, error) {
	if expr == "" {
		return nil, ErrNoMatch
	}
	for _, rule := range singleRules {
		args, ok := rule.match(expr)
		if !ok {
			continue
		}
		return rule.eval(in, args, src)
	}
	return nil, fmt.Errorf("%w: %q", ErrNoMatch, expr)
}

// =============================================================================
// Rules
// =============================================================================

func evalChoice(_ *Interpreter, args []string, src Source) (any, error) {
	items := splitArgs(args[0])
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: choice from an empty list", ErrEvaluation)
	}
	for i, item := range items {
		items[i] = strings.Trim(strings.TrimSpace(item), `'"`)
	}
	return items[src.Rand().IntN(len(items))], nil
}

func evalRandomInt(_ *Interpreter, args []string, src Source) (any, error) {
	lo, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: random.int min: %v", ErrEvaluation, err)
	}
	hi, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: random.int max: %v", ErrEvaluation, err)
	}
	if lo > hi {
		return nil, fmt.Errorf("%w: random.int min %d > max %d", ErrEvaluation, lo, hi)
	}
	span := hi - lo + 1
	if span <= 0 {
		return nil, fmt.Errorf("%w: random.int range too large", ErrEvaluation)
	}
	return lo + src.Rand().Int64N(span), nil
}

func evalRandomFloat(_ *Interpreter, args []string, src Source) (any, error) {
	lo, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: random.float min: %v", ErrEvaluation, err)
	}
	hi, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: random.float max: %v", ErrEvaluation, err)
	}
	if math.IsInf(hi-lo, 0) || math.IsNaN(hi-lo) {
		return nil, fmt.Errorf("%w: random.float range [%v, %v] too wide", ErrEvaluation, lo, hi)
	}
	return Round2(lo + src.Rand().Float64()*(hi-lo)), nil
}

func evalDateFuture(in *Interpreter, args []string, _ Source) (any, error) {
	days, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: date.future: %v", ErrEvaluation, err)
	}
	return in.now().AddDate(0, 0, days).Format(dateLayout), nil
}

func evalDatePast(in *Interpreter, args []string, _ Source) (any, error) {
	days, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: date.past: %v", ErrEvaluation, err)
	}
	return in.now().AddDate(0, 0, -days).Format(dateLayout), nil
}

func evalDateBetween(_ *Interpreter, args []string, src Source) (any, error) {
	start, err := time.Parse(dateLayout, args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: date.between start: %v", ErrEvaluation, err)
	}
	end, err := time.Parse(dateLayout, args[1])
	if err != nil {
		return nil, fmt.Errorf("%w: date.between end: %v", ErrEvaluation, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: date.between end %s before start %s", ErrEvaluation, args[1], args[0])
	}
	days := (end.Unix() - start.Unix()) / secondsPerDay
	return start.AddDate(0, 0, int(src.Rand().Int64N(days+1))).Format(dateLayout), nil
}

func evalFaker(_ *Interpreter, args []string, src Source) (any, error) {
	v, ok := src.Method(args[0])
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider method %q", ErrEvaluation, args[0])
	}
	return v, nil
}

func matchArithmetic(expr string) ([]string, bool) {
	if !arithmeticPattern.MatchString(expr) {
		return nil, false
	}
	return []string{expr}, true
}

func evalArithmetic(in *Interpreter, args []string, _ Source) (any, error) {
	return in.programs.evalArithmetic(args[0])
}

func matchQuoted(expr string) ([]string, bool) {
	text, ok := unquote(expr)
	if !ok {
		return nil, false
	}
	return []string{text}, true
}

func evalQuoted(_ *Interpreter, args []string, _ Source) (any, error) {
	return args[0], nil
}

// Round2 rounds v to two decimal places. Magnitudes of 1e15 and above have
// no fractional digits left to round and are returned unchanged.
func Round2(v float64) float64 {
	if math.Abs(v) >= 1e15 {
		return v
	}
	return math.Round(v*100) / 100
}
