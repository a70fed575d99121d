package expression

import (
	"errors"
	"math"
	mathrand "math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/praskarnam/DSynth/pkg/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestInterpreter() *Interpreter {
	return New(WithClock(func() time.Time { return fixedNow }))
}

// stubSource is a Source with no provider methods besides "ping".
type stubSource struct {
	rng *mathrand.Rand
}

func (s stubSource) Rand() *mathrand.Rand { return s.rng }

func (s stubSource) Method(name string) (any, bool) {
	if name == "ping" {
		return "pong", true
	}
	return nil, false
}

func newStub(seed uint64) stubSource {
	return stubSource{rng: mathrand.New(mathrand.NewPCG(seed, 0))}
}

func TestEvaluate_Literals(t *testing.T) {
	in := newTestInterpreter()
	src := newStub(1)

	tests := []struct {
		expr string
		want any
	}{
		{`'fixed'`, "fixed"},
		{`"double"`, "double"},
		{`''`, ""},
		{`'a, b'`, "a, b"},
		{`  'padded'  `, "padded"},
		{`42`, int64(42)},
		{`-5`, int64(-5)},
		{`2 + 3`, int64(5)},
		{`(2 + 3) * 4`, int64(20)},
		{`2 + 3 * 4`, int64(14)},
		{`10 / 4`, 2.5},
		{`2 ** 3`, float64(8)},
		{`1.5 + 1`, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := in.Evaluate(tt.expr, src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_Failures(t *testing.T) {
	in := newTestInterpreter()
	src := newStub(1)

	tests := []struct {
		name string
		expr string
		want error
	}{
		{"empty", ``, ErrNoMatch},
		{"bare identifier", `hello`, ErrNoMatch},
		{"nested call", `random.int(random.int(1,2), 5)`, ErrNoMatch},
		{"identifier in arithmetic", `2 + x`, ErrNoMatch},
		{"function in arithmetic", `abs(2)`, ErrNoMatch},
		{"unbalanced quote", `'abc`, ErrNoMatch},
		{"bracketed list", `[1, 2]`, ErrNoMatch},
		{"inverted int range", `random.int(10, 1)`, ErrEvaluation},
		{"unknown provider", `faker.launch_missiles`, ErrEvaluation},
		{"division by zero", `1 / 0`, ErrEvaluation},
		{"malformed number", `1..2 + 3`, ErrEvaluation},
		{"inverted date range", `date.between('2024-02-01', '2024-01-01')`, ErrEvaluation},
		{"bad date", `date.between('2024-13-01', '2024-12-01')`, ErrEvaluation},
		{"float range overflows", "random.float(-17" + strings.Repeat("0", 307) + ", 17" + strings.Repeat("0", 307) + ")", ErrEvaluation},
		{"empty choice", `random.choice([])`, ErrEvaluation},
		{"composite all failing", `nope, also nope`, ErrEvaluation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := in.Evaluate(tt.expr, src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
			assert.Nil(t, got)
		})
	}
}

func TestEvaluate_Composite(t *testing.T) {
	in := newTestInterpreter()
	src := newStub(1)

	got, err := in.Evaluate(`random.int(1,1), 'fixed'`, src)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "fixed"}, got)

	got, err = in.Evaluate(`'fixed'`, src)
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)

	// Failing parts are dropped; a single survivor is returned as a scalar.
	got, err = in.Evaluate(`bogus, 'kept'`, src)
	require.NoError(t, err)
	assert.Equal(t, "kept", got)

	// Commas inside calls and quotes are not top-level.
	got, err = in.Evaluate(`random.choice(['a', 'b']), 'x, y', 7`, src)
	require.NoError(t, err)
	parts, ok := got.([]any)
	require.True(t, ok)
	require.Len(t, parts, 3)
	assert.Contains(t, []any{"a", "b"}, parts[0])
	assert.Equal(t, "x, y", parts[1])
	assert.Equal(t, int64(7), parts[2])
}

func TestEvaluate_Choice(t *testing.T) {
	in := newTestInterpreter()
	src := newStub(2)
	allowed := []any{"a", "b", "c"}

	seen := map[any]bool{}
	for i := 0; i < 300; i++ {
		got, err := in.Evaluate(`random.choice(['a','b','c'])`, src)
		require.NoError(t, err)
		assert.Contains(t, allowed, got)
		seen[got] = true
	}
	assert.Len(t, seen, 3, "every option should appear over 300 draws")

	for i := 0; i < 50; i++ {
		got, err := in.Evaluate(`choice('a', "b", c)`, src)
		require.NoError(t, err)
		assert.Contains(t, allowed, got)
	}
}

func TestEvaluate_RandomInt(t *testing.T) {
	in := newTestInterpreter()
	src := newStub(3)

	seen := map[int64]bool{}
	for i := 0; i < 500; i++ {
		got, err := in.Evaluate(`random.int(-2, 2)`, src)
		require.NoError(t, err)
		v, ok := got.(int64)
		require.True(t, ok, "want int64, got %T", got)
		assert.GreaterOrEqual(t, v, int64(-2))
		assert.LessOrEqual(t, v, int64(2))
		seen[v] = true
	}
	assert.Len(t, seen, 5, "both ends of the range should be reachable")
}

func TestEvaluate_RandomFloat(t *testing.T) {
	in := newTestInterpreter()
	src := newStub(4)

	for i := 0; i < 500; i++ {
		got, err := in.Evaluate(`random.float(1.5, 9.25)`, src)
		require.NoError(t, err)
		v, ok := got.(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, v, 1.5)
		assert.LessOrEqual(t, v, 9.25)
		assert.Equal(t, Round2(v), v)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.24, Round2(1.2351))
	assert.Equal(t, -3.5, Round2(-3.499))
	for _, v := range []float64{1e15, 1.7e308, -1.7e308, math.MaxFloat64} {
		assert.Equal(t, v, Round2(v))
	}
}

func TestEvaluate_DateBetweenWideRange(t *testing.T) {
	in := newTestInterpreter()
	src := newStub(11)

	maxYear := 0
	for i := 0; i < 2000; i++ {
		got, err := in.Evaluate(`date.between('1700-01-01', '2300-12-31')`, src)
		require.NoError(t, err)
		d, err := time.Parse(dateLayout, got.(string))
		require.NoError(t, err)
		require.False(t, d.Year() < 1700 || d.Year() > 2300, "date %s out of range", got)
		maxYear = max(maxYear, d.Year())
	}
	assert.Greater(t, maxYear, 2200, "draws should cover the whole range")
}

func TestEvaluate_Dates(t *testing.T) {
	in := newTestInterpreter()
	src := newStub(5)

	got, err := in.Evaluate(`date.future(30)`, src)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-09", got)

	got, err = in.Evaluate(`date.past(10)`, src)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	lo := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hi := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 300; i++ {
		got, err := in.Evaluate(`date.between('2024-01-01', "2024-01-31")`, src)
		require.NoError(t, err)
		d, err := time.Parse(dateLayout, got.(string))
		require.NoError(t, err)
		assert.False(t, d.Before(lo) || d.After(hi), "date %s out of range", got)
	}

	got, err = in.Evaluate(`date.between('2024-05-05', '2024-05-05')`, src)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-05", got)
}

func TestEvaluate_ProviderMethods(t *testing.T) {
	in := newTestInterpreter()

	got, err := in.Evaluate(`faker.ping`, newStub(1))
	require.NoError(t, err)
	assert.Equal(t, "pong", got)

	f := faker.New(6)
	got, err = in.Evaluate(`faker.email()`, f)
	require.NoError(t, err)
	assert.Contains(t, got, "@")

	got, err = in.Evaluate(`faker.name, faker.city`, f)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestEvaluate_Deterministic(t *testing.T) {
	in := newTestInterpreter()
	expr := `random.int(1, 1000000), random.float(0, 1), random.choice(['x','y','z']), faker.uuid`

	a, err := in.Evaluate(expr, faker.New(42))
	require.NoError(t, err)
	b, err := in.Evaluate(expr, faker.New(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEvaluate_RecoversPanics(t *testing.T) {
	in := newTestInterpreter()
	// A nil random source makes random.int panic inside the rule.
	got, err := in.Evaluate(`random.int(1, 5)`, stubSource{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEvaluation)
	assert.Nil(t, got)
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		in    string
		parts []string
		split bool
	}{
		{`a`, []string{"a"}, false},
		{`a, b`, []string{"a", "b"}, true},
		{`f(a, b), c`, []string{"f(a, b)", "c"}, true},
		{`'a,b'`, []string{"'a,b'"}, false},
		{`g([1, 2])`, []string{"g([1, 2])"}, false},
		{`a,`, []string{"a", ""}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			parts, split := splitTopLevel(tt.in)
			assert.Equal(t, tt.parts, parts)
			assert.Equal(t, tt.split, split)
		})
	}
}
