package expression

import (
	"fmt"
	"math"
	"regexp"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// arithmeticPattern admits digits, decimal points, + - * / (and ** via
// two *), parentheses and spaces. Any other character disqualifies the
// expression, so identifiers and calls never reach the expr compiler.
var arithmeticPattern = regexp.MustCompile(`^[0-9.+\-*/() ]*[0-9][0-9.+\-*/() ]*$`)

// programCache holds compiled arithmetic programs keyed by source text.
type programCache struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

func newProgramCache() *programCache {
	return &programCache{programs: make(map[string]*vm.Program)}
}

func (c *programCache) compile(source string) (*vm.Program, error) {
	c.mu.RLock()
	program, ok := c.programs[source]
	c.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(source)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.programs[source] = program
	c.mu.Unlock()
	return program, nil
}

// evalArithmetic evaluates a numeric expression with standard precedence.
// Integer results come back as int64, everything else as float64.
func (c *programCache) evalArithmetic(source string) (any, error) {
	program, err := c.compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: arithmetic %q: %v", ErrEvaluation, source, err)
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: arithmetic %q: %v", ErrEvaluation, source, err)
	}

	switch v := out.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: arithmetic %q: non-finite result", ErrEvaluation, source)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: arithmetic %q: unexpected result type %T", ErrEvaluation, source, out)
	}
}
