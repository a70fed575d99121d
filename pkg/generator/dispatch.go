package generator

import (
	"fmt"

	"github.com/praskarnam/DSynth/pkg/faker"
	"github.com/praskarnam/DSynth/pkg/schema"
)

// nullProbability is the chance that a nullable field is emitted as null.
const nullProbability = 0.10

// fieldValue produces the final value of one field: the strategy value, the
// default on failure, then the null draw for nullable fields. It never
// fails; errors and panics are logged and replaced by the default.
func (g *Generator) fieldValue(f *schema.Field, fk *faker.Faker) any {
	value, err := g.safeStrategy(f, fk)
	if err != nil {
		g.log.Debug("field fell back to default",
			"field", f.Name,
			"dataType", f.DataType.String(),
			"error", err)
		value = defaultValue(f)
	}
	if f.Nullable && fk.Rand().Float64() < nullProbability {
		return nil
	}
	return value
}

func (g *Generator) safeStrategy(f *schema.Field, fk *faker.Faker) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Warn("recovered panic generating field", "field", f.Name, "panic", r)
			value, err = nil, fmt.Errorf("%w: field %q: panic: %v", ErrFieldGeneration, f.Name, r)
		}
	}()
	return g.strategy(f, fk)
}

// strategy picks the generation path: expression override first, then a
// custom-type reference, then the builtin rule.
func (g *Generator) strategy(f *schema.Field, fk *faker.Faker) (any, error) {
	if f.HasExpression() {
		v, err := g.interp.Evaluate(f.Expression, fk)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q expression: %w", ErrFieldGeneration, f.Name, err)
		}
		return v, nil
	}

	if name, ok := f.DataType.CustomName(); ok {
		def, found := g.registry.Lookup(name)
		if !found {
			return nil, fmt.Errorf("%w: field %q: %w: %q", ErrFieldGeneration, f.Name, ErrUnknownCustomType, name)
		}
		v, err := g.interp.Evaluate(def.Expression, fk)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q custom type %q: %w", ErrFieldGeneration, f.Name, name, err)
		}
		return v, nil
	}

	rule, ok := builtins[f.DataType.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: field %q: no rule for %s", ErrFieldGeneration, f.Name, f.DataType)
	}
	v, err := rule(f, fk)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %w", ErrFieldGeneration, f.Name, err)
	}
	return v, nil
}
