// Package expression evaluates the small expression language used by
// custom types and per-field overrides.
//
// The language is a fixed list of call forms and literals, checked in
// priority order (first match wins):
//
//	random.int(1, 100), 'fixed'       composite: top-level commas, one result per part
//	random.choice(['a', 'b', 'c'])    one item at random (also choice('a','b'))
//	random.int(min, max)              inclusive random integer
//	random.float(min, max)            random float rounded to 2 decimals
//	date.future(n)                    today + n days, YYYY-MM-DD
//	date.past(n)                      today - n days, YYYY-MM-DD
//	date.between('2020-01-01', '2020-12-31')
//	faker.email                       provider method by name
//	(2 + 3) * 4 ** 2                  arithmetic over numeric literals only
//	'text' or "text"                  quoted literal
//
// Anything else fails with ErrNoMatch. Evaluation never panics: runtime
// problems are returned as errors wrapping ErrEvaluation, and the caller
// decides on a fallback. There are no variables, identifiers or nested
// calls.
package expression
