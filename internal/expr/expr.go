// Package expr evaluates the template expressions that turn configured
// resource locations into concrete ones, e.g.
// "file:/data/${regionName}.json" into "file:/data/orders.json".
//
// Templates are standard HCL string templates. Two variables are bound at
// evaluation time: regionName, the lowercased region name, and env, a
// read-only object over the supplied property source.
package expr

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Properties supplies the env binding. props.Source satisfies it.
type Properties interface {
	Names() []string
	Lookup(name string) (string, bool)
}

// Evaluator parses template expressions and caches the compiled form by
// exact source text. Compilation happens once per distinct text for the
// evaluator's lifetime; the cache is never evicted. That is fine for
// configuration-driven expressions, whose text space is small and fixed,
// and callers must not feed it unbounded user input.
type Evaluator struct {
	cache sync.Map // source text -> hcl.Expression
}

// NewEvaluator returns an evaluator with an empty cache.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Parse compiles a template expression, reusing the cached form when the
// exact source text was seen before. Safe for concurrent use; when two
// goroutines race on the same new text, one compiled form wins and is
// shared from then on.
func (e *Evaluator) Parse(source string) (hcl.Expression, error) {
	if cached, ok := e.cache.Load(source); ok {
		return cached.(hcl.Expression), nil
	}

	parsed, diags := hclsyntax.ParseTemplate([]byte(source), "<expression>", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse expression %q: %w", source, diags)
	}

	cached, _ := e.cache.LoadOrStore(source, hcl.Expression(parsed))
	return cached.(hcl.Expression), nil
}

// Evaluate compiles the expression and renders it for one region. A result
// that is null or unknown comes back as the empty string with no error, so
// callers can treat "expression yielded nothing" as "no location". A nil
// env binds an empty object.
func (e *Evaluator) Evaluate(source, regionName string, env Properties) (string, error) {
	expression, err := e.Parse(source)
	if err != nil {
		return "", err
	}

	value, diags := expression.Value(newEvalContext(regionName, env))
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to evaluate expression %q: %w", source, diags)
	}
	if value.IsNull() || !value.IsKnown() {
		return "", nil
	}

	str, err := convert.Convert(value, cty.String)
	if err != nil {
		return "", fmt.Errorf("expression %q did not produce a string: %w", source, err)
	}
	if str.IsNull() {
		return "", nil
	}
	return str.AsString(), nil
}

// CacheLen reports how many distinct expression texts are compiled.
func (e *Evaluator) CacheLen() int {
	n := 0
	e.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func newEvalContext(regionName string, env Properties) *hcl.EvalContext {
	envVals := make(map[string]cty.Value)
	if env != nil {
		for _, name := range env.Names() {
			if v, ok := env.Lookup(name); ok {
				envVals[name] = cty.StringVal(v)
			}
		}
	}

	envObj := cty.EmptyObjectVal
	if len(envVals) > 0 {
		envObj = cty.ObjectVal(envVals)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"regionName": cty.StringVal(strings.ToLower(regionName)),
			"env":        envObj,
		},
	}
}
