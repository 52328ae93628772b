// Package compiler is the one-call facade over the pipeline: lex,
// parse, type-inferring transform, backend emission. Compile is a pure
// function; the per-target dispatch registries and the signature
// registry are built once at first use and shared read-only, so
// concurrent compilations are safe.
package compiler

import (
	"fmt"

	"github.com/elolang/elo/internal/ast"
	"github.com/elolang/elo/internal/backend/js"
	"github.com/elolang/elo/internal/backend/ruby"
	"github.com/elolang/elo/internal/backend/sql"
	"github.com/elolang/elo/internal/codegen"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/parser"
	"github.com/elolang/elo/internal/prelude"
	"github.com/elolang/elo/internal/transform"
)

// Target names a code-generation backend.
type Target string

const (
	TargetJS   Target = "js"
	TargetRuby Target = "ruby"
	TargetSQL  Target = "sql"
)

// ParseTarget resolves a target name from user input.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetJS, TargetRuby, TargetSQL:
		return Target(s), nil
	}
	return "", fmt.Errorf("unknown target %q (want js, ruby or sql)", s)
}

// Options configures a compilation. The zero value is usable.
type Options struct {
	// MaxDepth caps parse and transform nesting. Zero means the
	// package defaults.
	MaxDepth int

	// RelaxedIdents admits unknown identifiers as column references.
	// The SQL target is always relaxed; this extends the behavior to
	// the other targets.
	RelaxedIdents bool

	// InputName overrides the implicit input variable name.
	InputName string

	// Prelude prepends the target's fixed runtime header.
	Prelude bool

	// Constructors lists host-declared type names legal in type
	// definitions beyond the built-ins.
	Constructors []string
}

// Result is the outcome of one compilation. Exactly one of Code and
// Fragment is populated: expressions compile to target code, type
// definitions compile to a canonical-JSON type fragment.
type Result struct {
	Code      string
	UsesInput bool
	Fragment  []byte
}

// Compile compiles one Elo source unit for a target.
func Compile(source string, target Target, opts Options) (Result, error) {
	expr, err := parser.New(source, parser.Options{MaxDepth: opts.MaxDepth}).Parse()
	if err != nil {
		return Result{}, fmt.Errorf("parse: %w", err)
	}

	tr := transform.New(transform.Options{
		MaxDepth:      opts.MaxDepth,
		RelaxedIdents: opts.RelaxedIdents || target == TargetSQL,
		InputName:     opts.InputName,
	})

	if def, ok := expr.(*ast.TypeDef); ok {
		lowered, err := tr.LowerTypeDef(def, opts.Constructors)
		if err != nil {
			return Result{}, fmt.Errorf("transform: %w", err)
		}
		frag, err := ir.MarshalCanonicalType(lowered)
		if err != nil {
			return Result{}, fmt.Errorf("fragment: %w", err)
		}
		return Result{Fragment: frag}, nil
	}

	node, err := tr.Lower(expr)
	if err != nil {
		return Result{}, fmt.Errorf("transform: %w", err)
	}

	var out codegen.Output
	switch target {
	case TargetJS:
		out, err = js.Generate(node)
	case TargetRuby:
		out, err = ruby.Generate(node)
	case TargetSQL:
		out, err = sql.Generate(node)
	default:
		return Result{}, fmt.Errorf("unknown target %q", target)
	}
	if err != nil {
		return Result{}, fmt.Errorf("codegen: %w", err)
	}

	inputName := opts.InputName
	if inputName == "" {
		inputName = transform.DefaultInputName
	}
	out.UsesInput = ir.UsesVar(node, inputName)

	code := out.Code()
	if opts.Prelude {
		if header := prelude.For(string(target)); header != "" {
			code = header + "\n" + code
		}
	}
	return Result{Code: code, UsesInput: out.UsesInput}, nil
}
