package harness

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/elolang/elo/internal/compiler"
)

// Snapshot compiles a case for each of its targets and renders the
// text compared against the golden file. The format is the expression
// followed by one fenced section per target.
func Snapshot(c *Case) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "expr: %s\n", c.Expr)

	for _, name := range c.EffectiveTargets() {
		target, err := compiler.ParseTarget(name)
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", c.Name, err)
		}
		result, err := compiler.Compile(c.Expr, target, compiler.Options{
			RelaxedIdents: c.Relaxed,
		})
		if err != nil {
			return nil, fmt.Errorf("case %s, target %s: %w", c.Name, name, err)
		}

		fmt.Fprintf(&b, "-- %s --\n", name)
		if result.Fragment != nil {
			b.Write(result.Fragment)
			b.WriteByte('\n')
		} else {
			b.WriteString(result.Code)
			b.WriteByte('\n')
		}
	}
	return []byte(b.String()), nil
}

// RunGolden compiles every case of a suite and compares the snapshots
// against testdata/golden/<suite>/<case>.golden. Regenerate with
// go test ./internal/harness -update.
func RunGolden(t *testing.T, suite *Suite) {
	t.Helper()
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))

	for _, c := range suite.Cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			snap, err := Snapshot(&c)
			require.NoError(t, err)
			g.Assert(t, filepath.Join(suite.Name, c.Name), snap)

			if c.Exec != nil {
				ExecSQL(t, &c)
			}
		})
	}
}
