// Package harness runs the YAML example suites: every case compiles
// for each of its targets and the rendered snapshot is compared against
// a golden file. SQL cases can additionally execute against an
// in-memory SQLite database to check that the emitted code actually
// runs and produces the expected values.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Suite is one YAML file of compilation cases.
type Suite struct {
	// Name identifies the suite; golden files live under
	// testdata/golden/<name>/.
	Name string `yaml:"name"`

	Cases []Case `yaml:"cases"`
}

// Case is one expression compiled for one or more targets.
type Case struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`

	// Targets defaults to all three.
	Targets []string `yaml:"targets,omitempty"`

	// Relaxed admits unknown identifiers as column references on
	// every target of the case.
	Relaxed bool `yaml:"relaxed,omitempty"`

	// Exec, when set, runs the SQL rendering against SQLite.
	Exec *Exec `yaml:"exec,omitempty"`
}

// Exec describes the SQLite execution of a case.
type Exec struct {
	// Setup statements run before the query, typically CREATE TABLE
	// and INSERT.
	Setup []string `yaml:"setup,omitempty"`

	// From names the table the expression selects from. Empty means a
	// bare SELECT.
	From string `yaml:"from,omitempty"`

	// Want lists the expected result rows, rendered as strings.
	Want []string `yaml:"want"`
}

// DefaultTargets is the target list for cases that do not narrow it.
var DefaultTargets = []string{"js", "ruby", "sql"}

// EffectiveTargets returns the case's target list, defaulted.
func (c *Case) EffectiveTargets() []string {
	if len(c.Targets) > 0 {
		return c.Targets
	}
	return DefaultTargets
}

// LoadSuite reads and validates one suite file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite: %w", err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing suite %s: %w", path, err)
	}

	if suite.Name == "" {
		return nil, fmt.Errorf("suite %s: missing name", path)
	}
	seen := map[string]bool{}
	for i, c := range suite.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("suite %s: case %d: missing name", path, i)
		}
		if c.Expr == "" {
			return nil, fmt.Errorf("suite %s: case %s: missing expr", path, c.Name)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("suite %s: duplicate case name %s", path, c.Name)
		}
		seen[c.Name] = true
	}
	return &suite, nil
}

// LoadSuites reads every *.yaml suite in a directory, sorted by file
// name for stable test ordering.
func LoadSuites(dir string) ([]*Suite, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	suites := make([]*Suite, 0, len(paths))
	for _, path := range paths {
		suite, err := LoadSuite(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}
