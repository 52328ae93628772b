package transform

import (
	"strings"

	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/types"
)

// temporalKeyword desugars the temporal keywords into calls on
// synthesized now()/today() expressions. Keywords are plain identifiers
// so scope bindings shadow them; the caller checks the environment
// first.
func (t *Transformer) temporalKeyword(name string) (ir.Node, bool) {
	switch name {
	case "NOW":
		return t.call("now"), true
	case "TODAY":
		return t.call("today"), true
	case "TOMORROW":
		return t.call("add", t.call("today"), t.oneDay()), true
	case "YESTERDAY":
		return t.call("sub", t.call("today"), t.oneDay()), true
	case "SOW", "EOW", "SOM", "EOM", "SOQ", "EOQ", "SOY", "EOY":
		// Period boundaries of the current date.
		return t.call(strings.ToLower(name), t.call("today")), true
	case "SOD", "EOD":
		// Day boundaries need the time component, so they anchor on
		// now() rather than today().
		return t.call(strings.ToLower(name), t.call("now")), true
	}
	return nil, false
}

func (t *Transformer) oneDay() ir.Node {
	return t.call("duration", &ir.Lit{Typ: types.String, Text: "P1D"})
}
