package ruby

import "github.com/elolang/elo/internal/codegen"

// Ruby needs almost no runtime support: ActiveSupport already makes
// the native operators behave like Elo's over dates and durations.
var runtimeHelpers = codegen.HelperTable{
	"k_div": {
		Body: `def k_div(a, b)
  return a.fdiv(b) if a.is_a?(Integer) && b.is_a?(Integer)
  a / b
end`,
	},
}
