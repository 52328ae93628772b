// Package prelude holds the fixed per-target header prepended to
// generated code on request. Headers pull in what the emitted code
// assumes about its runtime; the SQL target assumes nothing.
package prelude

const (
	js = `'use strict';`

	ruby = `require 'date'
require 'time'
require 'active_support'
require 'active_support/core_ext'`
)

// For returns the header for a target name, empty when the target has
// no prelude or is unknown.
func For(target string) string {
	switch target {
	case "js":
		return js
	case "ruby":
		return ruby
	}
	return ""
}
