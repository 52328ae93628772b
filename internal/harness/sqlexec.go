package harness

import (
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/elolang/elo/internal/compiler"
)

// ExecSQL compiles a case for the SQL target and runs the result
// against a fresh in-memory SQLite database, comparing rendered rows.
// SQLite executes the portable subset of the emitted dialect, which is
// all the suites use for exec cases.
func ExecSQL(t *testing.T, c *Case) {
	t.Helper()
	require.NotNil(t, c.Exec, "case %s has no exec block", c.Name)

	result, err := compiler.Compile(c.Expr, compiler.TargetSQL, compiler.Options{})
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range c.Exec.Setup {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "setup: %s", stmt)
	}

	query := "SELECT " + result.Code
	if c.Exec.From != "" {
		query += " FROM " + c.Exec.From
	}
	rows, err := db.Query(query)
	require.NoError(t, err, "query: %s", query)
	defer rows.Close()

	var got []string
	for rows.Next() {
		var v interface{}
		require.NoError(t, rows.Scan(&v))
		got = append(got, renderValue(v))
	}
	require.NoError(t, rows.Err())
	require.Equal(t, c.Exec.Want, got, "query: %s", query)
}

func renderValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
