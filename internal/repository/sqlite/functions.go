package sqlite

import (
	"database/sql/driver"
	"strings"

	moderncsqlite "modernc.org/sqlite"
)

// foldFunc is the SQL name of foldCase. SQLite's LOWER only folds ASCII.
const foldFunc = "unicode_lower"

func init() {
	moderncsqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, foldCase)
}

// foldCase lowercases text with Go's Unicode rules so it matches
// strings.ToLower applied to the search text. NULL stays NULL.
func foldCase(_ *moderncsqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
