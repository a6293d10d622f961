package queryir

import "strings"

// sqlCastTypes maps cast targets to the SQLite storage class they lower to.
var sqlCastTypes = map[string]string{
	"INTEGER":          "INTEGER",
	"INT":              "INTEGER",
	"LONG":             "INTEGER",
	"BIGINT":           "INTEGER",
	"BOOLEAN":          "INTEGER",
	"FLOAT":            "REAL",
	"DOUBLE":           "REAL",
	"DOUBLE PRECISION": "REAL",
	"DECIMAL":          "REAL",
	"REAL":             "REAL",
	"STRING":           "TEXT",
	"VARCHAR":          "TEXT",
	"TEXT":             "TEXT",
	"DATE":             "TEXT",
	"TIME":             "TEXT",
	"TIMESTAMP":        "TEXT",
}

// SQLCastType returns the SQLite storage class for a cast target as
// returned by Cast.TargetTypeName. ok is false when the target has none.
func SQLCastType(target string) (class string, ok bool) {
	class, ok = sqlCastTypes[target]
	return class, ok
}

// SQLPropertyName reports whether a property name can be addressed as a
// quoted key of a SQLite JSON path. Such paths have no escape for `"` or `\`.
func SQLPropertyName(name string) bool {
	return !strings.ContainsAny(name, `"\`)
}
