package data

// Types of a script result value as a string.
type Types string

// These valid types as constants, limited for our use.
const (
	BOOL   Types = "bool"
	ERROR  Types = "error"
	INT    Types = "int"
	MAP    Types = "map"
	STRING Types = "string"
	NONE   Types = "none"
	FLOAT  Types = "float"
	LIST   Types = "list"
)

// TypeOf classifies a native Go value into one of the Types constants.
func TypeOf(v any) Types {
	switch v.(type) {
	case nil:
		return NONE
	case bool:
		return BOOL
	case int, int32, int64, uint, uint32, uint64:
		return INT
	case float32, float64:
		return FLOAT
	case string:
		return STRING
	case map[string]any:
		return MAP
	case []any:
		return LIST
	case error:
		return ERROR
	default:
		return NONE
	}
}
