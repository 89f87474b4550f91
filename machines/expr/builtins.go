package expr

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/scriptforge/searchscript/execution/constants"
)

// builtins returns the fixed table of name-to-function bindings registered into
// the machine's namespace. It is built once at engine construction and
// treated as immutable thereafter; executors merge it at the lowest
// precedence of their binding set.
//
// The math entries operate on unboxed float64 values so scripts can call
// them without numeric wrapper conversions, plus a current-time-in-millis
// binding under a short alias.
func builtins() map[string]any {
	return map[string]any{
		"abs":       math.Abs,
		"acos":      math.Acos,
		"asin":      math.Asin,
		"atan":      math.Atan,
		"atan2":     math.Atan2,
		"cbrt":      math.Cbrt,
		"ceil":      math.Ceil,
		"cos":       math.Cos,
		"cosh":      math.Cosh,
		"exp":       math.Exp,
		"expm1":     math.Expm1,
		"floor":     math.Floor,
		"hypot":     math.Hypot,
		"log":       math.Log,
		"log10":     math.Log10,
		"log1p":     math.Log1p,
		"max":       math.Max,
		"min":       math.Min,
		"pow":       math.Pow,
		"round":     math.Round,
		"signum":    signum,
		"sin":       math.Sin,
		"sinh":      math.Sinh,
		"sqrt":      math.Sqrt,
		"tan":       math.Tan,
		"tanh":      math.Tanh,
		"toDegrees": toDegrees,
		"toRadians": toRadians,
		"random":    rand.Float64,

		constants.TimeVar: nowMillis,
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
