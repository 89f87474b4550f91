// Package types defines the supported script machine types.
package types

import "fmt"

// Type identifies a script machine (the expression language a script is
// written in). Hosts use it for script-language dispatch.
type Type string

const (
	// Expr is the expr-lang expression machine, the default for scoring scripts.
	Expr Type = "expr"

	// CEL is the Common Expression Language machine.
	CEL Type = "cel"

	// Risor is the Risor script machine.
	Risor Type = "risor"

	// Starlark is the Starlark script machine.
	Starlark Type = "starlark"
)

// Validate returns an error if the type is not a supported machine type.
func (t Type) Validate() error {
	switch t {
	case Expr, CEL, Risor, Starlark:
		return nil
	default:
		return fmt.Errorf("unsupported machine type: %q", string(t))
	}
}

func (t Type) String() string {
	return string(t)
}
