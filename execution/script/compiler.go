package script

import "io"

// Compiler defines the interface for validating scripts before execution.
// It checks syntax and may perform parsing, compilation, and optimization.
// A valid script is returned as ExecutableContent.
//
// Example usage:
//
//	var comp Compiler = exprCompiler.New()
//	executableContent, err := comp.Compile(reader)
//	if err != nil {
//	    // Handle compile error
//	}
//	// Use executableContent for execution
type Compiler interface {
	// Compile checks if a script is valid and returns it as executable content.
	// The returned ExecutableContent contains the validated and compiled
	// script ready for execution.
	//
	// Any parse error from the underlying expression library is propagated to
	// the caller; compilers perform no additional local validation of the
	// expression semantics.
	Compile(scriptReader io.ReadCloser) (ExecutableContent, error)
}
