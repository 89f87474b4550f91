package starlark

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"strings"

	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/scriptforge/searchscript/execution/script"
	"github.com/scriptforge/searchscript/internal/helpers"
)

// Module namespace constants, used in both compilation and execution phases.
const (
	namespaceJSON = "json"
	namespaceMath = "math"
	namespaceTime = "time"
)

// standardModules returns a copy of the Starlark universe with additional
// modules. Used by both compilation and execution to keep name resolution
// consistent.
func standardModules() starlarkLib.StringDict {
	universe := maps.Clone(starlarkLib.Universe)

	universe[namespaceJSON] = starlarkJSON.Module
	universe[namespaceMath] = starlarkMath.Module
	universe[namespaceTime] = starlarkTime.Module

	return universe
}

// Compiler turns Starlark script content into a compiled program. Binding-set
// variable names are predeclared so the resolver accepts names that are
// injected at evaluation time.
type Compiler struct {
	globals    []string
	logHandler slog.Handler
	logger     *slog.Logger
}

// NewCompiler creates a new Starlark-specific Compiler instance with the provided options.
func NewCompiler(opts ...CompilerOption) (*Compiler, error) {
	c := &Compiler{}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	if c.globals == nil {
		c.globals = defaultGlobalNames()
	}

	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "starlark", "Compiler")
	}

	return c, nil
}

func (c *Compiler) String() string {
	return "starlark.Compiler"
}

// Compile turns the provided script content into a compiled program.
func (c *Compiler) Compile(scriptReader io.ReadCloser) (script.ExecutableContent, error) {
	if scriptReader == nil {
		return nil, ErrContentNil
	}

	scriptBodyBytes, err := io.ReadAll(scriptReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	if err := scriptReader.Close(); err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}

	return c.compile(scriptBodyBytes)
}

func (c *Compiler) compile(scriptBodyBytes []byte) (*executable, error) {
	logger := c.logger.WithGroup("compile")

	if strings.TrimSpace(string(scriptBodyBytes)) == "" {
		logger.Warn("Empty script content")
		return nil, ErrContentNil
	}

	logger.Debug("Starting compilation", "script", string(scriptBodyBytes), "globals", c.globals)

	prog, err := compileWithEmptyGlobals(scriptBodyBytes, c.globals)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if prog == nil {
		logger.Error("Compilation returned nil program")
		return nil, ErrProgramNil
	}

	exec := newExecutable(scriptBodyBytes, prog)
	if exec == nil {
		logger.Warn("Failed to create executable from program")
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Compilation completed")
	return exec, nil
}

// compileWithEmptyGlobals parses and compiles the script content with the
// given names predeclared, so a script can reference variables that will be
// injected at eval time.
func compileWithEmptyGlobals(
	scriptBodyBytes []byte,
	globals []string,
) (*starlarkLib.Program, error) {
	opts := &syntax.FileOptions{
		GlobalReassign: true, // Allow later reassignment of the globals being injected right now
	}

	stdModules := standardModules()

	predeclared := make(starlarkLib.StringDict, len(globals))
	for _, name := range globals {
		if stdModules.Has(name) {
			continue
		}
		predeclared[name] = starlarkLib.None
	}

	mergedGlobals := make(starlarkLib.StringDict, len(stdModules)+len(predeclared))
	maps.Copy(mergedGlobals, stdModules)
	maps.Copy(mergedGlobals, predeclared)

	f, err := opts.Parse("", scriptBodyBytes, 0)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return starlarkLib.FileProgram(f, mergedGlobals.Has)
}
