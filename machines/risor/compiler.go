package risor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	risorLib "github.com/deepnoodle-ai/risor/v2"
	risorBytecode "github.com/deepnoodle-ai/risor/v2/pkg/bytecode"
	risorErrors "github.com/deepnoodle-ai/risor/v2/pkg/errors"

	"github.com/scriptforge/searchscript/execution/script"
	"github.com/scriptforge/searchscript/internal/helpers"
)

// Compiler turns Risor script content into runnable bytecode. Global variable
// names are declared at compile time so scripts can reference the binding-set
// variables that are injected at evaluation time.
type Compiler struct {
	globals    []string
	logHandler slog.Handler
	logger     *slog.Logger
}

// NewCompiler creates a new Risor-specific Compiler instance with the provided options.
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
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "risor", "Compiler")
	}

	return c, nil
}

func (c *Compiler) String() string {
	return "risor.Compiler"
}

// Compile turns the provided script content into runnable bytecode.
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

	scriptContent := string(scriptBodyBytes)
	if strings.TrimSpace(scriptContent) == "" {
		logger.Warn("Empty script content")
		return nil, ErrNoInstructions
	}

	logger.Debug("Starting compilation", "script", scriptContent, "globals", c.globals)

	bc, err := compileWithGlobals(scriptContent, c.globals)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if bc == nil {
		logger.Error("Compilation returned nil bytecode")
		return nil, ErrBytecodeNil
	}

	if bc.InstructionCount() < 1 {
		logger.Warn("Bytecode has zero instructions")
		return nil, ErrNoInstructions
	}

	risorExec := newExecutable(scriptBodyBytes, bc)
	if risorExec == nil {
		logger.Warn("Failed to create Executable from bytecode")
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Compilation completed")
	return risorExec, nil
}

// compileWithGlobals compiles the script content into bytecode with the custom
// global names declared, so that globals injected at eval time resolve during
// compilation. The compile environment also carries the Risor standard library;
// runFunc rebuilds the same environment when the bytecode is evaluated.
func compileWithGlobals(scriptContent string, globals []string) (*risorBytecode.Code, error) {
	env := compileEnv(globals)

	code, err := risorLib.Compile(context.Background(), scriptContent, risorLib.WithEnv(env))
	if err != nil {
		// Render a better-looking error output when there's a syntax error
		errMsg := err.Error()
		var friendlyErr risorErrors.FriendlyError
		if errors.As(err, &friendlyErr) {
			errMsg = friendlyErr.FriendlyErrorMessage()
		}
		return nil, fmt.Errorf("parse error: %s", errMsg)
	}

	return code, nil
}

// compileEnv is the shared compile/run environment skeleton: the standard
// library builtins plus a nil placeholder for each declared global name. The
// bytecode requires every key of this map to be present again at run time.
func compileEnv(globals []string) map[string]any {
	env := risorLib.Builtins()
	for _, name := range globals {
		if _, ok := env[name]; !ok {
			env[name] = nil
		}
	}
	return env
}
