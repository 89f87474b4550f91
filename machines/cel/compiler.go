package cel

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	celLib "github.com/google/cel-go/cel"

	"github.com/scriptforge/searchscript/execution/script"
	"github.com/scriptforge/searchscript/internal/helpers"
)

// DefaultCostLimit is the default runtime cost limit for CEL program
// evaluation, bounding pathological expressions per evaluation.
const DefaultCostLimit = 1000000

// Compiler turns CEL expression source into an evaluable program. Compilation
// is parse-only: scoring scripts bind their variables at execution time, so
// type checking against a declared environment is deliberately skipped and
// undefined-variable errors surface at evaluation.
//
// The CEL environment is created lazily on first use and reused afterward.
type Compiler struct {
	envCache  *envCache
	costLimit uint64

	logHandler slog.Handler
	logger     *slog.Logger
}

// envCache holds a lazily-initialized CEL environment.
type envCache struct {
	once sync.Once
	env  *celLib.Env
	err  error
}

// NewCompiler creates a new CEL-specific Compiler instance with the provided options.
func NewCompiler(opts ...CompilerOption) (*Compiler, error) {
	c := &Compiler{
		envCache:  &envCache{},
		costLimit: DefaultCostLimit,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "cel", "Compiler")
	}

	return c, nil
}

func (c *Compiler) String() string {
	return "cel.Compiler"
}

// getEnv returns the CEL environment, creating it lazily on first access.
func (c *Compiler) getEnv() (*celLib.Env, error) {
	c.envCache.once.Do(func() {
		c.envCache.env, c.envCache.err = celLib.NewEnv()
	})
	return c.envCache.env, c.envCache.err
}

// Compile reads the expression source and parses it into a CEL program.
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

	source := string(scriptBodyBytes)
	if strings.TrimSpace(source) == "" {
		logger.Warn("Empty script content")
		return nil, ErrContentNil
	}

	env, err := c.getEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	logger.Debug("Starting parse", "script", source)

	ast, issues := env.Parse(source)
	if issues != nil && issues.Err() != nil {
		logger.Warn("Parse failed", "error", issues.Err())
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, issues.Err())
	}

	program, err := env.Program(ast, celLib.CostLimit(c.costLimit))
	if err != nil {
		logger.Warn("Program construction failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	exec := newExecutable(scriptBodyBytes, program)
	if exec == nil {
		logger.Warn("Failed to create executable from program")
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Parse completed")
	return exec, nil
}
