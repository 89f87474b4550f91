package expr

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	exprLib "github.com/expr-lang/expr"

	"github.com/scriptforge/searchscript/execution/script"
	"github.com/scriptforge/searchscript/internal/helpers"
)

// Compiler turns expression source into an executable expr program. It
// compiles in dynamic mode (no environment typing), so the only failures are
// the library's own parse errors; variable resolution happens at run time.
type Compiler struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// NewCompiler creates a new expr-specific Compiler instance with the provided options.
func NewCompiler(opts ...CompilerOption) (*Compiler, error) {
	c := &Compiler{}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "expr", "Compiler")
	}

	return c, nil
}

func (c *Compiler) String() string {
	return "expr.Compiler"
}

// Compile reads the expression source and compiles it into a program.
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

	logger.Debug("Starting compilation", "script", string(scriptBodyBytes))

	program, err := exprLib.Compile(string(scriptBodyBytes))
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if program == nil {
		logger.Error("Compilation returned nil program")
		return nil, ErrBytecodeNil
	}

	exec := newExecutable(scriptBodyBytes, program)
	if exec == nil {
		logger.Warn("Failed to create executable from program")
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Compilation completed")
	return exec, nil
}
