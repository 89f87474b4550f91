package script

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scriptforge/searchscript/execution/data"
	"github.com/scriptforge/searchscript/execution/script/loader"
	"github.com/scriptforge/searchscript/internal/helpers"
	machineTypes "github.com/scriptforge/searchscript/machines/types"
)

const checksumLength = 12

// ExecutableUnit represents a specific version of a script, including its
// compiled content and creation time. It couples the compiled handle with the
// data provider that supplies variable bindings at evaluation time, enabling
// the "compile once, run many times" design.
type ExecutableUnit struct {
	// ID is a unique identifier for this executable unit, typically derived
	// from a hash of the script content.
	ID string

	// CreatedAt records when this executable unit was instantiated.
	CreatedAt time.Time

	// ScriptLoader loads the script content to local memory from various
	// places (file, string, etc.).
	ScriptLoader loader.Loader

	// Compiler is the machine-specific compiler that was used to compile this unit.
	Compiler Compiler

	// Content holds the compiled bytecode and source representation of the script.
	Content ExecutableContent

	// DataProvider provides variable bindings during script evaluation. When
	// created with NewExecutableUnit, this is typically a CompositeProvider
	// combining a StaticProvider (compile-time bindings) with a runtime provider.
	DataProvider data.Provider

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewExecutableUnit creates a new ExecutableUnit from the provided loader and
// compiler. Static bindings (sData) are combined with the runtime data
// provider using a CompositeProvider; runtime bindings override static ones
// for duplicate keys.
func NewExecutableUnit(
	handler slog.Handler,
	versionID string,
	scriptLoader loader.Loader,
	compiler Compiler,
	dataProvider data.Provider,
	sData map[string]any,
) (*ExecutableUnit, error) {
	handler, logger := helpers.SetupLogger(handler, "script", "ExecutableUnit")

	if compiler == nil {
		return nil, ErrCompilerNil
	}
	if scriptLoader == nil {
		return nil, ErrLoaderNil
	}

	if sData == nil {
		sData = make(map[string]any)
	}

	reader, err := scriptLoader.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get reader from loader: %w", err)
	}

	exe, err := compiler.Compile(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompiler, err)
	}

	if versionID == "" {
		versionID = helpers.SHA256(exe.GetSource())
		if len(versionID) > checksumLength {
			versionID = versionID[:checksumLength]
		}
	}

	staticProvider := data.NewStaticProvider(sData)

	var combinedProvider data.Provider
	if dataProvider != nil {
		combinedProvider = data.NewCompositeProvider(staticProvider, dataProvider)
	} else {
		combinedProvider = staticProvider
	}

	return &ExecutableUnit{
		ID:           versionID,
		CreatedAt:    time.Now(),
		ScriptLoader: scriptLoader,
		Content:      exe,
		Compiler:     compiler,
		DataProvider: combinedProvider,
		logHandler:   handler,
		logger:       logger.With("ID", versionID),
	}, nil
}

func (exe *ExecutableUnit) String() string {
	return fmt.Sprintf("ExecutableUnit{ID: %s, CreatedAt: %s, Compiler: %s, Loader: %s}",
		exe.ID, exe.CreatedAt, exe.Compiler, exe.ScriptLoader)
}

// GetID returns the unique identifier (version number, or name) for this script version.
func (exe *ExecutableUnit) GetID() string {
	return exe.ID
}

// GetContent returns the validated & compiled script content as ExecutableContent.
func (exe *ExecutableUnit) GetContent() ExecutableContent {
	return exe.Content
}

// GetCreatedAt returns the timestamp when the version was created.
func (exe *ExecutableUnit) GetCreatedAt() time.Time {
	return exe.CreatedAt
}

// GetMachineType returns the machine type this script is intended to run on.
func (exe *ExecutableUnit) GetMachineType() machineTypes.Type {
	return exe.Content.GetMachineType()
}

// GetCompiler returns the compiler used to validate the script and convert it
// into runnable bytecode.
func (exe *ExecutableUnit) GetCompiler() Compiler {
	return exe.Compiler
}

// GetLoader returns the loader used to load the script.
func (exe *ExecutableUnit) GetLoader() loader.Loader {
	return exe.ScriptLoader
}

// GetDataProvider returns the data provider for this executable unit.
func (exe *ExecutableUnit) GetDataProvider() data.Provider {
	return exe.DataProvider
}

// GetBindings resolves the current variable bindings from the data provider.
// Used by hosts that need a point-in-time snapshot of the binding set.
func (exe *ExecutableUnit) GetBindings(ctx context.Context) (map[string]any, error) {
	if exe.DataProvider == nil {
		return make(map[string]any), nil
	}
	return exe.DataProvider.GetData(ctx)
}
