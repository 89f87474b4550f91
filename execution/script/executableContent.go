package script

import (
	machineTypes "github.com/scriptforge/searchscript/machines/types"
)

// ExecutableContent represents validated script content that is ready for
// execution. It is the opaque compiled handle of the host contract: stateless,
// owned by the host's script cache, and safe to share across concurrent
// evaluation contexts.
type ExecutableContent interface {
	// GetSource returns the original script content as a string.
	GetSource() string

	// GetByteCode returns the compiled form of the script in a
	// machine-specific format. The target machine asserts the bytecode into
	// the type it requires; a mismatched MachineType and ByteCode produce an
	// error at execution time.
	GetByteCode() any

	// GetMachineType returns the machine type this script is intended to run on.
	GetMachineType() machineTypes.Type
}
