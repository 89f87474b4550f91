package starlark

import (
	starlarkLib "go.starlark.net/starlark"

	machineTypes "github.com/scriptforge/searchscript/machines/types"
)

type executable struct {
	scriptBodyBytes []byte
	Program         *starlarkLib.Program
}

func newExecutable(scriptBodyBytes []byte, program *starlarkLib.Program) *executable {
	if len(scriptBodyBytes) == 0 || program == nil {
		return nil
	}

	return &executable{
		scriptBodyBytes: scriptBodyBytes,
		Program:         program,
	}
}

func (e *executable) GetSource() string {
	return string(e.scriptBodyBytes)
}

func (e *executable) GetByteCode() any {
	return e.Program
}

func (e *executable) GetStarlarkProgram() *starlarkLib.Program {
	return e.Program
}

func (e *executable) GetMachineType() machineTypes.Type {
	return machineTypes.Starlark
}
