package cel

import (
	celLib "github.com/google/cel-go/cel"

	machineTypes "github.com/scriptforge/searchscript/machines/types"
)

type executable struct {
	scriptBodyBytes []byte
	Program         celLib.Program
}

func newExecutable(scriptBodyBytes []byte, program celLib.Program) *executable {
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

func (e *executable) GetCELProgram() celLib.Program {
	return e.Program
}

func (e *executable) GetMachineType() machineTypes.Type {
	return machineTypes.CEL
}
