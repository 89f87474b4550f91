package expr

import (
	"github.com/expr-lang/expr/vm"

	machineTypes "github.com/scriptforge/searchscript/machines/types"
)

type executable struct {
	scriptBodyBytes []byte
	Program         *vm.Program
}

func newExecutable(scriptBodyBytes []byte, program *vm.Program) *executable {
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

func (e *executable) GetExprByteCode() *vm.Program {
	return e.Program
}

func (e *executable) GetMachineType() machineTypes.Type {
	return machineTypes.Expr
}
