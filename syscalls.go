package hygge

import (
	"fmt"

	"github.com/cjavad/hyggec/postype"
)

// SyscallSignature is one row of the static syscall registry
// (spec.md 4.2): a human name, the RARS/RISC-V ecall number, its
// ordered argument types, and its return type.
type SyscallSignature struct {
	Name    string
	Number  int
	Args    []postype.Type
	Ret     postype.Type
}

// syscallTable is frozen: the type checker and the code generator
// both consult it, and any disagreement between them is a program
// bug, per spec.md 4.2.
var syscallTable = []SyscallSignature{
	{Name: "PrintInt", Number: 1, Args: []postype.Type{postype.Int}, Ret: postype.Unit},
	{Name: "PrintFloat", Number: 2, Args: []postype.Type{postype.Float}, Ret: postype.Unit},
	{Name: "PrintString", Number: 4, Args: []postype.Type{postype.String}, Ret: postype.Unit},
	{Name: "ReadInt", Number: 5, Args: nil, Ret: postype.Int},
	{Name: "ReadFloat", Number: 6, Args: nil, Ret: postype.Float},
	{Name: "Sbrk", Number: 9, Args: []postype.Type{postype.Int}, Ret: postype.Int},
	{Name: "Exit", Number: 10, Args: nil, Ret: postype.Unit},
	{Name: "PrintChar", Number: 11, Args: []postype.Type{postype.Int}, Ret: postype.Unit},
	{Name: "Exit2", Number: 17, Args: []postype.Type{postype.Int}, Ret: postype.Unit},

	// RARS extensions.
	{Name: "Time", Number: 30, Args: nil, Ret: postype.Int},
	{Name: "MidiOut", Number: 31, Args: []postype.Type{postype.Int}, Ret: postype.Unit},
	{Name: "Sleep", Number: 32, Args: []postype.Type{postype.Int}, Ret: postype.Unit},
	{Name: "MidiOutSync", Number: 33, Args: []postype.Type{postype.Int}, Ret: postype.Unit},
	{Name: "PrintIntHex", Number: 34, Args: []postype.Type{postype.Int}, Ret: postype.Unit},
	{Name: "PrintIntBin", Number: 35, Args: []postype.Type{postype.Int}, Ret: postype.Unit},
	{Name: "PrintIntUnsigned", Number: 36, Args: []postype.Type{postype.Int}, Ret: postype.Unit},

	{Name: "RandSeed", Number: 40, Args: []postype.Type{postype.Int, postype.Int}, Ret: postype.Unit},
	{Name: "RandInt", Number: 41, Args: []postype.Type{postype.Int}, Ret: postype.Int},
	{Name: "RandIntRange", Number: 42, Args: []postype.Type{postype.Int, postype.Int}, Ret: postype.Int},
	{Name: "RandFloat", Number: 43, Args: []postype.Type{postype.Int}, Ret: postype.Float},
	{Name: "RandDouble", Number: 44, Args: []postype.Type{postype.Int}, Ret: postype.Float},

	{Name: "ConfirmDialog", Number: 50, Args: []postype.Type{postype.String}, Ret: postype.Int},
	{Name: "InputDialogInt", Number: 51, Args: []postype.Type{postype.String}, Ret: postype.Int},
	{Name: "InputDialogFloat", Number: 52, Args: []postype.Type{postype.String}, Ret: postype.Float},
	{Name: "InputDialogDouble", Number: 53, Args: []postype.Type{postype.String}, Ret: postype.Float},
	{Name: "InputDialogString", Number: 54, Args: []postype.Type{postype.String, postype.Int}, Ret: postype.Int},
	{Name: "MessageDialog", Number: 55, Args: []postype.Type{postype.String, postype.Int}, Ret: postype.Unit},
	{Name: "MessageDialogInt", Number: 56, Args: []postype.Type{postype.String, postype.Int}, Ret: postype.Unit},
	{Name: "MessageDialogFloat", Number: 57, Args: []postype.Type{postype.String, postype.Float}, Ret: postype.Unit},
	{Name: "MessageDialogDouble", Number: 58, Args: []postype.Type{postype.String, postype.Float}, Ret: postype.Unit},
	{Name: "MessageDialogString", Number: 59, Args: []postype.Type{postype.String, postype.String}, Ret: postype.Unit},
	{Name: "GeneralInputDialog", Number: 60, Args: []postype.Type{postype.String}, Ret: postype.Int},
	{Name: "GeneralMessageDialog", Number: 61, Args: []postype.Type{postype.String}, Ret: postype.Unit},
	{Name: "InputDialogIntCanceled", Number: 62, Args: []postype.Type{postype.String}, Ret: postype.Int},
	{Name: "InputDialogFloatCanceled", Number: 63, Args: []postype.Type{postype.String}, Ret: postype.Float},
	{Name: "InputDialogDoubleCanceled", Number: 64, Args: []postype.Type{postype.String}, Ret: postype.Float},

	{Name: "ExitCode", Number: 93, Args: []postype.Type{postype.Int}, Ret: postype.Unit},
	{Name: "PrintStringAnnotated", Number: 1024, Args: []postype.Type{postype.String, postype.Int}, Ret: postype.Unit},
}

var syscallByNumber = func() map[int]SyscallSignature {
	m := make(map[int]SyscallSignature, len(syscallTable))
	for _, s := range syscallTable {
		m[s.Number] = s
	}
	return m
}()

// LookupSyscall returns the signature registered for a syscall
// number.
func LookupSyscall(number int) (SyscallSignature, bool) {
	s, ok := syscallByNumber[number]
	return s, ok
}

// SyscallName returns a human-readable name for a syscall number,
// falling back to "syscall_<n>" for numbers not in the table.
func SyscallName(number int) string {
	if s, ok := syscallByNumber[number]; ok {
		return s.Name
	}
	return fmt.Sprintf("syscall_%d", number)
}
