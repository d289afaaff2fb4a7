package hygge

import (
	"testing"

	"github.com/cjavad/hyggec/postype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSyscallKnownNumbers(t *testing.T) {
	sig, ok := LookupSyscall(1)
	require.True(t, ok)
	assert.Equal(t, "PrintInt", sig.Name)
	assert.Equal(t, []postype.Type{postype.Int}, sig.Args)
	assert.Equal(t, postype.Unit, sig.Ret)

	sig, ok = LookupSyscall(5)
	require.True(t, ok)
	assert.Equal(t, "ReadInt", sig.Name)
	assert.Empty(t, sig.Args)
	assert.Equal(t, postype.Int, sig.Ret)
}

func TestLookupSyscallUnknownNumber(t *testing.T) {
	_, ok := LookupSyscall(999)
	assert.False(t, ok)
}

func TestSyscallNameFallsBackForUnregisteredNumbers(t *testing.T) {
	assert.Equal(t, "PrintChar", SyscallName(11))
	assert.Equal(t, "syscall_999", SyscallName(999))
}

func TestSyscallTableHasNoDuplicateNumbers(t *testing.T) {
	seen := make(map[int]string)
	for _, s := range syscallTable {
		if prior, dup := seen[s.Number]; dup {
			t.Fatalf("syscall number %d registered twice: %s and %s", s.Number, prior, s.Name)
		}
		seen[s.Number] = s.Name
	}
}

func TestSyscallTableHasNoDuplicateNames(t *testing.T) {
	seen := make(map[string]int)
	for _, s := range syscallTable {
		if prior, dup := seen[s.Name]; dup {
			t.Fatalf("syscall name %q registered twice: numbers %d and %d", s.Name, prior, s.Number)
		}
		seen[s.Name] = s.Number
	}
}
