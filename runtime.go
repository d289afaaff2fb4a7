package hygge

// HeapDescriptor records what a base heap address denotes, so
// ArrayElem/ArrayLength/FieldSelect can bounds-check an access and
// reject a mismatched one loudly (spec.md 4.4): either a struct's
// ordered field-name list, or an array's length.
type HeapDescriptor struct {
	Fields  []string
	IsArray bool
	Length  int
}

// RuntimeEnv is the evaluator's mutable state (spec.md 5): the
// current mutable-variable bindings, the heap, and the I/O callbacks
// ReadInt/ReadFloat/Print/PrintLn invoke. Heap addresses are
// allocated monotonically starting at 1 and are never reclaimed —
// there is no garbage collector in the reference semantics.
type RuntimeEnv struct {
	Mutables    map[string]Expr
	Heap        map[int]Expr
	Descriptors map[int]HeapDescriptor
	next        int

	ReadLine func() (string, error)
	Print    func(string)
}

// NewRuntimeEnv builds an empty environment wired to the given I/O
// callbacks. Either may be nil; ReadInt/ReadFloat/Print/PrintLn treat
// a nil callback as "no input available"/"discard output".
func NewRuntimeEnv(readLine func() (string, error), print func(string)) *RuntimeEnv {
	return &RuntimeEnv{
		Mutables:    map[string]Expr{},
		Heap:        map[int]Expr{},
		Descriptors: map[int]HeapDescriptor{},
		next:        1,
		ReadLine:    readLine,
		Print:       print,
	}
}

// Alloc reserves n consecutive heap cells and returns the base
// address.
func (r *RuntimeEnv) Alloc(n int) int {
	base := r.next
	r.next += n
	return base
}

func (r *RuntimeEnv) SetMutable(name string, v Expr) { r.Mutables[name] = v }

func (r *RuntimeEnv) GetMutable(name string) (Expr, bool) {
	v, ok := r.Mutables[name]
	return v, ok
}

func (r *RuntimeEnv) DeleteMutable(name string) { delete(r.Mutables, name) }
