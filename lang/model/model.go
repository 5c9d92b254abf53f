package model

import (
	"slices"
	"strings"
)

// DataType is a primitive data type (a type not held in a container or struct)
type DataType int

const (
	Void DataType = iota
	Int
	Float
	Str
	Bool
	Auto
)

func (d DataType) String() string {
	switch d {
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "str"
	case Bool:
		return "bool"
	case Auto:
		return "auto"
	default:
		return "void"
	}
}

// Variable is a named, typed slot. Value holds the raw right-hand side text and is empty for
// a type-only declaration such as a function argument.
type Variable struct {
	Name     string
	DataType DataType
	Value    string
	HasValue bool
}

// ContractKind says when a contract is checked
type ContractKind int

const (
	Precondition ContractKind = iota
	Postcondition
	Invariant
)

func (k ContractKind) String() string {
	switch k {
	case Postcondition:
		return "#Out"
	case Invariant:
		return "#Invariant"
	default:
		return "#In"
	}
}

// Contract is runtime behavior a function promises to obey
type Contract struct {
	Kind      ContractKind
	Condition string
	Message   string
	Line      int
}

// FunctionData is everything the front end knows about one declared function
type FunctionData struct {
	Args        []Variable
	ReturnType  DataType
	Properties  []Property
	Permissions []Permission
	Contracts   []Contract
	Line        int
}

// Arity returns the number of declared arguments
func (f *FunctionData) Arity() int {
	return len(f.Args)
}

// Signature renders the declaration in source form, e.g. "add :: a int -> b int -> int"
func (f *FunctionData) Signature(name string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" :: ")
	for _, arg := range f.Args {
		b.WriteString(arg.Name + " " + arg.DataType.String() + " -> ")
	}
	b.WriteString(f.ReturnType.String())
	return b.String()
}

// FunctionTable maps function names to their data. Iteration is always in name order so
// diagnostics and downstream code generation are deterministic.
type FunctionTable struct {
	entries map[string]*FunctionData
}

// NewFunctionTable creates an empty function table
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{
		entries: make(map[string]*FunctionData),
	}
}

// Add inserts a function. It returns false and leaves the table untouched if the name exists.
func (t *FunctionTable) Add(name string, data *FunctionData) bool {
	if _, exists := t.entries[name]; exists {
		return false
	}
	t.entries[name] = data
	return true
}

// Get gets a function by name
func (t *FunctionTable) Get(name string) (*FunctionData, bool) {
	data, ok := t.entries[name]
	return data, ok
}

// Arity implements the lookup used by the expression parser
func (t *FunctionTable) Arity(name string) (int, bool) {
	data, ok := t.entries[name]
	if !ok {
		return 0, false
	}
	return data.Arity(), true
}

// Len returns the number of functions
func (t *FunctionTable) Len() int {
	return len(t.entries)
}

// Names returns the function names in lexicographic order
func (t *FunctionTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Each calls fn for every function in name order
func (t *FunctionTable) Each(fn func(name string, data *FunctionData)) {
	for _, name := range t.Names() {
		fn(name, t.entries[name])
	}
}

// ArityTable is a read-only snapshot of function arities captured before expressions are
// parsed. It only needs each function's name and argument count.
type ArityTable map[string]int

// Arity looks up the declared argument count of a function
func (a ArityTable) Arity(name string) (int, bool) {
	n, ok := a[name]
	return n, ok
}
