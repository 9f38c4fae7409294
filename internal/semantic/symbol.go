package semantic

import "github.com/jlallas384/plc/internal/token"

// Symbol is implemented by the three kinds of name a Scope can bind:
// variables, functions (free functions and methods alike), and classes.
type Symbol interface {
	symbolName() string
}

// VarSymbol binds a name to a resolved type; Private is only meaningful
// for fields (it is always false for locals and parameters).
type VarSymbol struct {
	Name    string
	Type    TypeInfo
	Private bool
}

func (v *VarSymbol) symbolName() string { return v.Name }

// Param is a function parameter's resolved (name, type) pair.
type Param struct {
	Name string
	Type TypeInfo
}

// FuncSymbol describes a free function or a method. OwnerClass is ""
// for free functions. IsMethod is false for free functions.
type FuncSymbol struct {
	Name       string
	Params     []Param
	ReturnType TypeInfo
	Private    bool
	Override   bool
	IsMethod   bool
	OwnerClass string
	Pos        token.Position
}

func (f *FuncSymbol) symbolName() string { return f.Name }

// ClassSymbol carries its insertion-ordered fields and methods, plus a
// resolved link (Base) to its base class's symbol once the analyzer's
// base-resolution step has run.
type ClassSymbol struct {
	Name     string
	BaseName string
	Base     *ClassSymbol
	Pos      token.Position

	FieldOrder []string
	Fields     map[string]*VarSymbol

	MethodOrder []string
	Methods     map[string]*FuncSymbol
}

func (c *ClassSymbol) symbolName() string { return c.Name }

func newClassSymbol(name, baseName string, pos token.Position) *ClassSymbol {
	return &ClassSymbol{
		Name:     name,
		BaseName: baseName,
		Pos:      pos,
		Fields:   make(map[string]*VarSymbol),
		Methods:  make(map[string]*FuncSymbol),
	}
}

// Constructor returns the class's constructor (a method named identically
// to the class) if it declares one directly; it does not search base
// classes, since a derived class without its own constructor has none
// (the language has no constructor inheritance).
func (c *ClassSymbol) Constructor() *FuncSymbol {
	return c.Methods[c.Name]
}

// FindMethod walks the inheritance chain starting at c, returning the
// first (most-derived) declaration of name and the name of the class
// that declares it.
func (c *ClassSymbol) FindMethod(name string) (*FuncSymbol, string) {
	for cur := c; cur != nil; cur = cur.Base {
		if fs, ok := cur.Methods[name]; ok {
			return fs, cur.Name
		}
	}
	return nil, ""
}

// FindField walks the inheritance chain starting at c, returning the
// first declaration of name and the name of the class that declares it.
func (c *ClassSymbol) FindField(name string) (*VarSymbol, string) {
	for cur := c; cur != nil; cur = cur.Base {
		if vs, ok := cur.Fields[name]; ok {
			return vs, cur.Name
		}
	}
	return nil, ""
}

// Scope is a lexical name binding frame with a parent link; redeclaration
// is rejected only against the innermost (local) scope, per spec.md
// §4.3's scoping rules.
type Scope struct {
	parent  *Scope
	symbols map[string]Symbol
}

// NewScope creates a child scope of parent (nil for the global scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: make(map[string]Symbol)}
}

// Define binds name to sym in this scope. It returns false without
// modifying the scope if name is already bound here.
func (s *Scope) Define(name string, sym Symbol) bool {
	if _, exists := s.symbols[name]; exists {
		return false
	}
	s.symbols[name] = sym
	return true
}

// LookupLocal resolves name only within this scope, ignoring parents.
func (s *Scope) LookupLocal(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Lookup resolves name by climbing parent links.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}
