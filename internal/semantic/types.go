package semantic

// TypeInfo is the resolved type of an expression, variable, field, or
// return value: a name (a primitive word or a class identifier) plus an
// array flag, per spec.md §3.
type TypeInfo struct {
	Name    string
	IsArray bool
}

var primitiveNames = map[string]bool{
	"int": true, "float": true, "bool": true, "char": true, "string": true, "void": true,
}

// IsPrimitive reports whether the type names one of the language's six
// built-in words rather than a class.
func (t TypeInfo) IsPrimitive() bool { return primitiveNames[t.Name] }

// IsNumeric reports whether the type is int or float, the operand class
// required by arithmetic and relational operators.
func (t TypeInfo) IsNumeric() bool { return t.Name == "int" || t.Name == "float" }

// IsBoolOrNumeric is the acceptance test for logical operators and
// conditions, which treat any numeric value as truthy.
func (t TypeInfo) IsBoolOrNumeric() bool { return t.Name == "bool" || t.IsNumeric() }

func (t TypeInfo) String() string {
	if t.IsArray {
		return t.Name + "[]"
	}
	return t.Name
}

// Void is the implicit return type of a function declared without a
// `: type` annotation.
var Void = TypeInfo{Name: "void"}
