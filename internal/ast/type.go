package ast

// TypeExpr is any node of the type-expression sub-grammar carried by a
// TypeDef. Sealed like Expr.
type TypeExpr interface {
	typeExprNode()
}

// TypeRef references a type by name: a built-in (int, string, ...) or a
// previously defined constructor.
type TypeRef struct {
	Name   string
	Offset int
}

// SchemaField is one attribute of an object schema. Optional fields are
// written name?: T.
type SchemaField struct {
	Name     string
	Optional bool
	Type     TypeExpr
}

// ObjectSchema describes an object shape. Extra is true when the schema
// ends with "..." and tolerates attributes beyond those listed.
type ObjectSchema struct {
	Fields []SchemaField
	Extra  bool
}

// Constraint is a labelled subtype constraint, label(T).
type Constraint struct {
	Label string
	Elem  TypeExpr
}

// ArrayType is a homogeneous array type, [T].
type ArrayType struct {
	Elem TypeExpr
}

// UnionType is an alternation of types, T | U.
type UnionType struct {
	Alts []TypeExpr
}

func (*TypeRef) typeExprNode()      {}
func (*ObjectSchema) typeExprNode() {}
func (*Constraint) typeExprNode()   {}
func (*ArrayType) typeExprNode()    {}
func (*UnionType) typeExprNode()    {}
