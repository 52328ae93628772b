package ir

// TypeExpr is the lowered, validated form of the type-expression
// sub-grammar. Sealed like Node. A TypeDef is the whole compilation
// result when the source is a type definition: backends do not emit
// target code for it, the compiler renders it as a structured fragment.
type TypeExpr interface {
	typeExprNode()
}

// TypeDef is a validated named type definition.
type TypeDef struct {
	Name string
	Type TypeExpr
}

// TypeRef references a built-in type or a constructor name that was
// validated against the environment during lowering.
type TypeRef struct {
	Name string
}

// SchemaField is one attribute of an object schema.
type SchemaField struct {
	Name     string
	Optional bool
	Type     TypeExpr
}

// ObjectSchema is an object shape; Extra tolerates unlisted attributes.
type ObjectSchema struct {
	Fields []SchemaField
	Extra  bool
}

// Constraint is a labelled subtype constraint.
type Constraint struct {
	Label string
	Elem  TypeExpr
}

// ArrayType is a homogeneous array type.
type ArrayType struct {
	Elem TypeExpr
}

// UnionType is an alternation of types.
type UnionType struct {
	Alts []TypeExpr
}

func (*TypeRef) typeExprNode()      {}
func (*ObjectSchema) typeExprNode() {}
func (*Constraint) typeExprNode()   {}
func (*ArrayType) typeExprNode()    {}
func (*UnionType) typeExprNode()    {}
