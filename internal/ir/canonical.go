package ir

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical renders an IR tree as canonical JSON: fixed key
// order, no insignificant whitespace, NFC-normalized strings. This is
// the serialization used by golden tests and by the check command, so
// byte-for-byte stability matters more than prettiness.
func MarshalCanonical(n Node) ([]byte, error) {
	var b strings.Builder
	if err := writeNode(&b, n); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// MarshalCanonicalType renders a lowered type definition as the
// structured fragment handed back to hosts in place of target code.
func MarshalCanonicalType(def *TypeDef) ([]byte, error) {
	var b strings.Builder
	b.WriteString(`{"type":`)
	writeString(&b, def.Name)
	b.WriteString(`,"def":`)
	if err := writeTypeExpr(&b, def.Type); err != nil {
		return nil, err
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func writeNode(b *strings.Builder, n Node) error {
	switch v := n.(type) {
	case *Lit:
		b.WriteString(`{"lit":`)
		writeString(b, v.Text)
		b.WriteString(`,"type":`)
		writeString(b, v.Typ.String())
		b.WriteByte('}')
	case *Var:
		b.WriteString(`{"var":`)
		writeString(b, v.Name)
		b.WriteString(`,"type":`)
		writeString(b, v.Typ.String())
		b.WriteByte('}')
	case *Column:
		b.WriteString(`{"column":`)
		writeString(b, v.Name)
		b.WriteByte('}')
	case *Call:
		b.WriteString(`{"call":`)
		writeString(b, v.Name)
		b.WriteString(`,"args":`)
		if err := writeNodes(b, v.Args); err != nil {
			return err
		}
		b.WriteString(`,"type":`)
		writeString(b, v.Result.String())
		b.WriteByte('}')
	case *Apply:
		b.WriteString(`{"apply":`)
		if err := writeNode(b, v.Fn); err != nil {
			return err
		}
		b.WriteString(`,"args":`)
		if err := writeNodes(b, v.Args); err != nil {
			return err
		}
		b.WriteByte('}')
	case *Let:
		b.WriteString(`{"let":`)
		writeString(b, v.Name)
		b.WriteString(`,"value":`)
		if err := writeNode(b, v.Value); err != nil {
			return err
		}
		b.WriteString(`,"body":`)
		if err := writeNode(b, v.Body); err != nil {
			return err
		}
		b.WriteByte('}')
	case *Cond:
		b.WriteString(`{"if":`)
		if err := writeNode(b, v.Cond); err != nil {
			return err
		}
		b.WriteString(`,"then":`)
		if err := writeNode(b, v.Then); err != nil {
			return err
		}
		b.WriteString(`,"else":`)
		if err := writeNode(b, v.Else); err != nil {
			return err
		}
		b.WriteString(`,"type":`)
		writeString(b, v.Result.String())
		b.WriteByte('}')
	case *Lambda:
		if v.Predicate {
			b.WriteString(`{"predicate":`)
		} else {
			b.WriteString(`{"lambda":`)
		}
		b.WriteByte('[')
		for i, p := range v.Params {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, p)
		}
		b.WriteByte(']')
		b.WriteString(`,"body":`)
		if err := writeNode(b, v.Body); err != nil {
			return err
		}
		b.WriteByte('}')
	case *Object:
		b.WriteString(`{"object":[`)
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(`{"name":`)
			writeString(b, f.Name)
			b.WriteString(`,"value":`)
			if err := writeNode(b, f.Value); err != nil {
				return err
			}
			b.WriteByte('}')
		}
		b.WriteString(`]}`)
	case *Array:
		b.WriteString(`{"array":`)
		if err := writeNodes(b, v.Elems); err != nil {
			return err
		}
		b.WriteByte('}')
	case *Alternative:
		b.WriteString(`{"alternative":`)
		if err := writeNodes(b, v.Exprs); err != nil {
			return err
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("unsupported IR node: %T", n)
	}
	return nil
}

func writeNodes(b *strings.Builder, nodes []Node) error {
	b.WriteByte('[')
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeNode(b, n); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

func writeTypeExpr(b *strings.Builder, t TypeExpr) error {
	switch v := t.(type) {
	case *TypeRef:
		b.WriteString(`{"ref":`)
		writeString(b, v.Name)
		b.WriteByte('}')
	case *ObjectSchema:
		b.WriteString(`{"object":[`)
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(`{"name":`)
			writeString(b, f.Name)
			b.WriteString(`,"optional":`)
			b.WriteString(strconv.FormatBool(f.Optional))
			b.WriteString(`,"type":`)
			if err := writeTypeExpr(b, f.Type); err != nil {
				return err
			}
			b.WriteByte('}')
		}
		b.WriteString(`],"extra":`)
		b.WriteString(strconv.FormatBool(v.Extra))
		b.WriteByte('}')
	case *Constraint:
		b.WriteString(`{"constraint":`)
		writeString(b, v.Label)
		b.WriteString(`,"of":`)
		if err := writeTypeExpr(b, v.Elem); err != nil {
			return err
		}
		b.WriteByte('}')
	case *ArrayType:
		b.WriteString(`{"array":`)
		if err := writeTypeExpr(b, v.Elem); err != nil {
			return err
		}
		b.WriteByte('}')
	case *UnionType:
		b.WriteString(`{"union":[`)
		for i, alt := range v.Alts {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeTypeExpr(b, alt); err != nil {
				return err
			}
		}
		b.WriteString(`]}`)
	default:
		return fmt.Errorf("unsupported type expression: %T", t)
	}
	return nil
}

// writeString emits a JSON string, NFC normalized so that equal-looking
// source text serializes identically regardless of its Unicode
// composition.
func writeString(b *strings.Builder, s string) {
	b.WriteString(strconv.Quote(norm.NFC.String(s)))
}
