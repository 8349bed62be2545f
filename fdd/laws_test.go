package fdd_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/netkatgo/netkat/fdd"
	"github.com/netkatgo/netkat/field"
)

// genLeafFields spans four different ranks in field.DefaultOrder, so two
// independently drawn diagrams routinely disagree on which field comes
// first — the shape Seq's cross-order splice must handle correctly.
var genLeafFields = []field.Field{field.EthSrc, field.Vlan, field.EthType, field.IPProto}

// genLeafDiagram builds a shallow, single-field-branch FDD (or a bare
// leaf) so the property tests below exercise Union's and Seq's algebraic
// laws without needing a full policy compiler. Drawing the tested field
// from genLeafFields rather than fixing it to one field lets these
// properties reach Seq's multi-field cofactor path, not just the
// single-field case every argument trivially agrees on.
func genLeafDiagram(t *rapid.T, f *fdd.Forest) fdd.Handle {
	if rapid.Bool().Draw(t, "isLeaf") {
		if rapid.Bool().Draw(t, "isId") {
			return f.Id()
		}
		return f.Drop()
	}
	fl := genLeafFields[rapid.IntRange(0, len(genLeafFields)-1).Draw(t, "field")]
	v := rapid.Uint64Range(0, 4).Draw(t, "value")
	test := field.Test{Field: fl, Value: field.IntVal(v)}
	trueChild := f.Id()
	falseChild := f.Drop()
	h, err := f.Branch(test, trueChild, falseChild)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestUnionIsCommutativeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := fdd.NewForest(field.DefaultOrder(), nil)
		x := genLeafDiagram(t, f)
		y := genLeafDiagram(t, f)
		if f.Union(x, y) != f.Union(y, x) {
			t.Fatalf("union(%s, %s) != union(%s, %s)", f.ToString(x), f.ToString(y), f.ToString(y), f.ToString(x))
		}
	})
}

func TestUnionIsAssociativeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := fdd.NewForest(field.DefaultOrder(), nil)
		x := genLeafDiagram(t, f)
		y := genLeafDiagram(t, f)
		z := genLeafDiagram(t, f)
		left := f.Union(f.Union(x, y), z)
		right := f.Union(x, f.Union(y, z))
		if left != right {
			t.Fatalf("union is not associative for this triple")
		}
	})
}

func TestUnionIsIdempotentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := fdd.NewForest(field.DefaultOrder(), nil)
		x := genLeafDiagram(t, f)
		if f.Union(x, x) != x {
			t.Fatalf("union(x, x) != x")
		}
	})
}

func TestSeqIsAssociativeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := fdd.NewForest(field.DefaultOrder(), nil)
		x := genLeafDiagram(t, f)
		y := genLeafDiagram(t, f)
		z := genLeafDiagram(t, f)
		left := f.Seq(f.Seq(x, y), z)
		right := f.Seq(x, f.Seq(y, z))
		if left != right {
			t.Fatalf("seq is not associative for this triple")
		}
	})
}

func TestIdIsSeqIdentityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := fdd.NewForest(field.DefaultOrder(), nil)
		x := genLeafDiagram(t, f)
		if f.Seq(f.Id(), x) != x {
			t.Fatalf("seq(id, x) != x")
		}
		if f.Seq(x, f.Id()) != x {
			t.Fatalf("seq(x, id) != x")
		}
	})
}
