package fdd

import (
	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/field"
)

// Handle is an interned FDD node identity. The zero Handle never denotes
// a real node; it is used as an "absent" sentinel in a few internal
// slots. Two Handles compare equal if and only if the diagrams they name
// are structurally identical — canonicity is the whole point of the
// intern table in forest.go.
type Handle uint64

const invalidHandle Handle = 0

// node is the interned representation of one FDD node: either a leaf
// (isLeaf true, leaf populated) or a branch (test/tChild/fChild
// populated). Using one struct with a tag, rather than an interface with
// two implementations, keeps Apply's hot path free of virtual dispatch —
// the same tagged-union choice field.Value makes for Kind.
type node struct {
	isLeaf bool
	leaf   action.Set

	test   field.Test
	tChild Handle
	fChild Handle
}
