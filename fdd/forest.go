package fdd

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/netkatgo/netkat/action"
	"github.com/netkatgo/netkat/field"
)

const internShardCount = 32

type internShard struct {
	mu    sync.RWMutex
	table map[string]Handle
}

// applyKey is the memo key for the binary Apply engine: an operator tag
// plus the two argument handles. Including the tag lets every binary
// operator (Union, the Seq helper cross-product, ...) share one cache
// instance instead of one LRU per operator.
type applyKey struct {
	op string
	x  Handle
	y  Handle
}

// unaryKey memoizes MapLeaves-family traversals (Restrict, Negate, and
// Seq's per-action leaf rewrite; Dedup is not memoized). Unlike Apply these only ever take one FDD
// argument, plus whatever scalar parameter distinguishes the call (e.g.
// the field.Test being restricted on), folded into extra.
type unaryKey struct {
	op    string
	x     Handle
	extra string
}

// Forest owns one hash-consed node universe and its memo caches. All
// FDDs produced by a single compilation must come from the same Forest:
// handles from different Forests are not comparable and Apply does not
// attempt to detect the mistake (spec.md's handle-identity contract is a
// closed-world one).
//
// Concurrency: node lookups and inserts are striped across
// internShardCount independent locks keyed by xxhash of the node's
// structural key, so unrelated nodes never contend. The node table
// itself (nodes, indexed by Handle) is append-only and guarded by a
// single RWMutex: reads (by far the common case once a diagram is built)
// take the read lock, and only node creation takes the write lock.
type Forest struct {
	order field.Order

	mu    sync.RWMutex
	nodes []node // index 0 is the invalidHandle sentinel, unused

	shards [internShardCount]internShard

	applyMemo *lru.Cache[applyKey, Handle]
	unaryMemo *lru.Cache[unaryKey, Handle]

	dropHandle Handle
	idHandle   Handle

	log *zap.SugaredLogger
}

// defaultMemoSize bounds the Apply/MapLeaves caches. It is a cache, not a
// source of truth — eviction only costs recomputation, never
// correctness, since the node table (the actual source of canonicity) is
// never itself LRU-bounded.
const defaultMemoSize = 1 << 16

// NewForest creates an empty Forest ordered by ord. log may be nil, in
// which case a no-op logger is used.
func NewForest(ord field.Order, log *zap.SugaredLogger) *Forest {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	f := &Forest{
		order: ord,
		nodes: make([]node, 1, 256),
		log:   log,
	}
	for i := range f.shards {
		f.shards[i].table = make(map[string]Handle)
	}
	var err error
	f.applyMemo, err = lru.New[applyKey, Handle](defaultMemoSize)
	if err != nil {
		panic(fmt.Sprintf("fdd: apply memo cache: %v", err))
	}
	f.unaryMemo, err = lru.New[unaryKey, Handle](defaultMemoSize)
	if err != nil {
		panic(fmt.Sprintf("fdd: unary memo cache: %v", err))
	}
	f.dropHandle = f.Leaf(action.Drop())
	f.idHandle = f.Leaf(action.Id())
	return f
}

// Order returns the field order this Forest was built with.
func (f *Forest) Order() field.Order { return f.order }

// Log returns the logger this Forest was constructed with, for callers
// in other packages (policy, flowtable, multitable) that want to log
// under the same sink a compile pass already uses. Never nil.
func (f *Forest) Log() *zap.SugaredLogger { return f.log }

// Drop returns the canonical all-drop leaf.
func (f *Forest) Drop() Handle { return f.dropHandle }

// Id returns the canonical all-forward leaf.
func (f *Forest) Id() Handle { return f.idHandle }

// ResetMemo discards the Apply/MapLeaves memo caches without touching the
// node table, the options.CacheMode "Empty" lifecycle: subsequent
// compiles still share the node table's sharing (and so its identity
// guarantees) but recompute rather than reuse stale cross-compile memo
// hits. See options.CacheMode.
func (f *Forest) ResetMemo() {
	f.applyMemo.Purge()
	f.unaryMemo.Purge()
	f.log.Debugw("fdd: memo caches reset", "nodes", f.NodeCount())
}

// NodeCount returns the number of interned nodes (leaves and branches),
// the same quantity Size reports for a single diagram but taken over the
// whole Forest.
func (f *Forest) NodeCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.nodes) - 1
}

func (f *Forest) get(h Handle) node {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.nodes[h]
}

func (f *Forest) shardFor(key string) *internShard {
	idx := xxhash.Sum64String(key) % internShardCount
	return &f.shards[idx]
}

func (f *Forest) intern(key string, build func() node) Handle {
	shard := f.shardFor(key)

	shard.mu.RLock()
	if h, ok := shard.table[key]; ok {
		shard.mu.RUnlock()
		return h
	}
	shard.mu.RUnlock()

	shard.mu.Lock()
	defer shard.mu.Unlock()
	if h, ok := shard.table[key]; ok {
		return h
	}

	f.mu.Lock()
	f.nodes = append(f.nodes, build())
	h := Handle(len(f.nodes) - 1)
	f.mu.Unlock()

	shard.table[key] = h
	return h
}

func leafKey(s action.Set) string { return "L|" + s.String() }

// Leaf interns an ActionSet as a terminal node.
func (f *Forest) Leaf(s action.Set) Handle {
	return f.intern(leafKey(s), func() node { return node{isLeaf: true, leaf: s} })
}

func branchKey(t field.Test, tc, fc Handle) string {
	return fmt.Sprintf("B|%d|%s|%d|%d", t.Field, t.Value.String(), tc, fc)
}

// Branch is the FDD constructor mk(test, trueChild, falseChild) from
// spec.md section 4.2. It performs the node's two reductions before
// interning:
//
//   - trueChild == falseChild: the test is irrelevant, return that child.
//   - falseChild is itself a branch on the same field at a lesser Value:
//     the chain is out of ascending order (see doc.go); Branch rotates it
//     into order rather than requiring the caller to pre-sort, the
//     "cofactor lift" spec.md mentions without detailing.
//
// Branch returns ErrNodeOrderViolation if trueChild is a branch whose
// field is not strictly greater than test.Field — every call site inside
// this package is expected to maintain that invariant itself, so tripping
// this error means a bug in this package, not in a caller.
func (f *Forest) Branch(test field.Test, trueChild, falseChild Handle) (Handle, error) {
	if trueChild == falseChild {
		return trueChild, nil
	}

	if tn := f.get(trueChild); !tn.isLeaf {
		if !f.order.Less(test.Field, tn.test.Field) {
			return invalidHandle, fmt.Errorf("%w: test field %s, true-child field %s",
				ErrNodeOrderViolation, test.Field, tn.test.Field)
		}
	}

	if fn := f.get(falseChild); !fn.isLeaf && fn.test.Field == test.Field {
		if fn.test.Value.Compare(test.Value) < 0 {
			// fn's value precedes test's: rotate fn to the outside so the
			// chain stays ascending by Value, recursing on the (shorter)
			// remainder of the chain.
			rotatedFalse, err := f.Branch(test, trueChild, fn.fChild)
			if err != nil {
				return invalidHandle, err
			}
			return f.Branch(fn.test, fn.tChild, rotatedFalse)
		}
	}

	h := f.intern(branchKey(test, trueChild, falseChild), func() node {
		return node{test: test, tChild: trueChild, fChild: falseChild}
	})
	return h, nil
}

// mustBranch calls Branch and panics on error; used only where the
// caller has already established the invariant holds (internal recursive
// helpers operating on already-canonical diagrams), so a failure here
// indicates a genuine bug in this package rather than bad input.
func (f *Forest) mustBranch(test field.Test, trueChild, falseChild Handle) Handle {
	h, err := f.Branch(test, trueChild, falseChild)
	if err != nil {
		panic(err)
	}
	return h
}

// IsLeaf reports whether h names a terminal node.
func (f *Forest) IsLeaf(h Handle) bool { return f.get(h).isLeaf }

// LeafValue returns the ActionSet of a terminal node. Callers must check
// IsLeaf first; LeafValue panics on a branch handle, same contract as a
// type assertion without the ", ok" form.
func (f *Forest) LeafValue(h Handle) action.Set {
	n := f.get(h)
	if !n.isLeaf {
		panic("fdd: LeafValue called on a branch handle")
	}
	return n.leaf
}

// BranchTest returns the (Test, trueChild, falseChild) triple of a branch
// node. ok is false if h names a leaf.
func (f *Forest) BranchTest(h Handle) (test field.Test, trueChild, falseChild Handle, ok bool) {
	n := f.get(h)
	if n.isLeaf {
		return field.Test{}, 0, 0, false
	}
	return n.test, n.tChild, n.fChild, true
}
