// Package index implements the feature-vector subsumption index (§4.6):
// a trie keyed by a sorted feature vector summarising each stored clause,
// answering "which stored clauses subsume (or are subsumed by) this
// clause?" without a linear scan of every stored clause.
//
// The trie's physical layout is grounded on gokanlogic's path-indexed
// domain/constraint-store types (domain.go, constraint_store.go): a node
// per trie edge, insertion creates missing edges, deletion prunes empty
// subtrees. The feature/magnitude domain is deliberately concrete
// (Feature is a string, Magnitude a non-negative int) rather than fully
// generic over an arbitrary ordered type -- Go's type-parameter
// constraints make "any totally-ordered comparable" awkward to express
// faithfully for a trie key, and the one concern the spec calls out as
// truly parametric (§4.6 "the core is parametric in the feature domain")
// is served here by the injected FeatureSelector, not by a generic type
// parameter on the index itself.
package index

import (
	"sort"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
)

// Feature is one coordinate of a clause's feature vector, e.g. a
// predicate identifier tagged with sign ("Criminal+", "King-").
type Feature string

// FeatureComponent pairs a Feature with its non-negative magnitude in a
// particular clause's vector. Zero-magnitude components are never
// materialised (§4.6), which is what lets the feature universe stay open.
type FeatureComponent struct {
	Feature   Feature
	Magnitude int
}

// FeatureVector is a feature-sorted sequence of components, the key type
// the trie is built over.
type FeatureVector []FeatureComponent

// FeatureSelector derives a clause's feature vector. DefaultFeatureSelector
// is the canonical choice (§4.6): predicate identifier + sign as feature,
// occurrence count as magnitude.
type FeatureSelector func(c *fol.CNFClause) FeatureVector

// DefaultFeatureSelector counts, per (predicate identifier, sign) pair,
// how many literals in c have that shape, and returns the counts as a
// feature vector sorted by feature string.
func DefaultFeatureSelector(c *fol.CNFClause) FeatureVector {
	counts := map[Feature]int{}
	for _, l := range c.Literals {
		f := Feature(l.Predicate.ID.String())
		if l.IsNegated {
			f += "-"
		} else {
			f += "+"
		}
		counts[f]++
	}
	vec := make(FeatureVector, 0, len(counts))
	for f, m := range counts {
		vec = append(vec, FeatureComponent{Feature: f, Magnitude: m})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Feature < vec[j].Feature })
	return vec
}

type entry[V any] struct {
	Clause *fol.CNFClause
	Value  V
}

type magChild[V any] struct {
	Magnitude int
	Child     *node[V]
}

type node[V any] struct {
	// children is keyed by Feature; each slice is kept sorted ascending by
	// Magnitude so range scans ("magnitude <= m" / "magnitude >= m") can
	// stop early instead of visiting every edge.
	children map[Feature][]magChild[V]
	entries  []entry[V]
}

func newNode[V any]() *node[V] { return &node[V]{children: map[Feature][]magChild[V]{}} }

func (n *node[V]) isEmpty() bool { return len(n.entries) == 0 && len(n.children) == 0 }

// Entry is a (Clause, Value) pair returned from queries.
type Entry[V any] struct {
	Clause *fol.CNFClause
	Value  V
}

// FVIndex is the feature-vector subsumption index of §4.6.
type FVIndex[V any] struct {
	selector  FeatureSelector
	root      *node[V]
	onAdded   func(*fol.CNFClause, V)
	onRemoved func(*fol.CNFClause, V)
}

// Option configures an FVIndex at construction.
type Option[V any] func(*FVIndex[V])

// WithKeyAdded registers a listener invoked whenever Add/TryReplaceSubsumed
// confirms a new key was inserted (§4.6 "Events").
func WithKeyAdded[V any](fn func(*fol.CNFClause, V)) Option[V] {
	return func(idx *FVIndex[V]) { idx.onAdded = fn }
}

// WithKeyRemoved registers a listener invoked whenever Remove/RemoveSubsumed
// confirms a key was deleted.
func WithKeyRemoved[V any](fn func(*fol.CNFClause, V)) Option[V] {
	return func(idx *FVIndex[V]) { idx.onRemoved = fn }
}

// New builds an empty FVIndex using selector to derive feature vectors.
func New[V any](selector FeatureSelector, opts ...Option[V]) *FVIndex[V] {
	if selector == nil {
		selector = DefaultFeatureSelector
	}
	idx := &FVIndex[V]{selector: selector, root: newNode[V]()}
	for _, o := range opts {
		o(idx)
	}
	return idx
}

// Add inserts clause -> value. The empty clause is rejected as a key (it
// trivially subsumes everything and has an empty vector, §4.6). Adding a
// clause equal to one already present overwrites its value.
func (idx *FVIndex[V]) Add(clause *fol.CNFClause, value V) error {
	if clause.IsEmpty() {
		return folerr.New("fvindex.Add", folerr.InvalidArgument, "empty clause cannot be used as an FV-index key")
	}
	vec := idx.selector(clause)
	cur := idx.root
	for _, comp := range vec {
		cur = idx.getOrCreateChild(cur, comp)
	}
	for i, e := range cur.entries {
		if e.Clause.Equal(clause) {
			cur.entries[i].Value = value
			return nil
		}
	}
	cur.entries = append(cur.entries, entry[V]{Clause: clause, Value: value})
	if idx.onAdded != nil {
		idx.onAdded(clause, value)
	}
	return nil
}

func (idx *FVIndex[V]) getOrCreateChild(n *node[V], comp FeatureComponent) *node[V] {
	siblings := n.children[comp.Feature]
	i := sort.Search(len(siblings), func(i int) bool { return siblings[i].Magnitude >= comp.Magnitude })
	if i < len(siblings) && siblings[i].Magnitude == comp.Magnitude {
		return siblings[i].Child
	}
	child := newNode[V]()
	siblings = append(siblings, magChild[V]{})
	copy(siblings[i+1:], siblings[i:])
	siblings[i] = magChild[V]{Magnitude: comp.Magnitude, Child: child}
	n.children[comp.Feature] = siblings
	return child
}

// TryGet follows the exact path for clause's vector (§4.6 "get"); it
// succeeds iff every component is present AND a stored entry's clause is
// structurally equal to clause.
func (idx *FVIndex[V]) TryGet(clause *fol.CNFClause) (V, bool) {
	var zero V
	vec := idx.selector(clause)
	cur := idx.root
	for _, comp := range vec {
		next := idx.exactChild(cur, comp)
		if next == nil {
			return zero, false
		}
		cur = next
	}
	for _, e := range cur.entries {
		if e.Clause.Equal(clause) {
			return e.Value, true
		}
	}
	return zero, false
}

func (idx *FVIndex[V]) exactChild(n *node[V], comp FeatureComponent) *node[V] {
	siblings := n.children[comp.Feature]
	i := sort.Search(len(siblings), func(i int) bool { return siblings[i].Magnitude >= comp.Magnitude })
	if i < len(siblings) && siblings[i].Magnitude == comp.Magnitude {
		return siblings[i].Child
	}
	return nil
}

// GetSubsuming returns every stored entry K such that K.Clause.Subsumes(query)
// (§4.6, §8 property 8/9). A stored clause may only subsume query if, for
// every feature, its magnitude is <= query's; the trie traversal explores
// all ways query's vector can be matched as a (feature-ordered) subsequence
// of a stored path, skipping query components that have no corresponding
// stored feature (absent features act as zero), then re-checks real clause
// subsumption at each candidate leaf (the vector test is necessary, not
// sufficient).
func (idx *FVIndex[V]) GetSubsuming(query *fol.CNFClause) []Entry[V] {
	qv := idx.selector(query)
	var results []Entry[V]
	seen := map[*fol.CNFClause]bool{}
	var walk func(n *node[V], qi int)
	walk = func(n *node[V], qi int) {
		if qi == len(qv) {
			for _, e := range n.entries {
				if seen[e.Clause] {
					continue
				}
				if e.Clause.Subsumes(query) {
					seen[e.Clause] = true
					results = append(results, Entry[V]{Clause: e.Clause, Value: e.Value})
				}
			}
			return
		}
		// Option A: this query component has no counterpart in the stored
		// vector at this depth (absent stored feature acts as zero).
		walk(n, qi+1)
		// Option B: consume a stored edge at the current query feature with
		// magnitude <= the query's.
		for _, mc := range n.children[qv[qi].Feature] {
			if mc.Magnitude <= qv[qi].Magnitude {
				walk(mc.Child, qi+1)
			}
		}
	}
	walk(idx.root, 0)
	return results
}

// GetSubsumed returns every stored entry K such that query.Subsumes(K.Clause)
// -- the mirror direction of GetSubsuming: stored magnitudes must be >=
// query's, and stored clauses are free to carry additional features query
// doesn't mention (those correspond to literals absent from query, which
// is compatible with query subsuming a larger clause).
func (idx *FVIndex[V]) GetSubsumed(query *fol.CNFClause) []Entry[V] {
	qv := idx.selector(query)
	var results []Entry[V]
	seen := map[*fol.CNFClause]bool{}
	var collect func(n *node[V])
	collect = func(n *node[V]) {
		for _, e := range n.entries {
			if seen[e.Clause] {
				continue
			}
			if query.Subsumes(e.Clause) {
				seen[e.Clause] = true
				results = append(results, Entry[V]{Clause: e.Clause, Value: e.Value})
			}
		}
		for _, siblings := range n.children {
			for _, mc := range siblings {
				collect(mc.Child)
			}
		}
	}
	var walk func(n *node[V], qi int)
	walk = func(n *node[V], qi int) {
		if qi == len(qv) {
			collect(n)
			return
		}
		// Option A: stored carries an extra feature not present in query at
		// this point; descend through every edge without consuming qi.
		for _, siblings := range n.children {
			for _, mc := range siblings {
				walk(mc.Child, qi)
			}
		}
		// Option B: consume the matching feature edge, requiring stored
		// magnitude >= query's.
		for _, mc := range n.children[qv[qi].Feature] {
			if mc.Magnitude >= qv[qi].Magnitude {
				walk(mc.Child, qi+1)
			}
		}
	}
	walk(idx.root, 0)
	return results
}

// Remove deletes the single entry whose clause equals clause, pruning any
// edge whose subtree becomes both childless and empty on the way back up.
// Reports whether an entry was actually removed.
func (idx *FVIndex[V]) Remove(clause *fol.CNFClause) bool {
	vec := idx.selector(clause)
	removed := false
	var val V
	idx.root, removed, val = removePath(idx.root, vec, 0, clause)
	if removed && idx.onRemoved != nil {
		idx.onRemoved(clause, val)
	}
	return removed
}

func removePath[V any](n *node[V], vec FeatureVector, i int, clause *fol.CNFClause) (*node[V], bool, V) {
	var zero V
	if n == nil {
		return nil, false, zero
	}
	if i == len(vec) {
		for idx2, e := range n.entries {
			if e.Clause.Equal(clause) {
				val := e.Value
				n.entries = append(n.entries[:idx2], n.entries[idx2+1:]...)
				return pruneIfEmpty(n), true, val
			}
		}
		return n, false, zero
	}
	comp := vec[i]
	siblings := n.children[comp.Feature]
	pos := sort.Search(len(siblings), func(j int) bool { return siblings[j].Magnitude >= comp.Magnitude })
	if pos >= len(siblings) || siblings[pos].Magnitude != comp.Magnitude {
		return n, false, zero
	}
	newChild, removed, val := removePath(siblings[pos].Child, vec, i+1, clause)
	if newChild == nil {
		siblings = append(siblings[:pos], siblings[pos+1:]...)
	} else {
		siblings[pos].Child = newChild
	}
	if len(siblings) == 0 {
		delete(n.children, comp.Feature)
	} else {
		n.children[comp.Feature] = siblings
	}
	return pruneIfEmpty(n), removed, val
}

func pruneIfEmpty[V any](n *node[V]) *node[V] {
	if n.isEmpty() {
		return nil
	}
	return n
}

// RemoveSubsumed removes every entry K with query.Subsumes(K.Clause),
// pruning emptied edges, and returns the removed entries.
func (idx *FVIndex[V]) RemoveSubsumed(query *fol.CNFClause) []Entry[V] {
	toRemove := idx.GetSubsumed(query)
	removed := make([]Entry[V], 0, len(toRemove))
	for _, e := range toRemove {
		if idx.Remove(e.Clause) {
			removed = append(removed, e)
		}
	}
	return removed
}

// TryReplaceSubsumed implements §4.6's combined operation: if clause is
// already subsumed by some stored entry, it is a no-op returning false.
// Otherwise every stored entry clause subsumes is removed and clause/value
// is added, returning true. This is the operation the resolution engine
// (C7) calls on every derived clause to keep forward/backward subsumption
// current.
func (idx *FVIndex[V]) TryReplaceSubsumed(clause *fol.CNFClause, value V) (bool, error) {
	if len(idx.GetSubsuming(clause)) > 0 {
		return false, nil
	}
	idx.RemoveSubsumed(clause)
	if err := idx.Add(clause, value); err != nil {
		return false, err
	}
	return true, nil
}

// Iterate returns every stored entry in deterministic trie order (depth-
// first over the children map's Feature keys, sorted, then ascending
// magnitude) (§5 "Ordering guarantees").
func (idx *FVIndex[V]) Iterate() []Entry[V] {
	var results []Entry[V]
	var walk func(n *node[V])
	walk = func(n *node[V]) {
		for _, e := range n.entries {
			results = append(results, Entry[V]{Clause: e.Clause, Value: e.Value})
		}
		features := make([]Feature, 0, len(n.children))
		for f := range n.children {
			features = append(features, f)
		}
		sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })
		for _, f := range features {
			for _, mc := range n.children[f] {
				walk(mc.Child)
			}
		}
	}
	walk(idx.root)
	return results
}

// Len returns the number of stored entries.
func (idx *FVIndex[V]) Len() int { return len(idx.Iterate()) }
