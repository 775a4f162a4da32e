package domain

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

type Kind string

const (
	KindNode Kind = "node"
	KindLink Kind = "link"
)

// Atom is either a *Node or a *Link. Each variant supplies its own
// structural Equal and Hash; identity comparison goes through SameAtom.
type Atom interface {
	ID() uuid.UUID
	Type() AtomType
	Kind() Kind
	TruthValue() TruthValue
	SetTruthValue(tv TruthValue)
	Equal(other Atom) bool
	Hash() uint64
	String() string

	isAtom()
}

// SameAtom is identity equality: true only when both handles carry the
// same unique id. Two independently built nodes with equal (type, name)
// are Equal but not SameAtom.
func SameAtom(a, b Atom) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

type atomBase struct {
	id  uuid.UUID
	typ AtomType
	tv  atomic.Pointer[TruthValue]
}

func (a *atomBase) init(t AtomType, tv *TruthValue) {
	a.id = uuid.New()
	a.typ = t
	v := DefaultTruthValue()
	if tv != nil {
		v = *tv
	}
	a.tv.Store(&v)
}

func (a *atomBase) ID() uuid.UUID   { return a.id }
func (a *atomBase) Type() AtomType { return a.typ }

func (a *atomBase) TruthValue() TruthValue {
	if p := a.tv.Load(); p != nil {
		return *p
	}
	return DefaultTruthValue()
}

// SetTruthValue replaces the truth value in place. Identity never depends
// on it.
func (a *atomBase) SetTruthValue(tv TruthValue) {
	a.tv.Store(&tv)
}

// Node is a named atom. Its identity is (type, name).
type Node struct {
	atomBase
	name string
	hash uint64
}

// NewNode builds a detached node with a fresh id. Nodes that live in an
// AtomSpace are created through AtomSpace.AddNode.
func NewNode(t AtomType, name string, tv *TruthValue) *Node {
	n := &Node{name: name}
	n.init(t, tv)
	n.hash = nodeHash(t, name)
	return n
}

func nodeHash(t AtomType, name string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(KindNode))
	_, _ = d.WriteString(string(t))
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(name)
	return d.Sum64()
}

func (n *Node) Name() string { return n.name }
func (n *Node) Kind() Kind   { return KindNode }
func (n *Node) Hash() uint64 { return n.hash }
func (n *Node) isAtom()      {}

// Equal is structural: same type and name, regardless of id or truth value.
func (n *Node) Equal(other Atom) bool {
	o, ok := other.(*Node)
	if !ok || n == nil || o == nil {
		return false
	}
	return n.typ == o.typ && n.name == o.name
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(type=%s, name='%s')", n.typ, n.name)
}

// Link is an ordered hyperedge over other atoms. Its identity is
// (type, outgoing), compared element by element.
type Link struct {
	atomBase
	outgoing []Atom
	hash     uint64
}

// NewLink builds a detached link with a fresh id. The outgoing slice is
// copied; the atoms it references are shared, not cloned.
func NewLink(t AtomType, outgoing []Atom, tv *TruthValue) *Link {
	out := make([]Atom, len(outgoing))
	copy(out, outgoing)
	l := &Link{outgoing: out}
	l.init(t, tv)
	l.hash = LinkHash(t, out)
	return l
}

// LinkHash is the hash a link of type t over outgoing would carry. It
// combines the element hashes in order; outgoing atoms never change
// identity, so links compute it once.
func LinkHash(t AtomType, outgoing []Atom) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(KindLink))
	_, _ = d.WriteString(string(t))
	_, _ = d.Write([]byte{0})
	buf := make([]byte, 0, 8*len(outgoing))
	for _, a := range outgoing {
		var h uint64
		if a != nil {
			h = a.Hash()
		}
		buf = binary.LittleEndian.AppendUint64(buf, h)
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}

func (l *Link) Kind() Kind   { return KindLink }
func (l *Link) Hash() uint64 { return l.hash }
func (l *Link) isAtom()      {}

// Outgoing returns a copy of the ordered target list.
func (l *Link) Outgoing() []Atom {
	out := make([]Atom, len(l.outgoing))
	copy(out, l.outgoing)
	return out
}

// OutgoingIDs returns the ids of the outgoing atoms, in order.
func (l *Link) OutgoingIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(l.outgoing))
	for i, a := range l.outgoing {
		if a != nil {
			ids[i] = a.ID()
		}
	}
	return ids
}

func (l *Link) Arity() int { return len(l.outgoing) }

// MatchesOutgoing reports whether outgoing equals this link's targets
// element-wise.
func (l *Link) MatchesOutgoing(outgoing []Atom) bool {
	return OutgoingEqual(l.outgoing, outgoing)
}

// Equal is structural and recursive through nested links.
func (l *Link) Equal(other Atom) bool {
	o, ok := other.(*Link)
	if !ok || l == nil || o == nil {
		return false
	}
	if l.typ != o.typ || l.hash != o.hash {
		return false
	}
	return OutgoingEqual(l.outgoing, o.outgoing)
}

// OutgoingEqual compares two outgoing sequences element-wise using each
// element's own Equal.
func OutgoingEqual(a, b []Atom) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil {
			if a[i] != b[i] {
				return false
			}
			continue
		}
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (l *Link) String() string {
	parts := make([]string, len(l.outgoing))
	for i, a := range l.outgoing {
		if a == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = a.String()
	}
	return fmt.Sprintf("Link(type=%s, outgoing=[%s])", l.typ, strings.Join(parts, ", "))
}

// Compile-time checks.
var (
	_ Atom = (*Node)(nil)
	_ Atom = (*Link)(nil)
)
