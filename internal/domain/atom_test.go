package domain

import (
	"testing"
)

func tvPtr(s, c float64) *TruthValue {
	tv := NewTruthValue(s, c)
	return &tv
}

func TestNodeStructuralEquality(t *testing.T) {
	a := NewNode(ConceptNode, "cat", nil)
	b := NewNode(ConceptNode, "cat", tvPtr(0.1, 0.2))

	if a.ID() == b.ID() {
		t.Fatal("independently built nodes must get distinct ids")
	}
	if !a.Equal(b) || !b.Equal(a) {
		t.Error("nodes with equal (type, name) should be equal")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal nodes must hash identically")
	}
	if SameAtom(a, b) {
		t.Error("identity equality must not hold across distinct ids")
	}
	if !SameAtom(a, a) {
		t.Error("an atom is identical to itself")
	}

	if a.Equal(NewNode(PredicateNode, "cat", nil)) {
		t.Error("nodes of different types should differ")
	}
	if a.Equal(NewNode(ConceptNode, "dog", nil)) {
		t.Error("nodes with different names should differ")
	}
}

func TestNodeNeverEqualsLink(t *testing.T) {
	n := NewNode(ConceptNode, "x", nil)
	l := NewLink(ListLink, []Atom{n}, nil)

	if n.Equal(l) || l.Equal(n) {
		t.Error("a node and a link are never structurally equal")
	}
	if n.Equal(nil) {
		t.Error("a node never equals nil")
	}
}

func TestLinkStructuralEquality(t *testing.T) {
	cat := NewNode(ConceptNode, "cat", nil)
	animal := NewNode(ConceptNode, "animal", nil)
	catCopy := NewNode(ConceptNode, "cat", nil)

	l1 := NewLink(InheritanceLink, []Atom{cat, animal}, nil)
	l2 := NewLink(InheritanceLink, []Atom{catCopy, animal}, tvPtr(0.3, 0.3))

	if l1.ID() == l2.ID() {
		t.Fatal("links must get distinct ids")
	}
	if !l1.Equal(l2) {
		t.Error("links with element-wise equal outgoing should be equal")
	}
	if l1.Hash() != l2.Hash() {
		t.Error("equal links must hash identically")
	}

	reversed := NewLink(InheritanceLink, []Atom{animal, cat}, nil)
	if l1.Equal(reversed) {
		t.Error("outgoing order must matter")
	}
	if l1.Equal(NewLink(SimilarityLink, []Atom{cat, animal}, nil)) {
		t.Error("link type must matter")
	}
	if l1.Equal(NewLink(InheritanceLink, []Atom{cat}, nil)) {
		t.Error("arity must matter")
	}
}

func TestNestedLinkEquality(t *testing.T) {
	a := NewNode(ConceptNode, "a", nil)
	b := NewNode(ConceptNode, "b", nil)

	inner1 := NewLink(ListLink, []Atom{a, b}, nil)
	inner2 := NewLink(ListLink, []Atom{NewNode(ConceptNode, "a", nil), b}, nil)

	outer1 := NewLink(SetLink, []Atom{inner1, a}, nil)
	outer2 := NewLink(SetLink, []Atom{inner2, a}, nil)

	if !outer1.Equal(outer2) {
		t.Error("link equality should recurse into nested links")
	}
	if outer1.Hash() != outer2.Hash() {
		t.Error("nested equal links must hash identically")
	}
}

func TestLinkOutgoingIsCopied(t *testing.T) {
	a := NewNode(ConceptNode, "a", nil)
	b := NewNode(ConceptNode, "b", nil)
	src := []Atom{a, b}

	l := NewLink(ListLink, src, nil)
	src[0] = b

	if !SameAtom(l.Outgoing()[0], a) {
		t.Error("mutating the caller's slice must not change the link")
	}

	view := l.Outgoing()
	view[1] = a
	if !SameAtom(l.Outgoing()[1], b) {
		t.Error("mutating the returned view must not change the link")
	}
	if l.Arity() != 2 {
		t.Errorf("Arity() = %d, want 2", l.Arity())
	}

	ids := l.OutgoingIDs()
	if ids[0] != a.ID() || ids[1] != b.ID() {
		t.Error("OutgoingIDs should follow outgoing order")
	}
}

func TestTruthValueSlotIsMutable(t *testing.T) {
	n := NewNode(ConceptNode, "cat", nil)
	if !n.TruthValue().Equal(DefaultTruthValue()) {
		t.Errorf("new atom should carry the default truth value, got %v", n.TruthValue())
	}

	before := n.Hash()
	n.SetTruthValue(NewTruthValue(0.2, 0.4))
	if !n.TruthValue().Equal(NewTruthValue(0.2, 0.4)) {
		t.Errorf("SetTruthValue did not take effect: %v", n.TruthValue())
	}
	if n.Hash() != before {
		t.Error("truth value must not affect the hash")
	}
}

func TestAtomStrings(t *testing.T) {
	cat := NewNode(ConceptNode, "cat", nil)
	animal := NewNode(ConceptNode, "animal", nil)
	l := NewLink(InheritanceLink, []Atom{cat, animal}, nil)

	if got := cat.String(); got != "Node(type=ConceptNode, name='cat')" {
		t.Errorf("node String() = %s", got)
	}
	want := "Link(type=InheritanceLink, outgoing=[Node(type=ConceptNode, name='cat'), Node(type=ConceptNode, name='animal')])"
	if got := l.String(); got != want {
		t.Errorf("link String() = %s", got)
	}
}
