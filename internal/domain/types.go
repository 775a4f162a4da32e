package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when a textual type tag matches no AtomType.
	ErrUnknownType = errors.New("unknown atom type")
	ErrNilAtom     = errors.New("outgoing contains a nil atom")
)

type AtomType string

const (
	// Abstract base tags
	AtomTypeAtom AtomType = "Atom"
	AtomTypeNode AtomType = "Node"
	AtomTypeLink AtomType = "Link"

	// Node kinds
	ConceptNode   AtomType = "ConceptNode"
	PredicateNode AtomType = "PredicateNode"
	VariableNode  AtomType = "VariableNode"
	NumberNode    AtomType = "NumberNode"
	SchemaNode    AtomType = "SchemaNode"

	// Link kinds
	InheritanceLink AtomType = "InheritanceLink"
	SimilarityLink  AtomType = "SimilarityLink"
	ImplicationLink AtomType = "ImplicationLink"
	EvaluationLink  AtomType = "EvaluationLink"
	ExecutionLink   AtomType = "ExecutionLink"
	ListLink        AtomType = "ListLink"
	SetLink         AtomType = "SetLink"
	MemberLink      AtomType = "MemberLink"
	AndLink         AtomType = "AndLink"
	OrLink          AtomType = "OrLink"
	NotLink         AtomType = "NotLink"
)

// allAtomTypes keeps declaration order for listings.
var allAtomTypes = []AtomType{
	AtomTypeAtom, AtomTypeNode, AtomTypeLink,
	ConceptNode, PredicateNode, VariableNode, NumberNode, SchemaNode,
	InheritanceLink, SimilarityLink, ImplicationLink, EvaluationLink, ExecutionLink,
	ListLink, SetLink, MemberLink, AndLink, OrLink, NotLink,
}

// NodeTypes is the closed set of node tags, including the abstract Node tag.
var NodeTypes = map[AtomType]bool{
	AtomTypeNode:  true,
	ConceptNode:   true,
	PredicateNode: true,
	VariableNode:  true,
	NumberNode:    true,
	SchemaNode:    true,
}

// LinkTypes is the closed set of link tags, including the abstract Link tag.
var LinkTypes = map[AtomType]bool{
	AtomTypeLink:    true,
	InheritanceLink: true,
	SimilarityLink:  true,
	ImplicationLink: true,
	EvaluationLink:  true,
	ExecutionLink:   true,
	ListLink:        true,
	SetLink:         true,
	MemberLink:      true,
	AndLink:         true,
	OrLink:          true,
	NotLink:         true,
}

// ParseAtomType converts a textual tag into an AtomType. Matching is exact:
// no case folding and no trimming.
func ParseAtomType(s string) (AtomType, error) {
	switch t := AtomType(s); t {
	case AtomTypeAtom:
		return t, nil
	default:
		if NodeTypes[t] || LinkTypes[t] {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func ValidAtomType(s string) bool {
	_, err := ParseAtomType(s)
	return err == nil
}

func IsNode(t AtomType) bool {
	return NodeTypes[t]
}

func IsLink(t AtomType) bool {
	return LinkTypes[t]
}

// AllAtomTypes returns every known tag in declaration order.
func AllAtomTypes() []AtomType {
	out := make([]AtomType, len(allAtomTypes))
	copy(out, allAtomTypes)
	return out
}

func (t AtomType) String() string {
	return string(t)
}
