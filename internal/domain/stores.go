package domain

import "github.com/google/uuid"

// AtomSpace is the hypergraph store contract consumed by the service layer.
// Not-found is reported through the bool results, never as an error; the
// only error any method returns wraps ErrUnknownType.
type AtomSpace interface {
	AddNode(t AtomType, name string, tv *TruthValue) (*Node, error)
	AddLink(t AtomType, outgoing []Atom, tv *TruthValue) (*Link, error)
	RemoveAtom(a Atom) bool

	GetAtomByID(id uuid.UUID) (Atom, bool)
	GetAtomsByType(t AtomType) ([]Atom, error)
	GetNodeByName(name string, t *AtomType) (*Node, bool, error)
	GetIncoming(a Atom) []*Link

	GetAllAtoms() []Atom
	GetAllNodes() []*Node
	GetAllLinks() []*Link

	Clear()
	Size() int
	Stats() AtomSpaceStats
}

// AtomSpaceStats summarises the contents of a store.
type AtomSpaceStats struct {
	Atoms  int              `json:"atoms"`
	Nodes  int              `json:"nodes"`
	Links  int              `json:"links"`
	ByType map[AtomType]int `json:"by_type"`
}
