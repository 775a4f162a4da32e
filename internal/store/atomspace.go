package store

import (
	"cmp"
	"slices"
	"sync"

	"github.com/Harshitk-cp/cogspace/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type entry struct {
	atom domain.Atom
	seq  uint64
}

type idSet map[uuid.UUID]struct{}

type nodeKey struct {
	typ  domain.AtomType
	name string
}

type linkKey struct {
	typ  domain.AtomType
	hash uint64
}

// AtomSpace is an in-memory hypergraph store. Every index refers to atoms
// by id and resolves them through the primary map, so removal is pure
// index bookkeeping. A single RWMutex covers all indices: mutations hold
// the write lock for their whole duration, including cascades.
type AtomSpace struct {
	mu     sync.RWMutex
	logger *zap.Logger

	atoms       map[uuid.UUID]*entry
	nodesByType map[domain.AtomType]idSet
	nodesByName map[string]idSet
	linksByType map[domain.AtomType]idSet
	incoming    map[uuid.UUID]idSet

	// dedup lookups
	nodeKeys map[nodeKey]uuid.UUID
	linkKeys map[linkKey][]uuid.UUID

	seq uint64
}

func NewAtomSpace(logger *zap.Logger) *AtomSpace {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AtomSpace{logger: logger}
	s.reset()
	return s
}

func (s *AtomSpace) reset() {
	s.atoms = make(map[uuid.UUID]*entry)
	s.nodesByType = make(map[domain.AtomType]idSet)
	s.nodesByName = make(map[string]idSet)
	s.linksByType = make(map[domain.AtomType]idSet)
	s.incoming = make(map[uuid.UUID]idSet)
	s.nodeKeys = make(map[nodeKey]uuid.UUID)
	s.linkKeys = make(map[linkKey][]uuid.UUID)
}

// AddNode returns the live node with the given (type, name), creating it
// if needed. A non-nil tv overwrites the truth value of an existing node.
func (s *AtomSpace) AddNode(t domain.AtomType, name string, tv *domain.TruthValue) (*domain.Node, error) {
	t, err := domain.ParseAtomType(string(t))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := nodeKey{typ: t, name: name}
	if id, ok := s.nodeKeys[key]; ok {
		n := s.atoms[id].atom.(*domain.Node)
		if tv != nil {
			n.SetTruthValue(*tv)
		}
		s.logger.Debug("node deduplicated", zap.String("type", t.String()), zap.String("name", name))
		return n, nil
	}

	n := domain.NewNode(t, name, tv)
	id := n.ID()
	s.insert(n)
	addToSet(s.nodesByType, t, id)
	addToSet(s.nodesByName, name, id)
	s.nodeKeys[key] = id

	s.logger.Debug("node added",
		zap.String("id", id.String()),
		zap.String("type", t.String()),
		zap.String("name", name),
	)
	return n, nil
}

// AddLink returns the live link of type t whose outgoing sequence equals
// outgoing element-wise, creating it if needed. Neither arity nor the
// membership of the outgoing atoms in this store is checked.
func (s *AtomSpace) AddLink(t domain.AtomType, outgoing []domain.Atom, tv *domain.TruthValue) (*domain.Link, error) {
	t, err := domain.ParseAtomType(string(t))
	if err != nil {
		return nil, err
	}
	for _, a := range outgoing {
		if a == nil {
			return nil, domain.ErrNilAtom
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := linkKey{typ: t, hash: domain.LinkHash(t, outgoing)}
	for _, id := range s.linkKeys[key] {
		l := s.atoms[id].atom.(*domain.Link)
		if l.Type() == t && l.MatchesOutgoing(outgoing) {
			if tv != nil {
				l.SetTruthValue(*tv)
			}
			s.logger.Debug("link deduplicated", zap.String("id", id.String()), zap.String("type", t.String()))
			return l, nil
		}
	}

	l := domain.NewLink(t, outgoing, tv)
	id := l.ID()
	s.insert(l)
	addToSet(s.linksByType, t, id)
	s.linkKeys[key] = append(s.linkKeys[key], id)
	for _, a := range outgoing {
		addToSet(s.incoming, a.ID(), id)
	}

	s.logger.Debug("link added",
		zap.String("id", id.String()),
		zap.String("type", t.String()),
		zap.Int("arity", l.Arity()),
	)
	return l, nil
}

func (s *AtomSpace) insert(a domain.Atom) {
	s.seq++
	s.atoms[a.ID()] = &entry{atom: a, seq: s.seq}
}

// RemoveAtom deletes a by id and, transitively, every link that refers to
// it. It reports false when a is not in the store.
func (s *AtomSpace) RemoveAtom(a domain.Atom) bool {
	if a == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.removeLocked(a.ID())
	if removed == 0 {
		return false
	}
	s.logger.Debug("atom removed",
		zap.String("id", a.ID().String()),
		zap.Int("cascaded", removed-1),
	)
	return true
}

// removeLocked returns how many atoms were removed, a included.
func (s *AtomSpace) removeLocked(id uuid.UUID) int {
	e, ok := s.atoms[id]
	if !ok {
		return 0
	}
	delete(s.atoms, id)

	switch atom := e.atom.(type) {
	case *domain.Node:
		removeFromSet(s.nodesByType, atom.Type(), id)
		removeFromSet(s.nodesByName, atom.Name(), id)
		key := nodeKey{typ: atom.Type(), name: atom.Name()}
		if s.nodeKeys[key] == id {
			delete(s.nodeKeys, key)
		}
	case *domain.Link:
		removeFromSet(s.linksByType, atom.Type(), id)
		s.dropLinkKey(atom)
		for _, target := range atom.OutgoingIDs() {
			removeFromSet(s.incoming, target, id)
		}
	}

	removed := 1
	// Links referring to this atom go too. Each removal unwinds its own
	// incoming set first, so chains of links over links collapse fully.
	for _, le := range s.resolve(s.incoming[id]) {
		removed += s.removeLocked(le.atom.ID())
	}
	delete(s.incoming, id)
	return removed
}

func (s *AtomSpace) dropLinkKey(l *domain.Link) {
	key := linkKey{typ: l.Type(), hash: l.Hash()}
	ids := s.linkKeys[key]
	for i, id := range ids {
		if id == l.ID() {
			ids = slices.Delete(ids, i, i+1)
			break
		}
	}
	if len(ids) == 0 {
		delete(s.linkKeys, key)
		return
	}
	s.linkKeys[key] = ids
}

func (s *AtomSpace) GetAtomByID(id uuid.UUID) (domain.Atom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.atoms[id]
	if !ok {
		return nil, false
	}
	return e.atom, true
}

// GetAtomsByType lists the atoms tagged exactly t. Tags are not checked
// against the atom kind on insert, so both type indices are read.
func (s *AtomSpace) GetAtomsByType(t domain.AtomType) ([]domain.Atom, error) {
	t, err := domain.ParseAtomType(string(t))
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := append(s.resolve(s.nodesByType[t]), s.resolve(s.linksByType[t])...)
	sortBySeq(entries)
	return atomsOf(entries), nil
}

// GetNodeByName finds a node by name, optionally restricted to type t.
// Without a type filter the earliest inserted of the same-named nodes wins.
func (s *AtomSpace) GetNodeByName(name string, t *domain.AtomType) (*domain.Node, bool, error) {
	var want domain.AtomType
	if t != nil {
		parsed, err := domain.ParseAtomType(string(*t))
		if err != nil {
			return nil, false, err
		}
		want = parsed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.resolve(s.nodesByName[name]) {
		n := e.atom.(*domain.Node)
		if t == nil || n.Type() == want {
			return n, true, nil
		}
	}
	return nil, false, nil
}

// GetIncoming lists the links whose outgoing sequence contains a.
func (s *AtomSpace) GetIncoming(a domain.Atom) []*domain.Link {
	if a == nil {
		return []*domain.Link{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return linksOf(s.resolve(s.incoming[a.ID()]))
}

func (s *AtomSpace) GetAllAtoms() []domain.Atom {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return atomsOf(s.all())
}

func (s *AtomSpace) GetAllNodes() []*domain.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*domain.Node, 0)
	for _, e := range s.all() {
		if n, ok := e.atom.(*domain.Node); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (s *AtomSpace) GetAllLinks() []*domain.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return linksOf(s.all())
}

// Clear drops every atom and index entry.
func (s *AtomSpace) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.atoms)
	s.reset()
	s.logger.Debug("atomspace cleared", zap.Int("atoms", n))
}

func (s *AtomSpace) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.atoms)
}

func (s *AtomSpace) Stats() domain.AtomSpaceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.AtomSpaceStats{
		Atoms:  len(s.atoms),
		ByType: make(map[domain.AtomType]int),
	}
	for t, ids := range s.nodesByType {
		stats.Nodes += len(ids)
		stats.ByType[t] += len(ids)
	}
	for t, ids := range s.linksByType {
		stats.Links += len(ids)
		stats.ByType[t] += len(ids)
	}
	return stats
}

func (s *AtomSpace) all() []*entry {
	entries := make([]*entry, 0, len(s.atoms))
	for _, e := range s.atoms {
		entries = append(entries, e)
	}
	sortBySeq(entries)
	return entries
}

// resolve maps ids to live entries in insertion order. Ids that are not
// in the primary map are skipped.
func (s *AtomSpace) resolve(ids idSet) []*entry {
	entries := make([]*entry, 0, len(ids))
	for id := range ids {
		if e, ok := s.atoms[id]; ok {
			entries = append(entries, e)
		}
	}
	sortBySeq(entries)
	return entries
}

func sortBySeq(entries []*entry) {
	slices.SortFunc(entries, func(a, b *entry) int {
		return cmp.Compare(a.seq, b.seq)
	})
}

func atomsOf(entries []*entry) []domain.Atom {
	out := make([]domain.Atom, len(entries))
	for i, e := range entries {
		out[i] = e.atom
	}
	return out
}

func linksOf(entries []*entry) []*domain.Link {
	out := make([]*domain.Link, 0, len(entries))
	for _, e := range entries {
		if l, ok := e.atom.(*domain.Link); ok {
			out = append(out, l)
		}
	}
	return out
}

func addToSet[K comparable](m map[K]idSet, k K, id uuid.UUID) {
	set, ok := m[k]
	if !ok {
		set = make(idSet)
		m[k] = set
	}
	set[id] = struct{}{}
}

func removeFromSet[K comparable](m map[K]idSet, k K, id uuid.UUID) {
	set, ok := m[k]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(m, k)
	}
}

var _ domain.AtomSpace = (*AtomSpace)(nil)
