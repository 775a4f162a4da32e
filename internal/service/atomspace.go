package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/cogspace/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrAtomNotFound     = errors.New("atom not found")
	ErrOutgoingNotFound = errors.New("some atoms not found")
	ErrInvalidAtomID    = errors.New("invalid atom id")
	ErrTooManyOutgoing  = errors.New("too many outgoing atoms")
	ErrEmptyName        = errors.New("name is required")
)

// AtomSpaceService resolves request-level arguments (string ids, optional
// truth components) against an injected store.
type AtomSpaceService struct {
	space       domain.AtomSpace
	logger      *zap.Logger
	maxOutgoing int
}

func NewAtomSpaceService(space domain.AtomSpace, maxOutgoing int, logger *zap.Logger) *AtomSpaceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AtomSpaceService{
		space:       space,
		logger:      logger,
		maxOutgoing: maxOutgoing,
	}
}

type AddNodeInput struct {
	AtomType   string
	Name       string
	Strength   *float64
	Confidence *float64
}

type AddLinkInput struct {
	AtomType    string
	OutgoingIDs []string
	Strength    *float64
	Confidence  *float64
}

// truthFrom returns nil when neither component is given, so an existing
// atom keeps its truth value. A single missing component defaults to 1.0.
func truthFrom(strength, confidence *float64) *domain.TruthValue {
	if strength == nil && confidence == nil {
		return nil
	}
	s, c := 1.0, 1.0
	if strength != nil {
		s = *strength
	}
	if confidence != nil {
		c = *confidence
	}
	tv := domain.NewTruthValue(s, c)
	return &tv
}

func (s *AtomSpaceService) AddNode(ctx context.Context, in AddNodeInput) (*domain.Node, error) {
	if in.Name == "" {
		return nil, ErrEmptyName
	}
	before := s.space.Size()
	n, err := s.space.AddNode(domain.AtomType(in.AtomType), in.Name, truthFrom(in.Strength, in.Confidence))
	if err != nil {
		return nil, err
	}

	s.logger.Info("node upserted",
		zap.String("id", n.ID().String()),
		zap.String("type", n.Type().String()),
		zap.String("name", n.Name()),
		zap.Bool("created", s.space.Size() > before),
	)
	return n, nil
}

func (s *AtomSpaceService) AddLink(ctx context.Context, in AddLinkInput) (*domain.Link, error) {
	if s.maxOutgoing > 0 && len(in.OutgoingIDs) > s.maxOutgoing {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyOutgoing, len(in.OutgoingIDs), s.maxOutgoing)
	}
	// Validate the tag before resolving ids so a bad type is reported first.
	t, err := domain.ParseAtomType(in.AtomType)
	if err != nil {
		return nil, err
	}

	outgoing := make([]domain.Atom, 0, len(in.OutgoingIDs))
	for _, raw := range in.OutgoingIDs {
		id, err := parseAtomID(raw)
		if err != nil {
			return nil, err
		}
		a, ok := s.space.GetAtomByID(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrOutgoingNotFound, raw)
		}
		outgoing = append(outgoing, a)
	}

	l, err := s.space.AddLink(t, outgoing, truthFrom(in.Strength, in.Confidence))
	if err != nil {
		return nil, err
	}

	s.logger.Info("link upserted",
		zap.String("id", l.ID().String()),
		zap.String("type", l.Type().String()),
		zap.Int("arity", l.Arity()),
	)
	return l, nil
}

// RemoveAtom reports whether an atom was removed. An unknown id is a
// normal false result.
func (s *AtomSpaceService) RemoveAtom(ctx context.Context, rawID string) (bool, error) {
	id, err := parseAtomID(rawID)
	if err != nil {
		return false, err
	}
	a, ok := s.space.GetAtomByID(id)
	if !ok {
		return false, nil
	}

	before := s.space.Size()
	removed := s.space.RemoveAtom(a)
	if removed {
		s.logger.Info("atom removed",
			zap.String("id", rawID),
			zap.Int("atoms_removed", before-s.space.Size()),
		)
	}
	return removed, nil
}

func (s *AtomSpaceService) GetAtom(ctx context.Context, rawID string) (domain.Atom, error) {
	id, err := parseAtomID(rawID)
	if err != nil {
		return nil, err
	}
	a, ok := s.space.GetAtomByID(id)
	if !ok {
		return nil, ErrAtomNotFound
	}
	return a, nil
}

// ListAtoms lists every atom, or only those tagged atomType when it is set.
func (s *AtomSpaceService) ListAtoms(ctx context.Context, atomType string) ([]domain.Atom, error) {
	if atomType == "" {
		return s.space.GetAllAtoms(), nil
	}
	return s.space.GetAtomsByType(domain.AtomType(atomType))
}

func (s *AtomSpaceService) ListNodes(ctx context.Context) []*domain.Node {
	return s.space.GetAllNodes()
}

func (s *AtomSpaceService) ListLinks(ctx context.Context) []*domain.Link {
	return s.space.GetAllLinks()
}

func (s *AtomSpaceService) FindNodeByName(ctx context.Context, name, atomType string) (*domain.Node, error) {
	var filter *domain.AtomType
	if atomType != "" {
		t := domain.AtomType(atomType)
		filter = &t
	}
	n, ok, err := s.space.GetNodeByName(name, filter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAtomNotFound
	}
	return n, nil
}

// Incoming lists the links that reference the atom. An unknown id yields
// an empty list.
func (s *AtomSpaceService) Incoming(ctx context.Context, rawID string) ([]*domain.Link, error) {
	id, err := parseAtomID(rawID)
	if err != nil {
		return nil, err
	}
	a, ok := s.space.GetAtomByID(id)
	if !ok {
		return []*domain.Link{}, nil
	}
	return s.space.GetIncoming(a), nil
}

// Clear empties the store and returns how many atoms were dropped.
func (s *AtomSpaceService) Clear(ctx context.Context) int {
	n := s.space.Size()
	s.space.Clear()
	s.logger.Warn("atomspace cleared", zap.Int("atoms", n))
	return n
}

func (s *AtomSpaceService) Stats(ctx context.Context) domain.AtomSpaceStats {
	return s.space.Stats()
}

func parseAtomID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidAtomID, raw)
	}
	return id, nil
}
