package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/Harshitk-cp/cogspace/internal/domain"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownRef   = errors.New("unknown ref")
	ErrDuplicateRef = errors.New("duplicate ref")
	ErrBadTruth     = errors.New("truth must be [strength, confidence]")
)

// SeedYAML represents the seed file structure
type SeedYAML struct {
	Nodes []NodeYAML `yaml:"nodes"`
	Links []LinkYAML `yaml:"links"`
}

// NodeYAML represents a node entry. Ref defaults to the node name.
type NodeYAML struct {
	Ref   string    `yaml:"ref,omitempty"`
	Type  string    `yaml:"type"`
	Name  string    `yaml:"name"`
	Truth []float64 `yaml:"truth,omitempty"`
}

// LinkYAML represents a link entry. Outgoing holds refs of nodes or of
// links declared earlier in the file.
type LinkYAML struct {
	Ref      string    `yaml:"ref,omitempty"`
	Type     string    `yaml:"type"`
	Outgoing []string  `yaml:"outgoing"`
	Truth    []float64 `yaml:"truth,omitempty"`
}

// Result summarises a load.
type Result struct {
	Nodes int
	Links int
	Refs  map[string]domain.Atom
}

// LoadYAML loads a seed file into space
func LoadYAML(path string, space domain.AtomSpace) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseYAML(data, space)
}

// ParseYAML validates the whole document before touching space, so a
// broken seed leaves the store unchanged.
func ParseYAML(data []byte, space domain.AtomSpace) (*Result, error) {
	var seed SeedYAML
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(&seed); err != nil {
		return nil, err
	}

	return apply(&seed, space)
}

func nodeRef(n NodeYAML) string {
	if n.Ref != "" {
		return n.Ref
	}
	return n.Name
}

func validate(seed *SeedYAML) error {
	refs := make(map[string]bool)

	for i, n := range seed.Nodes {
		if _, err := domain.ParseAtomType(n.Type); err != nil {
			return fmt.Errorf("nodes[%d]: %w", i, err)
		}
		if n.Name == "" {
			return fmt.Errorf("nodes[%d]: name is required", i)
		}
		if err := checkTruth(n.Truth); err != nil {
			return fmt.Errorf("nodes[%d]: %w", i, err)
		}
		ref := nodeRef(n)
		if refs[ref] {
			return fmt.Errorf("nodes[%d]: %w: %q", i, ErrDuplicateRef, ref)
		}
		refs[ref] = true
	}

	for i, l := range seed.Links {
		if _, err := domain.ParseAtomType(l.Type); err != nil {
			return fmt.Errorf("links[%d]: %w", i, err)
		}
		if err := checkTruth(l.Truth); err != nil {
			return fmt.Errorf("links[%d]: %w", i, err)
		}
		for _, ref := range l.Outgoing {
			if !refs[ref] {
				return fmt.Errorf("links[%d]: %w: %q", i, ErrUnknownRef, ref)
			}
		}
		if l.Ref == "" {
			continue
		}
		if refs[l.Ref] {
			return fmt.Errorf("links[%d]: %w: %q", i, ErrDuplicateRef, l.Ref)
		}
		refs[l.Ref] = true
	}
	return nil
}

func checkTruth(v []float64) error {
	if v != nil && len(v) != 2 {
		return ErrBadTruth
	}
	return nil
}

func truthOf(v []float64) *domain.TruthValue {
	if v == nil {
		return nil
	}
	tv := domain.TruthValueFromTuple([2]float64{v[0], v[1]})
	return &tv
}

func apply(seed *SeedYAML, space domain.AtomSpace) (*Result, error) {
	res := &Result{Refs: make(map[string]domain.Atom)}

	for i, n := range seed.Nodes {
		node, err := space.AddNode(domain.AtomType(n.Type), n.Name, truthOf(n.Truth))
		if err != nil {
			return res, fmt.Errorf("nodes[%d]: %w", i, err)
		}
		res.Refs[nodeRef(n)] = node
		res.Nodes++
	}

	for i, l := range seed.Links {
		outgoing := make([]domain.Atom, len(l.Outgoing))
		for j, ref := range l.Outgoing {
			outgoing[j] = res.Refs[ref]
		}
		link, err := space.AddLink(domain.AtomType(l.Type), outgoing, truthOf(l.Truth))
		if err != nil {
			return res, fmt.Errorf("links[%d]: %w", i, err)
		}
		if l.Ref != "" {
			res.Refs[l.Ref] = link
		}
		res.Links++
	}

	return res, nil
}
