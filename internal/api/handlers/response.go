package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/cogspace/internal/domain"
	"github.com/Harshitk-cp/cogspace/internal/service"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service and domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrUnknownType),
		errors.Is(err, domain.ErrNilAtom),
		errors.Is(err, service.ErrInvalidAtomID),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrTooManyOutgoing):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAtomNotFound),
		errors.Is(err, service.ErrOutgoingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

type atomResponse struct {
	ID         uuid.UUID         `json:"id"`
	Kind       domain.Kind       `json:"kind"`
	Type       domain.AtomType   `json:"type"`
	TruthValue domain.TruthValue `json:"truth_value"`
	Name       string            `json:"name,omitempty"`
	Outgoing   []atomResponse    `json:"outgoing,omitempty"`
	Arity      *int              `json:"arity,omitempty"`
}

// toAtomResponse renders outgoing atoms in full, recursively.
func toAtomResponse(a domain.Atom) atomResponse {
	resp := atomResponse{
		ID:         a.ID(),
		Kind:       a.Kind(),
		Type:       a.Type(),
		TruthValue: a.TruthValue(),
	}
	switch v := a.(type) {
	case *domain.Node:
		resp.Name = v.Name()
	case *domain.Link:
		arity := v.Arity()
		resp.Arity = &arity
		for _, out := range v.Outgoing() {
			resp.Outgoing = append(resp.Outgoing, toAtomResponse(out))
		}
	}
	return resp
}

type listAtomsResponse struct {
	Atoms []atomResponse `json:"atoms"`
	Count int            `json:"count"`
}

func toListResponse[T domain.Atom](atoms []T) listAtomsResponse {
	out := make([]atomResponse, len(atoms))
	for i, a := range atoms {
		out[i] = toAtomResponse(a)
	}
	return listAtomsResponse{Atoms: out, Count: len(out)}
}
