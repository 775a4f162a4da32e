package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Harshitk-cp/cogspace/internal/domain"
	"github.com/Harshitk-cp/cogspace/internal/service"
	"github.com/go-chi/chi/v5"
)

type AtomHandler struct {
	svc *service.AtomSpaceService
}

func NewAtomHandler(svc *service.AtomSpaceService) *AtomHandler {
	return &AtomHandler{svc: svc}
}

type createNodeRequest struct {
	AtomType   string   `json:"atom_type"`
	Name       string   `json:"name"`
	Strength   *float64 `json:"strength,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type createLinkRequest struct {
	AtomType    string   `json:"atom_type"`
	OutgoingIDs []string `json:"outgoing_ids"`
	Strength    *float64 `json:"strength,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

type typesResponse struct {
	Types     []domain.AtomType `json:"types"`
	NodeTypes []domain.AtomType `json:"node_types"`
	LinkTypes []domain.AtomType `json:"link_types"`
}

func (h *AtomHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	resp := typesResponse{
		Types:     domain.AllAtomTypes(),
		NodeTypes: []domain.AtomType{},
		LinkTypes: []domain.AtomType{},
	}
	for _, t := range resp.Types {
		switch {
		case domain.IsNode(t):
			resp.NodeTypes = append(resp.NodeTypes, t)
		case domain.IsLink(t):
			resp.LinkTypes = append(resp.LinkTypes, t)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AtomHandler) ListAtoms(w http.ResponseWriter, r *http.Request) {
	atoms, err := h.svc.ListAtoms(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeServiceError(w, err, "failed to list atoms")
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(atoms))
}

func (h *AtomHandler) GetAtom(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetAtom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "failed to get atom")
		return
	}
	writeJSON(w, http.StatusOK, toAtomResponse(a))
}

func (h *AtomHandler) DeleteAtom(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.RemoveAtom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "failed to remove atom")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": removed})
}

func (h *AtomHandler) GetIncoming(w http.ResponseWriter, r *http.Request) {
	links, err := h.svc.Incoming(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "failed to get incoming links")
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(links))
}

func (h *AtomHandler) Clear(w http.ResponseWriter, r *http.Request) {
	n := h.svc.Clear(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"removed": n})
}

func (h *AtomHandler) ListNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toListResponse(h.svc.ListNodes(r.Context())))
}

func (h *AtomHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req createNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AtomType == "" {
		writeError(w, http.StatusBadRequest, "atom_type is required")
		return
	}

	n, err := h.svc.AddNode(r.Context(), service.AddNodeInput{
		AtomType:   req.AtomType,
		Name:       req.Name,
		Strength:   req.Strength,
		Confidence: req.Confidence,
	})
	if err != nil {
		writeServiceError(w, err, "failed to add node")
		return
	}
	writeJSON(w, http.StatusOK, toAtomResponse(n))
}

func (h *AtomHandler) LookupNode(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	n, err := h.svc.FindNodeByName(r.Context(), name, r.URL.Query().Get("atom_type"))
	if err != nil {
		writeServiceError(w, err, "failed to look up node")
		return
	}
	writeJSON(w, http.StatusOK, toAtomResponse(n))
}

func (h *AtomHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toListResponse(h.svc.ListLinks(r.Context())))
}

func (h *AtomHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AtomType == "" {
		writeError(w, http.StatusBadRequest, "atom_type is required")
		return
	}
	if req.OutgoingIDs == nil {
		writeError(w, http.StatusBadRequest, "outgoing_ids is required")
		return
	}

	l, err := h.svc.AddLink(r.Context(), service.AddLinkInput{
		AtomType:    req.AtomType,
		OutgoingIDs: req.OutgoingIDs,
		Strength:    req.Strength,
		Confidence:  req.Confidence,
	})
	if err != nil {
		writeServiceError(w, err, "failed to add link")
		return
	}
	writeJSON(w, http.StatusOK, toAtomResponse(l))
}

func (h *AtomHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Stats(r.Context()))
}
