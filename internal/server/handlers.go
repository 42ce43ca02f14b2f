package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"aspectgraph/internal/domain"
	"aspectgraph/internal/service"
	"aspectgraph/internal/store"
)

// Service is the slice of the aspect service the HTTP handlers consume.
type Service interface {
	SearchRanked(ctx context.Context, from, to string, stepsN int) ([]domain.Path, error)
	Crack(ctx context.Context, requests []service.CrackRequest) ([]service.LeafCount, error)
	SetHolding(ctx context.Context, name string, quantity float64) error
	Elements(ctx context.Context) ([]domain.Element, error)
	Recipes(ctx context.Context) ([]domain.Recipe, error)
	Mods(ctx context.Context) ([]string, error)
	Holdings(ctx context.Context) ([]domain.Holding, error)
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service Service
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc Service) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

func (h *APIHandlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	from := strings.TrimSpace(query.Get("from"))
	to := strings.TrimSpace(query.Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}
	steps, err := strconv.Atoi(query.Get("steps"))
	if err != nil || steps < 0 {
		writeError(w, http.StatusBadRequest, "steps must be a non-negative integer")
		return
	}

	paths, err := h.service.SearchRanked(r.Context(), from, to, steps)
	if err != nil {
		h.writeServiceError(w, err, "search failed", "from", from, "to", to)
		return
	}

	response := searchResponse{
		From:  from,
		To:    to,
		Steps: steps,
		Paths: make([]pathPayload, 0, len(paths)),
	}
	for _, p := range paths {
		response.Paths = append(response.Paths, toPathPayload(p))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) handleCrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload crackRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.Aspects) == 0 {
		writeError(w, http.StatusBadRequest, "at least one aspect is required")
		return
	}

	requests := make([]service.CrackRequest, 0, len(payload.Aspects))
	for _, a := range payload.Aspects {
		quantity := a.Quantity
		if quantity == 0 {
			quantity = 1
		}
		requests = append(requests, service.CrackRequest{Name: a.Name, Quantity: quantity})
	}

	rows, err := h.service.Crack(r.Context(), requests)
	if err != nil {
		h.writeServiceError(w, err, "crack failed")
		return
	}

	response := crackResponse{Leaves: make([]leafPayload, 0, len(rows))}
	for _, row := range rows {
		response.Leaves = append(response.Leaves, leafPayload{
			Name:  row.Handle.Name(),
			Count: row.Count,
		})
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) handleElements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	elements, err := h.service.Elements(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "failed to list elements")
		return
	}

	payload := make([]elementPayload, 0, len(elements))
	for _, e := range elements {
		payload = append(payload, elementPayload{
			Name:      e.Name,
			Mod:       e.Mod,
			BaseValue: e.BaseValue,
		})
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *APIHandlers) handleRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	recipes, err := h.service.Recipes(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "failed to list recipes")
		return
	}

	payload := make([]recipePayload, 0, len(recipes))
	for _, rec := range recipes {
		payload = append(payload, recipePayload{
			Product:    rec.Product.Name(),
			ComponentA: rec.A.Name(),
			ComponentB: rec.B.Name(),
		})
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *APIHandlers) handleMods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	mods, err := h.service.Mods(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "failed to list mods")
		return
	}
	if mods == nil {
		mods = []string{}
	}
	respondJSON(w, http.StatusOK, mods)
}

func (h *APIHandlers) handleHoldings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	holdings, err := h.service.Holdings(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "failed to list holdings")
		return
	}

	payload := make([]holdingPayload, 0, len(holdings))
	for _, hold := range holdings {
		payload = append(payload, holdingPayload{
			Name:     hold.Handle.Name(),
			Quantity: hold.Quantity,
		})
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *APIHandlers) handleHolding(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, http.MethodPut)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/holdings/")
	name = strings.Trim(name, "/")
	if name == "" {
		writeError(w, http.StatusBadRequest, "element name is required")
		return
	}

	var payload holdingUpdateRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity must be non-negative")
		return
	}

	if err := h.service.SetHolding(r.Context(), name, payload.Quantity); err != nil {
		h.writeServiceError(w, err, "failed to update holding", "element", name)
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{Status: "updated", Name: name})
}

func (h *APIHandlers) writeServiceError(w http.ResponseWriter, err error, msg string, args ...any) {
	switch {
	case errors.Is(err, service.ErrUnknownElement), errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error(msg, append([]any{"error", err}, args...)...)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

// --- Request & Response DTOs ---

type searchResponse struct {
	From  string        `json:"from"`
	To    string        `json:"to"`
	Steps int           `json:"steps"`
	Paths []pathPayload `json:"paths"`
}

type pathPayload struct {
	Chain  []string `json:"chain"`
	Weight *float64 `json:"weight,omitempty"`
}

type crackRequest struct {
	Aspects []crackAspect `json:"aspects"`
}

type crackAspect struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity,omitempty"`
}

type crackResponse struct {
	Leaves []leafPayload `json:"leaves"`
}

type leafPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type elementPayload struct {
	Name      string  `json:"name"`
	Mod       string  `json:"mod,omitempty"`
	BaseValue float64 `json:"baseValue"`
}

type recipePayload struct {
	Product    string `json:"product"`
	ComponentA string `json:"componentA"`
	ComponentB string `json:"componentB"`
}

type holdingPayload struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

type holdingUpdateRequest struct {
	Quantity float64 `json:"quantity"`
}

type statusResponse struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

// --- Helpers ---

func toPathPayload(p domain.Path) pathPayload {
	chain := p.Chain()
	names := make([]string, len(chain))
	for i, h := range chain {
		names[i] = h.Name()
	}
	payload := pathPayload{Chain: names}
	if w, ok := p.Weight(); ok {
		payload.Weight = &w
	}
	return payload
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
