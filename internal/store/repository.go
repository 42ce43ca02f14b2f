package store

import (
	"context"
	"fmt"

	"aspectgraph/internal/domain"
	"aspectgraph/internal/graph"
)

// Repository encapsulates graph persistence operations for elements, recipes
// and holdings. All reads map records straight into domain types; the only
// mutation exposed is SetHeldQuantity.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// ElementExists reports whether an element with the given name is present.
func (r *Repository) ElementExists(ctx context.Context, h domain.ElementHandle) (bool, error) {
	res, err := r.client.ExecuteRead(ctx, elementExistsCypher, map[string]any{"name": h.Name()})
	if err != nil {
		return false, fmt.Errorf("element exists %s: %w", h.Name(), err)
	}
	if len(res.Records) != 1 {
		return false, fmt.Errorf("element exists %s: expected one count row, got %d: %w", h.Name(), len(res.Records), ErrIntegrity)
	}
	switch count := toInt64(res.Records[0]["count"]); count {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("element %s has %d nodes: %w", h.Name(), count, ErrIntegrity)
	}
}

// Components returns the recipe component pair of h. The second return value
// is false when h is a primitive element; that is a normal outcome, not an
// error.
func (r *Repository) Components(ctx context.Context, h domain.ElementHandle) (domain.Decomposition, bool, error) {
	res, err := r.client.ExecuteRead(ctx, componentsCypher, map[string]any{"name": h.Name()})
	if err != nil {
		return domain.Decomposition{}, false, fmt.Errorf("components of %s: %w", h.Name(), err)
	}

	switch len(res.Records) {
	case 0:
		return domain.Decomposition{}, false, nil
	case 2:
		var dec domain.Decomposition
		var haveA, haveB bool
		for _, rec := range res.Records {
			component := domain.Handle(toString(rec["component"]))
			switch toString(rec["slot"]) {
			case "a":
				dec.A, haveA = component, true
			case "b":
				dec.B, haveB = component, true
			}
		}
		if !haveA || !haveB {
			return domain.Decomposition{}, false, fmt.Errorf("recipe for %s is missing a component slot: %w", h.Name(), ErrIntegrity)
		}
		return dec, true, nil
	default:
		return domain.Decomposition{}, false, fmt.Errorf("element %s has %d recipe components: %w", h.Name(), len(res.Records), ErrIntegrity)
	}
}

// ProductsUsing returns every element whose recipe references h as either
// component.
func (r *Repository) ProductsUsing(ctx context.Context, h domain.ElementHandle) ([]domain.ElementHandle, error) {
	res, err := r.client.ExecuteRead(ctx, productsUsingCypher, map[string]any{"name": h.Name()})
	if err != nil {
		return nil, fmt.Errorf("products using %s: %w", h.Name(), err)
	}

	products := make([]domain.ElementHandle, 0, len(res.Records))
	for _, rec := range res.Records {
		products = append(products, domain.Handle(toString(rec["product"])))
	}
	return products, nil
}

// BaseValue returns the base value of h, or ErrNotFound for an unknown name.
func (r *Repository) BaseValue(ctx context.Context, h domain.ElementHandle) (float64, error) {
	res, err := r.client.ExecuteRead(ctx, baseValueCypher, map[string]any{"name": h.Name()})
	if err != nil {
		return 0, fmt.Errorf("base value of %s: %w", h.Name(), err)
	}
	switch len(res.Records) {
	case 0:
		return 0, fmt.Errorf("base value of %s: %w", h.Name(), ErrNotFound)
	case 1:
		return toFloat64(res.Records[0]["baseValue"]), nil
	default:
		return 0, fmt.Errorf("base value of %s: expected one row, got %d: %w", h.Name(), len(res.Records), ErrIntegrity)
	}
}

// HeldQuantity returns the quantity of h currently held, or ErrNotFound when
// the element is unknown or carries no holding.
func (r *Repository) HeldQuantity(ctx context.Context, h domain.ElementHandle) (float64, error) {
	res, err := r.client.ExecuteRead(ctx, heldQuantityCypher, map[string]any{"name": h.Name()})
	if err != nil {
		return 0, fmt.Errorf("held quantity of %s: %w", h.Name(), err)
	}
	switch len(res.Records) {
	case 0:
		return 0, fmt.Errorf("held quantity of %s: %w", h.Name(), ErrNotFound)
	case 1:
		return toFloat64(res.Records[0]["held"]), nil
	default:
		return 0, fmt.Errorf("held quantity of %s: expected one row, got %d: %w", h.Name(), len(res.Records), ErrIntegrity)
	}
}

// SetHeldQuantity updates the held quantity of h.
func (r *Repository) SetHeldQuantity(ctx context.Context, h domain.ElementHandle, quantity float64) error {
	res, err := r.client.ExecuteWrite(ctx, setHeldQuantityCypher, map[string]any{
		"name": h.Name(),
		"held": quantity,
	})
	if err != nil {
		return fmt.Errorf("set held quantity of %s: %w", h.Name(), err)
	}
	if len(res.Records) != 1 || toInt64(res.Records[0]["updated"]) != 1 {
		return fmt.Errorf("set held quantity of %s: %w", h.Name(), ErrNotFound)
	}
	return nil
}

// ListElements returns every element ordered by name.
func (r *Repository) ListElements(ctx context.Context) ([]domain.Element, error) {
	res, err := r.client.ExecuteRead(ctx, listElementsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}

	elements := make([]domain.Element, 0, len(res.Records))
	for _, rec := range res.Records {
		elements = append(elements, domain.Element{
			Name:      toString(rec["name"]),
			Mod:       toString(rec["mod"]),
			BaseValue: toFloat64(rec["baseValue"]),
		})
	}
	return elements, nil
}

// ListRecipes returns every recipe ordered by product name.
func (r *Repository) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	res, err := r.client.ExecuteRead(ctx, listRecipesCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	recipes := make([]domain.Recipe, 0, len(res.Records))
	for _, rec := range res.Records {
		recipes = append(recipes, domain.Recipe{
			Product: domain.Handle(toString(rec["product"])),
			A:       domain.Handle(toString(rec["componentA"])),
			B:       domain.Handle(toString(rec["componentB"])),
		})
	}
	return recipes, nil
}

// ListMods returns the distinct mods elements belong to, ordered by name.
func (r *Repository) ListMods(ctx context.Context) ([]string, error) {
	res, err := r.client.ExecuteRead(ctx, listModsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list mods: %w", err)
	}

	mods := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		mods = append(mods, toString(rec["mod"]))
	}
	return mods, nil
}

// ListHoldings returns every element with a recorded holding, ordered by name.
func (r *Repository) ListHoldings(ctx context.Context) ([]domain.Holding, error) {
	res, err := r.client.ExecuteRead(ctx, listHoldingsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}

	holdings := make([]domain.Holding, 0, len(res.Records))
	for _, rec := range res.Records {
		holdings = append(holdings, domain.Holding{
			Handle:   domain.Handle(toString(rec["name"])),
			Quantity: toFloat64(rec["held"]),
		})
	}
	return holdings, nil
}

// PrimitiveElements returns every element that has no recipe.
func (r *Repository) PrimitiveElements(ctx context.Context) ([]domain.ElementHandle, error) {
	res, err := r.client.ExecuteRead(ctx, primitiveElementsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list primitive elements: %w", err)
	}

	primitives := make([]domain.ElementHandle, 0, len(res.Records))
	for _, rec := range res.Records {
		primitives = append(primitives, domain.Handle(toString(rec["name"])))
	}
	return primitives, nil
}

// UpsertElement creates or refreshes an element node. Used by the seeder.
func (r *Repository) UpsertElement(ctx context.Context, e domain.Element, held float64) error {
	params := map[string]any{
		"name":      e.Name,
		"mod":       e.Mod,
		"baseValue": e.BaseValue,
		"held":      held,
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertElementCypher, params); err != nil {
		return fmt.Errorf("upsert element %s: %w", e.Name, err)
	}
	return nil
}

// UpsertRecipe replaces the recipe of a product with the given component
// pair. Both components must already exist as element nodes.
func (r *Repository) UpsertRecipe(ctx context.Context, recipe domain.Recipe) error {
	params := map[string]any{
		"product":    recipe.Product.Name(),
		"componentA": recipe.A.Name(),
		"componentB": recipe.B.Name(),
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertRecipeCypher, params); err != nil {
		return fmt.Errorf("upsert recipe for %s: %w", recipe.Product.Name(), err)
	}
	return nil
}

func toString(val any) string {
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

func toFloat64(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

const elementExistsCypher = `
MATCH (e:Element {name: $name})
RETURN count(e) AS count`

const componentsCypher = `
MATCH (e:Element {name: $name})-[r:MADE_FROM]->(c:Element)
RETURN r.slot AS slot, c.name AS component
ORDER BY slot`

const productsUsingCypher = `
MATCH (p:Element)-[:MADE_FROM]->(c:Element {name: $name})
RETURN DISTINCT p.name AS product`

const baseValueCypher = `
MATCH (e:Element {name: $name})
RETURN e.baseValue AS baseValue`

const heldQuantityCypher = `
MATCH (e:Element {name: $name})
WHERE e.held IS NOT NULL
RETURN e.held AS held`

const setHeldQuantityCypher = `
MATCH (e:Element {name: $name})
SET e.held = $held
RETURN count(e) AS updated`

const listElementsCypher = `
MATCH (e:Element)
RETURN e.name AS name, e.mod AS mod, e.baseValue AS baseValue
ORDER BY name`

const listRecipesCypher = `
MATCH (p:Element)-[ra:MADE_FROM {slot: 'a'}]->(a:Element)
MATCH (p)-[rb:MADE_FROM {slot: 'b'}]->(b:Element)
RETURN p.name AS product, a.name AS componentA, b.name AS componentB
ORDER BY product`

const listModsCypher = `
MATCH (e:Element)
WHERE e.mod IS NOT NULL AND e.mod <> ''
RETURN DISTINCT e.mod AS mod
ORDER BY mod`

const listHoldingsCypher = `
MATCH (e:Element)
WHERE e.held IS NOT NULL
RETURN e.name AS name, e.held AS held
ORDER BY name`

const primitiveElementsCypher = `
MATCH (e:Element)
WHERE NOT (e)-[:MADE_FROM]->()
RETURN e.name AS name
ORDER BY name`

const upsertElementCypher = `
MERGE (e:Element {name: $name})
SET e.mod = $mod,
    e.baseValue = $baseValue,
    e.held = $held`

const upsertRecipeCypher = `
MATCH (p:Element {name: $product})
MATCH (a:Element {name: $componentA})
MATCH (b:Element {name: $componentB})
OPTIONAL MATCH (p)-[old:MADE_FROM]->()
DELETE old
MERGE (p)-[:MADE_FROM {slot: 'a'}]->(a)
MERGE (p)-[:MADE_FROM {slot: 'b'}]->(b)`
