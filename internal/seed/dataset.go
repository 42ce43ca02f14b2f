// Package seed provides recipe datasets and bulk loading into the store.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
)

// ElementSeed describes one element row of a dataset. A zero BaseValue asks
// the loader to derive it from the element's recipe components.
type ElementSeed struct {
	Name      string  `json:"name"`
	Mod       string  `json:"mod,omitempty"`
	BaseValue float64 `json:"baseValue,omitempty"`
	Held      float64 `json:"held,omitempty"`
}

// RecipeSeed describes one recipe row of a dataset.
type RecipeSeed struct {
	Product    string `json:"product"`
	ComponentA string `json:"componentA"`
	ComponentB string `json:"componentB"`
}

// Dataset is a self-contained description of a recipe graph.
type Dataset struct {
	Elements []ElementSeed `json:"elements"`
	Recipes  []RecipeSeed  `json:"recipes"`
}

// Load reads a dataset from a JSON file.
func Load(path string) (Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer file.Close()

	var ds Dataset
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// Validate checks referential consistency: recipe components and products
// must name declared elements, and no product may carry more than one recipe.
func (d Dataset) Validate() error {
	known := make(map[string]struct{}, len(d.Elements))
	for _, e := range d.Elements {
		if e.Name == "" {
			return fmt.Errorf("element with empty name")
		}
		if _, dup := known[e.Name]; dup {
			return fmt.Errorf("element %s declared twice", e.Name)
		}
		known[e.Name] = struct{}{}
	}

	products := make(map[string]struct{}, len(d.Recipes))
	for _, r := range d.Recipes {
		if _, dup := products[r.Product]; dup {
			return fmt.Errorf("product %s has more than one recipe", r.Product)
		}
		products[r.Product] = struct{}{}
		for _, name := range []string{r.Product, r.ComponentA, r.ComponentB} {
			if _, ok := known[name]; !ok {
				return fmt.Errorf("recipe for %s references undeclared element %s", r.Product, name)
			}
		}
	}
	return nil
}

// DeriveBaseValues fills in zero base values: primitives default to 1 and a
// compound's value is the sum of its component values. Recipes must be
// resolvable bottom-up, which Validate plus acyclic data guarantees.
func (d *Dataset) DeriveBaseValues() error {
	values := make(map[string]float64, len(d.Elements))
	recipes := make(map[string]RecipeSeed, len(d.Recipes))
	for _, r := range d.Recipes {
		recipes[r.Product] = r
	}
	for _, e := range d.Elements {
		if e.BaseValue != 0 {
			values[e.Name] = e.BaseValue
		} else if _, compound := recipes[e.Name]; !compound {
			values[e.Name] = 1
		}
	}

	remaining := len(d.Elements) - len(values)
	for remaining > 0 {
		progressed := false
		for _, e := range d.Elements {
			if _, done := values[e.Name]; done {
				continue
			}
			r := recipes[e.Name]
			va, okA := values[r.ComponentA]
			vb, okB := values[r.ComponentB]
			if okA && okB {
				values[e.Name] = va + vb
				remaining--
				progressed = true
			}
		}
		if !progressed {
			return fmt.Errorf("could not derive base values; recipe graph is cyclic")
		}
	}

	for i := range d.Elements {
		d.Elements[i].BaseValue = values[d.Elements[i].Name]
	}
	return nil
}

// Default returns the built-in Thaumcraft 4 base aspect dataset: the six
// primal aspects plus the compound aspects of the base game, base values
// derived bottom-up.
func Default() Dataset {
	names := []string{
		"Aer", "Aqua", "Ignis", "Terra", "Ordo", "Perditio",
	}
	recipes := []RecipeSeed{
		{Product: "Lux", ComponentA: "Aer", ComponentB: "Ignis"},
		{Product: "Motus", ComponentA: "Aer", ComponentB: "Ordo"},
		{Product: "Tempestas", ComponentA: "Aer", ComponentB: "Aqua"},
		{Product: "Vacuos", ComponentA: "Aer", ComponentB: "Perditio"},
		{Product: "Gelum", ComponentA: "Ignis", ComponentB: "Perditio"},
		{Product: "Potentia", ComponentA: "Ordo", ComponentB: "Ignis"},
		{Product: "Venenum", ComponentA: "Aqua", ComponentB: "Perditio"},
		{Product: "Victus", ComponentA: "Aqua", ComponentB: "Terra"},
		{Product: "Vitreus", ComponentA: "Terra", ComponentB: "Ordo"},
		{Product: "Metallum", ComponentA: "Terra", ComponentB: "Vitreus"},
		{Product: "Mortuus", ComponentA: "Victus", ComponentB: "Perditio"},
		{Product: "Volatus", ComponentA: "Aer", ComponentB: "Motus"},
		{Product: "Tenebrae", ComponentA: "Vacuos", ComponentB: "Lux"},
		{Product: "Vinculum", ComponentA: "Motus", ComponentB: "Perditio"},
		{Product: "Fames", ComponentA: "Victus", ComponentB: "Vacuos"},
		{Product: "Herba", ComponentA: "Victus", ComponentB: "Terra"},
		{Product: "Limus", ComponentA: "Victus", ComponentB: "Aqua"},
		{Product: "Sano", ComponentA: "Victus", ComponentB: "Ordo"},
		{Product: "Arbor", ComponentA: "Aer", ComponentB: "Herba"},
		{Product: "Bestia", ComponentA: "Motus", ComponentB: "Victus"},
		{Product: "Praecantatio", ComponentA: "Vacuos", ComponentB: "Potentia"},
		{Product: "Auram", ComponentA: "Praecantatio", ComponentB: "Aer"},
		{Product: "Vitium", ComponentA: "Praecantatio", ComponentB: "Perditio"},
		{Product: "Alienis", ComponentA: "Vacuos", ComponentB: "Tenebrae"},
		{Product: "Iter", ComponentA: "Motus", ComponentB: "Terra"},
		{Product: "Corpus", ComponentA: "Mortuus", ComponentB: "Bestia"},
		{Product: "Exanimis", ComponentA: "Motus", ComponentB: "Mortuus"},
		{Product: "Spiritus", ComponentA: "Victus", ComponentB: "Mortuus"},
		{Product: "Cognitio", ComponentA: "Ignis", ComponentB: "Spiritus"},
		{Product: "Sensus", ComponentA: "Aer", ComponentB: "Spiritus"},
		{Product: "Humanus", ComponentA: "Bestia", ComponentB: "Cognitio"},
		{Product: "Instrumentum", ComponentA: "Humanus", ComponentB: "Ordo"},
		{Product: "Lucrum", ComponentA: "Humanus", ComponentB: "Fames"},
		{Product: "Messis", ComponentA: "Herba", ComponentB: "Humanus"},
		{Product: "Perfodio", ComponentA: "Humanus", ComponentB: "Terra"},
		{Product: "Fabrico", ComponentA: "Humanus", ComponentB: "Instrumentum"},
		{Product: "Machina", ComponentA: "Motus", ComponentB: "Instrumentum"},
		{Product: "Pannus", ComponentA: "Instrumentum", ComponentB: "Bestia"},
		{Product: "Telum", ComponentA: "Instrumentum", ComponentB: "Ignis"},
		{Product: "Tutamen", ComponentA: "Instrumentum", ComponentB: "Terra"},
		{Product: "Superbia", ComponentA: "Volatus", ComponentB: "Vacuos"},
		{Product: "Ira", ComponentA: "Telum", ComponentB: "Ignis"},
		{Product: "Invidia", ComponentA: "Sensus", ComponentB: "Fames"},
		{Product: "Desidia", ComponentA: "Vinculum", ComponentB: "Spiritus"},
		{Product: "Gula", ComponentA: "Fames", ComponentB: "Vacuos"},
		{Product: "Luxuria", ComponentA: "Corpus", ComponentB: "Fames"},
	}

	elements := make([]ElementSeed, 0, len(names)+len(recipes))
	for _, n := range names {
		elements = append(elements, ElementSeed{Name: n})
	}
	for _, r := range recipes {
		elements = append(elements, ElementSeed{Name: r.Product})
	}

	ds := Dataset{Elements: elements, Recipes: recipes}
	// the built-in dataset is acyclic; derivation cannot fail
	_ = ds.DeriveBaseValues()
	return ds
}
