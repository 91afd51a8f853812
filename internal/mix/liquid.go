package mix

// Liquid is the composition of one ingredient. ABV, Sugar and Acid are
// fractions by volume.
type Liquid struct {
	Name  string  `json:"name" yaml:"name"`
	ABV   float64 `json:"abv" yaml:"abv"`
	Sugar float64 `json:"sugar" yaml:"sugar"`
	Acid  float64 `json:"acid" yaml:"acid"`
}

// Registry resolves ingredient names to liquids.
type Registry interface {
	Lookup(name string) (Liquid, bool)
}

// Catalog is an in-memory Registry keyed by liquid name. A Catalog that
// is no longer written to is safe for concurrent lookups.
type Catalog map[string]Liquid

// NewCatalog indexes the liquids by name. Later entries replace earlier
// ones with the same name.
func NewCatalog(liquids ...Liquid) Catalog {
	c := make(Catalog, len(liquids))
	for _, l := range liquids {
		c[l.Name] = l
	}
	return c
}

// Lookup implements Registry.
func (c Catalog) Lookup(name string) (Liquid, bool) {
	l, ok := c[name]
	return l, ok
}

// Pour is a measured quantity of a resolved liquid. The liquid is held by
// value so that later registry edits do not reach an already built drink.
type Pour struct {
	Liquid Liquid  `json:"liquid"`
	Ounces float64 `json:"ounces"`
}

// PourSpec is the unresolved (ingredient name, ounces) pair a drink is
// built from.
type PourSpec struct {
	Ingredient string  `json:"ingredient" yaml:"ingredient"`
	Ounces     float64 `json:"ounces" yaml:"ounces"`
}

// Resolve looks up the ingredient of spec in reg.
func Resolve(reg Registry, spec PourSpec) (Pour, error) {
	l, ok := reg.Lookup(spec.Ingredient)
	if !ok {
		return Pour{}, &UnknownIngredientError{Name: spec.Ingredient}
	}
	return Pour{Liquid: l, Ounces: spec.Ounces}, nil
}
