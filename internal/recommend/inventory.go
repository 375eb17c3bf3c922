package recommend

// QuantityLookup resolves how much of an ingredient the user holds,
// expressed in the ingredient's unit. Names are matched exactly.
type QuantityLookup interface {
	Quantity(name string, unit Unit) float64
}

// Quantities is a plain name to quantity lookup that ignores units.
type Quantities map[string]float64

func (q Quantities) Quantity(name string, _ Unit) float64 {
	value, ok := q[name]
	if !ok || !validQuantity(value) {
		return 0
	}
	return value
}

// Inventory totals a product list per name and dimension in base units, so
// a recipe asking for 0.5 kg sees a 300 g and a 250 g package as 0.55 kg.
type Inventory struct {
	totals map[string]map[Dimension]float64
}

func NewInventory(products []Product) *Inventory {
	inventory := &Inventory{
		totals: make(map[string]map[Dimension]float64, len(products)),
	}
	for _, product := range products {
		dimension, ok := product.Unit.Dimension()
		if !ok || !validQuantity(product.Quantity) {
			continue
		}
		byDimension, ok := inventory.totals[product.Name]
		if !ok {
			byDimension = make(map[Dimension]float64, 1)
			inventory.totals[product.Name] = byDimension
		}
		byDimension[dimension] += product.Unit.ToBase(product.Quantity)
	}
	return inventory
}

func (inv *Inventory) Quantity(name string, unit Unit) float64 {
	if inv == nil {
		return 0
	}
	dimension, ok := unit.Dimension()
	if !ok {
		return 0
	}
	return unit.FromBase(inv.totals[name][dimension])
}

func lookupQuantity(lookup QuantityLookup, ingredient Ingredient) float64 {
	if lookup == nil {
		return 0
	}
	return lookup.Quantity(ingredient.Name, ingredient.Unit)
}
