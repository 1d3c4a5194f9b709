package item

// Category groups items for the contextual menus.
type Category string

const (
	CategoryPeople   Category = "people"
	CategoryPlaces   Category = "places"
	CategoryThings   Category = "things"
	CategoryEvents   Category = "events"
	CategoryFeelings Category = "feelings"
)

// Categories lists the known categories in menu order.
var Categories = []Category{
	CategoryPeople,
	CategoryPlaces,
	CategoryThings,
	CategoryEvents,
	CategoryFeelings,
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryPeople, CategoryPlaces, CategoryThings, CategoryEvents, CategoryFeelings:
		return true
	}
	return false
}

// Item is a collectible entity. The title is its stable identity; the icon
// is an opaque asset reference for the presentation layer.
type Item struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Category    Category `json:"category" yaml:"category"`
}
