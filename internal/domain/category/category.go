package category

import "errors"

// Category is one weighted slice of an exam's content outline.
type Category struct {
	Name   string
	Weight int
}

func New(name string, weight int) Category {
	return Category{Name: name, Weight: weight}
}

// Weights is an ordered list of categories. Order matters: it breaks ties
// when quotas are reconciled.
type Weights []Category

// Total sums every weight.
func (ws Weights) Total() int {
	total := 0
	for _, c := range ws {
		total += c.Weight
	}
	return total
}

// Names returns the category names in declaration order.
func (ws Weights) Names() []string {
	names := make([]string, len(ws))
	for i, c := range ws {
		names[i] = c.Name
	}
	return names
}

// Validate rejects empty names, non-positive weights and duplicate names.
func (ws Weights) Validate() error {
	seen := make(map[string]struct{}, len(ws))
	for _, c := range ws {
		if c.Name == "" {
			return errors.New("category name cannot be empty")
		}
		if c.Weight <= 0 {
			return errors.New("category " + c.Name + ": weight must be positive")
		}
		if _, dup := seen[c.Name]; dup {
			return errors.New("category " + c.Name + " listed twice")
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}
