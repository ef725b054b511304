package schema

import "sort"

// DateOnly is the display format for calendar dates in output and warnings.
const DateOnly = "2006-01-02"

// OrderCompartments returns compartment names in rendering order: the
// canonical S, I, R, H, D first (those present), then any extra compartments
// alphabetically.
func OrderCompartments(names map[string]struct{}) []string {
	var out []string
	rest := make(map[string]struct{}, len(names))
	for n := range names {
		rest[n] = struct{}{}
	}
	for _, n := range CompartmentOrder {
		if _, ok := rest[n]; ok {
			out = append(out, n)
			delete(rest, n)
		}
	}
	var extras []string
	for n := range rest {
		extras = append(extras, n)
	}
	sort.Strings(extras)
	return append(out, extras...)
}
