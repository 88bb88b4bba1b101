package galaxy

import "strconv"

// All selects every value of a filter dimension.
const All = "all"

// Target alphas set by filtering.
const (
	VisibleAlpha = 1.0
	DimmedAlpha  = 0.1
)

// Selection is the current category and year filter. Year is a four-digit
// string compared against the item's UTC creation year.
type Selection struct {
	Category string
	Year     string
}

// AllSelection matches every orb.
func AllSelection() Selection {
	return Selection{Category: All, Year: All}
}

// Active reports whether any dimension narrows the view.
func (s Selection) Active() bool {
	return s.Category != All || s.Year != All
}

// Matches reports whether the orb's item passes the selection.
func (s Selection) Matches(o *Orb) bool {
	if o.Item == nil {
		return s.Category == All && s.Year == All
	}
	if s.Category != All && o.Item.Category != s.Category {
		return false
	}
	if s.Year != All && strconv.Itoa(o.Item.CreatedAt.UTC().Year()) != s.Year {
		return false
	}
	return true
}

// ApplyFilters sets every orb's target alpha from the selection. Orbs that
// do not match are dimmed, never hidden; a dimmed target takes them out of
// HitTest at once.
func ApplyFilters(orbs []*Orb, sel Selection) {
	for _, o := range orbs {
		if sel.Matches(o) {
			o.TargetAlpha = VisibleAlpha
		} else {
			o.TargetAlpha = DimmedAlpha
		}
	}
}

// ResetFilters restores the all/all selection, applies it and returns it.
func ResetFilters(orbs []*Orb) Selection {
	sel := AllSelection()
	ApplyFilters(orbs, sel)
	return sel
}
