package slots

// buildAssociations precomputes the extension slots of every primary slot,
// one timing family at a time.
func (r *Registry) buildAssociations() {
	for _, f := range Families {
		theory := TheoryMorning
		if f == Evening {
			theory = TheoryEvening
		}
		inFamily := make(map[string]bool)
		for _, s := range r.catalog[theory] {
			inFamily[s] = true
		}
		for letter := 'A'; letter <= 'G'; letter++ {
			primary := string(letter) + f.Suffix()
			first := "T" + primary
			second := "T" + string(letter) + primary
			var ext []string
			if inFamily[first] {
				ext = append(ext, first)
			}
			if second != first && inFamily[second] {
				ext = append(ext, second)
			}
			r.assoc[primary] = ext
		}
	}
}

// AssociatedSlots returns the extension slots tied to a primary slot:
// "T"+p first, then "T"+letter+p, keeping only those in the catalog.
// Non-primary slots have none.
func (r *Registry) AssociatedSlots(p string) []string {
	return append([]string(nil), r.assoc[p]...)
}

// PrimaryExtension returns the "T"+p extension of a primary slot, if it
// exists. Only this pairing is undone when the primary is removed.
func (r *Registry) PrimaryExtension(p string) (string, bool) {
	if !IsPrimary(p) {
		return "", false
	}
	ext := "T" + p
	if !r.Known(ext) {
		return "", false
	}
	return ext, true
}
