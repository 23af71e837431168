package tablekit

import "strconv"

// Uniquify de-duplicates column names in declaration order. The first
// occurrence keeps its name; later ones get the smallest free _N suffix.
func Uniquify(names []string) []string {
	out := make([]string, len(names))
	taken := make(map[string]struct{}, len(names))
	for i, name := range names {
		candidate := name
		if _, dup := taken[candidate]; dup {
			for n := 1; ; n++ {
				candidate = name + "_" + strconv.Itoa(n)
				if _, dup := taken[candidate]; !dup {
					break
				}
			}
		}
		taken[candidate] = struct{}{}
		out[i] = candidate
	}
	return out
}

// UniqueHeaders de-duplicates header names and ids in place, each with
// Uniquify. A header without an id takes its name as id first.
func UniqueHeaders(headers []Header) {
	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = h.Name
	}
	for i, n := range Uniquify(names) {
		headers[i].Name = n
	}
	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.ID
		if ids[i] == "" {
			ids[i] = h.Name
		}
	}
	for i, id := range Uniquify(ids) {
		headers[i].ID = id
	}
}
