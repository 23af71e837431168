package tablekit

// Index maps a column id or display name to its position within a row.
type Index map[string]int

// BuildIndex registers every header under both its id and its name.
// Later headers overwrite earlier ones on collision.
func BuildIndex(headers []Header) Index {
	idx := make(Index, 2*len(headers))
	for i, h := range headers {
		if h.ID != "" {
			idx[h.ID] = i
		}
		if h.Name != "" {
			idx[h.Name] = i
		}
	}
	return idx
}

func (idx Index) Resolve(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	i, ok := idx[key]
	return i, ok
}
