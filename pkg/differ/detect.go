package differ

// recency is the outcome of comparing update timestamps on an identity
// match. Families without timestamps never use it.
type recency int

const (
	recencyExternalNewer recency = iota
	recencyExternalStale
	recencyTie
)

// recencyFunc compares the recency of a matched local/external pair.
type recencyFunc[T any] func(local, external T) recency

// detect classifies every external item against the local collection.
// Identical items are dropped; so are stale external records when a
// recency rule applies. Output order mirrors the external input order.
func detect[T any](local, external []T, m Matcher[T], family Family, fuzzy bool, rec recencyFunc[T]) []Item[T] {
	byID := make(map[string]int, len(local))
	byNatural := make(map[string]int)
	byFuzzy := make(map[string]int)
	for i, item := range local {
		byID[m.IdentityKey(item)] = i
		if key := m.NaturalKey(item); key != "" {
			if _, dup := byNatural[key]; !dup {
				byNatural[key] = i
			}
		}
		if key := m.FuzzyKey(item); key != "" {
			if _, dup := byFuzzy[key]; !dup {
				byFuzzy[key] = i
			}
		}
	}

	items := make([]Item[T], 0, len(external))
	for _, ext := range external {
		id := m.IdentityKey(ext)

		// Primary identity match
		if i, ok := byID[id]; ok {
			loc := local[i]
			if m.Equal(loc, ext) {
				continue // identical
			}
			status := StatusModified
			message := "fields differ from local version"
			if rec != nil {
				switch rec(loc, ext) {
				case recencyExternalStale:
					continue // external copy is older, drop it
				case recencyTie:
					status = StatusConflict
					message = "updated on both sides with indistinguishable recency"
				case recencyExternalNewer:
					message = "external copy is newer"
				}
			}
			items = append(items, Item[T]{
				ID:       id,
				MatchID:  m.IdentityKey(loc),
				Local:    &loc,
				External: &ext,
				Status:   status,
				Action:   DefaultAction(status, family),
				Message:  message,
				Label:    m.Label(ext),
			})
			continue
		}

		// Fallback natural-key match
		if key := m.NaturalKey(ext); key != "" {
			if i, ok := byNatural[key]; ok {
				loc := local[i]
				items = append(items, Item[T]{
					ID:       id,
					MatchID:  m.IdentityKey(loc),
					Local:    &loc,
					External: &ext,
					Status:   StatusConflict,
					Action:   DefaultAction(StatusConflict, family),
					Message:  "matched by natural key under a different id",
					Label:    m.Label(ext),
				})
				continue
			}
		}

		// Weak fuzzy match, never auto-merged
		if fuzzy {
			if key := m.FuzzyKey(ext); key != "" {
				if i, ok := byFuzzy[key]; ok {
					loc := local[i]
					items = append(items, Item[T]{
						ID:       id,
						MatchID:  m.IdentityKey(loc),
						Local:    &loc,
						External: &ext,
						Status:   StatusSuspect,
						Action:   DefaultAction(StatusSuspect, family),
						Message:  "weak match on folded name, confirm before merging",
						Label:    m.Label(ext),
					})
					continue
				}
			}
		}

		items = append(items, Item[T]{
			ID:       id,
			External: &ext,
			Status:   StatusNew,
			Action:   DefaultAction(StatusNew, family),
			Message:  "no local match",
			Label:    m.Label(ext),
		})
	}

	return items
}
