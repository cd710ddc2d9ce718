package journal

import (
	"cmp"
	"slices"
	"strings"
)

// Search returns every entry whose text contains query, in file order.
// The stamp heading is part of the searched text.
func (s *Store) Search(query string) ([]Entry, error) {
	if query == "" {
		return nil, nil
	}
	var results []Entry
	err := s.eachEntry(func(e Entry, raw string) {
		if strings.Contains(raw, query) {
			results = append(results, e)
		}
	})
	return results, err
}

// SearchKeywords ranks entries by how many of keywords they contain,
// ignoring case. Ties go to the newer file, then the later entry.
// Blank keywords are ignored; with none left there are no results.
func (s *Store) SearchKeywords(keywords []string) ([]Entry, error) {
	var needles []string
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			needles = append(needles, strings.ToLower(k))
		}
	}
	if len(needles) == 0 {
		return nil, nil
	}

	type scored struct {
		entry Entry
		score int
	}
	var hits []scored
	err := s.eachEntry(func(e Entry, raw string) {
		haystack := strings.ToLower(raw)
		score := 0
		for _, n := range needles {
			if strings.Contains(haystack, n) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{entry: e, score: score})
		}
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		return cmp.Or(
			cmp.Compare(b.score, a.score),
			cmp.Compare(b.entry.Path, a.entry.Path),
			cmp.Compare(b.entry.Line, a.entry.Line),
		)
	})
	results := make([]Entry, len(hits))
	for i, h := range hits {
		results[i] = h.entry
	}
	return results, nil
}

// eachEntry calls fn for every entry of every daily file with the entry's
// raw text, heading included.
func (s *Store) eachEntry(fn func(e Entry, raw string)) error {
	files, err := s.dailyFiles()
	if err != nil {
		return err
	}
	for _, path := range files {
		entries, err := s.readFile(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fn(e, strings.Join(entryLines(e, e.Body), "\n"))
		}
	}
	return nil
}
