package vimtextarea

// nextWordStart is the target of w (or W when bigWord is set). At the end of
// the buffer it lands on the last character.
func nextWordStart(lines []string, p Position, bigWord bool) Position {
	w := newCellWalker(lines, bigWord)
	i := p
	if c := w.class(i); !isGap(c) {
		for {
			n, ok := w.next(i)
			if !ok {
				return w.lastChar()
			}
			if w.class(n) != c {
				break
			}
			i = n
		}
	}
	i, ok := w.next(i)
	if !ok {
		return w.lastChar()
	}
	for w.class(i) == classSpace {
		if i, ok = w.next(i); !ok {
			return w.lastChar()
		}
	}
	return i
}

// prevWordStart is the target of b (or B). At the start of the buffer it
// lands on (0, 0).
func prevWordStart(lines []string, p Position, bigWord bool) Position {
	w := newCellWalker(lines, bigWord)
	i, ok := w.prev(p)
	if !ok {
		return Position{}
	}
	for w.class(i) == classSpace {
		if i, ok = w.prev(i); !ok {
			return Position{}
		}
	}
	c := w.class(i)
	if c == classEmptyLine {
		return i
	}
	for {
		n, ok := w.prev(i)
		if !ok || w.class(n) != c {
			return i
		}
		i = n
	}
}

// nextWordEnd is the target of e (or E). With no later word the cursor stays put.
func nextWordEnd(lines []string, p Position, bigWord bool) Position {
	w := newCellWalker(lines, bigWord)
	i, ok := w.next(p)
	if !ok {
		return p
	}
	for isGap(w.class(i)) {
		if i, ok = w.next(i); !ok {
			return p
		}
	}
	c := w.class(i)
	for {
		n, ok := w.next(i)
		if !ok || w.class(n) != c {
			return i
		}
		i = n
	}
}

// repeatMotion applies motion count times (at least once).
func repeatMotion(lines []string, p Position, count int, bigWord bool, motion func([]string, Position, bool) Position) Position {
	for range orOne(count) {
		p = motion(lines, p, bigWord)
	}
	return p
}

func orOne(count int) int {
	if count < 1 {
		return 1
	}
	return count
}
