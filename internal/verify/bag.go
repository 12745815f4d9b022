package verify

// lineBag is an ordered multiset of header lines. Removal takes the first
// remaining occurrence; the rest keep their original order.
type lineBag struct {
	lines   []string
	removed []bool
	index   map[string][]int
}

func newLineBag(lines []string) *lineBag {
	b := &lineBag{
		lines:   lines,
		removed: make([]bool, len(lines)),
		index:   make(map[string][]int, len(lines)),
	}
	for i, l := range lines {
		b.index[l] = append(b.index[l], i)
	}
	return b
}

// remove deletes one occurrence of line and reports whether one was present.
func (b *lineBag) remove(line string) bool {
	positions := b.index[line]
	if len(positions) == 0 {
		return false
	}
	b.removed[positions[0]] = true
	b.index[line] = positions[1:]
	return true
}

// remaining returns the lines not yet removed, in header order, with their
// 1-based line numbers.
func (b *lineBag) remaining() ([]string, []int) {
	var lines []string
	var numbers []int
	for i, l := range b.lines {
		if !b.removed[i] {
			lines = append(lines, l)
			numbers = append(numbers, i+1)
		}
	}
	return lines, numbers
}
