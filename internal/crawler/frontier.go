package crawler

// frontier is the stack of discovered URLs waiting to be visited.
type frontier struct {
	items []string
}

func newFrontier(seed string) *frontier {
	return &frontier{items: []string{seed}}
}

// pushChildren pushes links so that links[0] is popped first.
func (f *frontier) pushChildren(links []string) {
	for i := len(links) - 1; i >= 0; i-- {
		f.items = append(f.items, links[i])
	}
}

// pop removes and returns the top URL. It must not be called when empty.
func (f *frontier) pop() string {
	last := len(f.items) - 1
	item := f.items[last]
	f.items[last] = ""
	f.items = f.items[:last]
	return item
}

func (f *frontier) empty() bool {
	return len(f.items) == 0
}

func (f *frontier) len() int {
	return len(f.items)
}
