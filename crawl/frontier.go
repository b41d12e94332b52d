package crawl

// frontier is the mutable state of one breadth-first crawl: a FIFO queue
// of pending URLs, the set of visited URLs, and every URL discovered so
// far in the order it was first seen.
//
// A visited URL is never queued again and the queue never holds the same
// URL twice.
type frontier struct {
	queue      []string
	queued     map[string]struct{}
	visited    map[string]struct{}
	discovered []string
	known      map[string]struct{}
}

// newFrontier returns a frontier whose queue holds only seed.
func newFrontier(seed string) *frontier {
	return &frontier{
		queue:   []string{seed},
		queued:  map[string]struct{}{seed: {}},
		visited: make(map[string]struct{}),
		known:   make(map[string]struct{}),
	}
}

// Len returns the number of queued URLs.
func (f *frontier) Len() int {
	return len(f.queue)
}

// Pop removes and returns the URL at the front of the queue.
// The bool result is false if the queue is empty.
func (f *frontier) Pop() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	delete(f.queued, url)
	return url, true
}

// Push enqueues url unless it was already visited or is already queued.
// Returns true if the URL was enqueued.
func (f *frontier) Push(url string) bool {
	if f.Visited(url) || f.Queued(url) {
		return false
	}
	f.queue = append(f.queue, url)
	f.queued[url] = struct{}{}
	f.discover(url)
	return true
}

// Visit marks url as visited.
func (f *frontier) Visit(url string) {
	f.visited[url] = struct{}{}
	f.discover(url)
}

// Visited reports whether url was visited.
func (f *frontier) Visited(url string) bool {
	_, ok := f.visited[url]
	return ok
}

// Queued reports whether url is waiting in the queue.
func (f *frontier) Queued(url string) bool {
	_, ok := f.queued[url]
	return ok
}

// VisitedCount returns the number of distinct URLs visited.
func (f *frontier) VisitedCount() int {
	return len(f.visited)
}

// Discovered returns every URL visited or enqueued, in discovery order.
func (f *frontier) Discovered() []string {
	return append([]string(nil), f.discovered...)
}

func (f *frontier) discover(url string) {
	if _, ok := f.known[url]; ok {
		return
	}
	f.known[url] = struct{}{}
	f.discovered = append(f.discovered, url)
}
