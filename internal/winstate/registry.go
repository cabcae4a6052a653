package winstate

// registry is an insertion-ordered id -> window map.
type registry struct {
	order []string
	byID  map[string]*Window
}

func newRegistry() *registry {
	return &registry{byID: make(map[string]*Window)}
}

func (r *registry) put(w *Window) {
	if _, exists := r.byID[w.ID]; !exists {
		r.order = append(r.order, w.ID)
	}
	r.byID[w.ID] = w
}

func (r *registry) get(id string) (*Window, bool) {
	w, ok := r.byID[id]
	return w, ok
}

func (r *registry) remove(id string) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *registry) len() int {
	return len(r.order)
}

// ids returns a copy of the ids in insertion order.
func (r *registry) ids() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

func (r *registry) windows() []*Window {
	out := make([]*Window, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
