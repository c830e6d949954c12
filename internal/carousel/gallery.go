package carousel

// Gallery is the bucket variant used by grid displays: every photo starts
// out pending and moves to the captioned bucket when its caption arrives.
// Both buckets keep fetch order. Like Carousel, a Gallery has a single owner
// and is not safe for concurrent use.
type Gallery struct {
	pending   []Photo
	captioned []Photo
}

// NewGallery builds a gallery with every photo waiting for its caption.
func NewGallery(photos []Photo) *Gallery {
	g := &Gallery{}
	g.pending = append(g.pending, photos...)
	return g
}

// Pending returns the photos still waiting for a caption, in fetch order.
func (g *Gallery) Pending() []Photo {
	return append([]Photo{}, g.pending...)
}

// Captioned returns the photos whose caption has arrived, in arrival order.
func (g *Gallery) Captioned() []Photo {
	return append([]Photo{}, g.captioned...)
}

// Resolve applies a caption result: the matching pending photo gets the text
// and moves to the captioned bucket. A result whose id is no longer pending
// finds no match and is discarded, so replayed completions change nothing.
func (g *Gallery) Resolve(id, text string) bool {
	for i := range g.pending {
		if g.pending[i].ID != id {
			continue
		}
		photo := g.pending[i]
		photo.Description = &text
		g.pending = append(g.pending[:i], g.pending[i+1:]...)
		g.captioned = append(g.captioned, photo)
		return true
	}
	return false
}
