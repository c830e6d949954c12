package viewer

import "github.com/dc25/photoview/internal/carousel"

// State is the outcome of one collection load: a live carousel, or a
// terminal failure carrying the fetch error. Exactly one field is set; the
// error variant disables navigation until a fresh load replaces it.
type State struct {
	carousel *carousel.Carousel
	err      error
}

func live(c *carousel.Carousel) State {
	return State{carousel: c}
}

func failed(err error) State {
	return State{err: err}
}

// Err returns the load failure, or nil for a live state.
func (s State) Err() error {
	return s.err
}
