package carousel

// Direction selects which way Rotate moves through the collection.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Carousel holds the photos of one fetched collection partitioned into the
// ones already passed (left), the one on display (shown) and the ones still
// ahead (right). Rotation moves photos between the three partitions; the
// cyclic order of the original fetch is preserved throughout, only the cut
// point moves. A photo lives in exactly one partition at a time.
//
// The zero value is an empty carousel. A Carousel is not safe for concurrent
// use; its owner serializes access.
type Carousel struct {
	left  []Photo // photos already passed, oldest first
	shown *Photo
	right []Photo // photos still ahead, next first
}

// New builds a carousel from a fetched photo list. The first photo goes on
// display, the remainder queues up ahead.
func New(photos []Photo) *Carousel {
	c := &Carousel{}
	if len(photos) == 0 {
		return c
	}

	shown := photos[0]
	c.shown = &shown
	c.right = append(c.right, photos[1:]...)
	return c
}

// Shown returns the photo currently on display, if any.
func (c *Carousel) Shown() (Photo, bool) {
	if c.shown == nil {
		return Photo{}, false
	}
	return *c.shown, true
}

// Len returns the number of photos across all three partitions.
func (c *Carousel) Len() int {
	n := len(c.left) + len(c.right)
	if c.shown != nil {
		n++
	}
	return n
}

// Position returns the zero-based index of the shown photo within the
// current linearization, or -1 when the carousel is empty.
func (c *Carousel) Position() int {
	if c.shown == nil {
		return -1
	}
	return len(c.left)
}

// Photos returns the linearization of the three partitions: passed photos in
// original order, then the shown photo, then the photos still ahead. For any
// sequence of rotations this is a rotation of the originally fetched order.
func (c *Carousel) Photos() []Photo {
	out := make([]Photo, 0, c.Len())
	out = append(out, c.left...)
	if c.shown != nil {
		out = append(out, *c.shown)
	}
	out = append(out, c.right...)
	return out
}

// Rotate moves the display one step in the given direction and returns the
// photo now shown. An empty carousel is left untouched; a single-photo
// carousel keeps showing the same photo.
//
// When the traversal reaches either end it wraps: the passed history flips
// over to the opposite side so navigation continues around the cycle.
func (c *Carousel) Rotate(dir Direction) (Photo, bool) {
	if c.shown == nil {
		return Photo{}, false
	}

	switch dir {
	case Forward:
		if len(c.right) > 0 {
			next := c.right[0]
			c.left = append(c.left, *c.shown)
			*c.shown = next
			c.right = c.right[1:]
		} else if len(c.left) > 0 {
			// Last photo shown; wrap back to the first.
			first := c.left[0]
			rest := append([]Photo{}, c.left[1:]...)
			c.right = append(rest, *c.shown)
			*c.shown = first
			c.left = nil
		}
	case Backward:
		if len(c.left) > 0 {
			prev := c.left[len(c.left)-1]
			c.right = append([]Photo{*c.shown}, c.right...)
			*c.shown = prev
			c.left = c.left[:len(c.left)-1]
		} else if len(c.right) > 0 {
			// First photo shown; wrap around to the last.
			last := c.right[len(c.right)-1]
			c.left = append([]Photo{*c.shown}, c.right[:len(c.right)-1]...)
			*c.shown = last
			c.right = nil
		}
	}

	return *c.shown, true
}

// SetDescription overwrites the description of the photo with the given id,
// wherever it currently sits, and reports whether a photo matched. Partition
// membership and order never change; reapplying the same result is harmless.
func (c *Carousel) SetDescription(id, text string) bool {
	if c.shown != nil && c.shown.ID == id {
		c.shown.Description = &text
		return true
	}
	for i := range c.left {
		if c.left[i].ID == id {
			c.left[i].Description = &text
			return true
		}
	}
	for i := range c.right {
		if c.right[i].ID == id {
			c.right[i].Description = &text
			return true
		}
	}
	return false
}
