package flickr

import (
	"context"
	"fmt"

	"github.com/dc25/photoview/internal/carousel"
)

// AlbumNotFoundError reports that none of a user's albums carries the
// requested title.
type AlbumNotFoundError struct {
	Album string
}

func (e *AlbumNotFoundError) Error() string {
	return fmt.Sprintf("flickr: no album titled %q", e.Album)
}

// ResolvePhotos resolves a user name to that account's photo list: the
// public photos, or — when album is non-empty — the photos of the first
// album whose title matches exactly. A missing album is an error, never a
// fallback to public photos.
func (c *Client) ResolvePhotos(ctx context.Context, username, album string) ([]carousel.Photo, error) {
	userID, err := c.FindByUserName(ctx, username)
	if err != nil {
		return nil, err
	}

	if album == "" {
		return c.PublicPhotos(ctx, userID)
	}

	sets, err := c.Photosets(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, set := range sets {
		if set.Title == album {
			return c.PhotosetPhotos(ctx, userID, set.ID)
		}
	}

	return nil, &AlbumNotFoundError{Album: album}
}
