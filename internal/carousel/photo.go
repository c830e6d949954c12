package carousel

import "fmt"

// Photo is a single image in a fetched collection. ID is stable and unique
// within a collection; Secret, Server and Farm together locate the image
// file on Flickr's static hosts. Description starts nil and is filled in by
// caption reconciliation once the text has been fetched.
type Photo struct {
	ID          string  `json:"id"`
	Secret      string  `json:"secret"`
	Server      string  `json:"server"`
	Farm        int     `json:"farm"`
	Description *string `json:"description,omitempty"`
}

// SourceURL returns the address of the large rendition of the photo. The
// format is fixed; the display layer depends on it verbatim.
func (p Photo) SourceURL() string {
	return fmt.Sprintf("https://farm%d.staticflickr.com/%s/%s_%s_b.jpg", p.Farm, p.Server, p.ID, p.Secret)
}

// HasDescription reports whether a caption has already been applied.
func (p Photo) HasDescription() bool {
	return p.Description != nil
}
