package flickr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dc25/photoview/internal/carousel"
)

const defaultEndpoint = "https://api.flickr.com/services/rest/"

// Client talks to the Flickr REST API. All calls are plain GETs returning
// JSON; the api key is appended to every request.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// NewClient builds a client with the given api key. A nil httpClient falls
// back to a client with a 15 second timeout.
func NewClient(apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     httpClient,
	}
}

// NewClientWithEndpoint is NewClient with the REST endpoint overridden.
// Tests point it at a local server.
func NewClientWithEndpoint(apiKey string, httpClient *http.Client, endpoint string) *Client {
	c := NewClient(apiKey, httpClient)
	c.endpoint = endpoint
	return c
}

// APIError is a request the Flickr API answered with stat != ok.
type APIError struct {
	Method  string
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flickr: %s failed: %s (code %d)", e.Method, e.Message, e.Code)
}

// Photoset is one named album belonging to a user.
type Photoset struct {
	ID    string
	Title string
}

type wirePhoto struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
	Server string `json:"server"`
	Farm   int    `json:"farm"`
}

type wireContent struct {
	Content string `json:"_content"`
}

// FindByUserName resolves a user name to the account's user id.
func (c *Client) FindByUserName(ctx context.Context, username string) (string, error) {
	var out struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}

	params := url.Values{}
	params.Set("username", username)
	if err := c.call(ctx, "flickr.people.findByUserName", params, &out); err != nil {
		return "", err
	}

	return out.User.ID, nil
}

// PublicPhotos lists the public photos of a user, in the order the API
// returns them.
func (c *Client) PublicPhotos(ctx context.Context, userID string) ([]carousel.Photo, error) {
	var out struct {
		Photos struct {
			Photo []wirePhoto `json:"photo"`
		} `json:"photos"`
	}

	params := url.Values{}
	params.Set("user_id", userID)
	if err := c.call(ctx, "flickr.people.getPublicPhotos", params, &out); err != nil {
		return nil, err
	}

	return toPhotos(out.Photos.Photo), nil
}

// Photosets lists the named albums of a user.
func (c *Client) Photosets(ctx context.Context, userID string) ([]Photoset, error) {
	var out struct {
		Photosets struct {
			Photoset []struct {
				ID    string      `json:"id"`
				Title wireContent `json:"title"`
			} `json:"photoset"`
		} `json:"photosets"`
	}

	params := url.Values{}
	params.Set("user_id", userID)
	if err := c.call(ctx, "flickr.photosets.getList", params, &out); err != nil {
		return nil, err
	}

	sets := make([]Photoset, 0, len(out.Photosets.Photoset))
	for _, set := range out.Photosets.Photoset {
		sets = append(sets, Photoset{ID: set.ID, Title: set.Title.Content})
	}
	return sets, nil
}

// PhotosetPhotos lists the photos of one album, in album order.
func (c *Client) PhotosetPhotos(ctx context.Context, userID, photosetID string) ([]carousel.Photo, error) {
	var out struct {
		Photoset struct {
			Photo []wirePhoto `json:"photo"`
		} `json:"photoset"`
	}

	params := url.Values{}
	params.Set("user_id", userID)
	params.Set("photoset_id", photosetID)
	if err := c.call(ctx, "flickr.photosets.getPhotos", params, &out); err != nil {
		return nil, err
	}

	return toPhotos(out.Photoset.Photo), nil
}

// PhotoDescription fetches the caption text of a single photo.
func (c *Client) PhotoDescription(ctx context.Context, photoID string) (string, error) {
	var out struct {
		Photo struct {
			Description wireContent `json:"description"`
		} `json:"photo"`
	}

	params := url.Values{}
	params.Set("photo_id", photoID)
	if err := c.call(ctx, "flickr.photos.getInfo", params, &out); err != nil {
		return "", err
	}

	return out.Photo.Description.Content, nil
}

func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("method", method)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")
	query.Set("nojsoncallback", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("flickr: build request for %s: %w", method, err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("flickr: %s: %w", method, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("flickr: %s: unexpected status %d", method, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("flickr: read %s response: %w", method, err)
	}

	var stat struct {
		Stat    string `json:"stat"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &stat); err != nil {
		return fmt.Errorf("flickr: decode %s response: %w", method, err)
	}
	if stat.Stat != "ok" {
		return &APIError{Method: method, Code: stat.Code, Message: stat.Message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("flickr: decode %s response: %w", method, err)
	}
	return nil
}

func toPhotos(wire []wirePhoto) []carousel.Photo {
	photos := make([]carousel.Photo, 0, len(wire))
	for _, p := range wire {
		photos = append(photos, carousel.Photo{
			ID:     p.ID,
			Secret: p.Secret,
			Server: p.Server,
			Farm:   p.Farm,
		})
	}
	return photos
}
