package libcms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout is the request timeout of the default client.
const DefaultTimeout = 30 * time.Second

type (
	// A Client defines all interactions that can be performed on the CMS backend.
	Client interface {
		// Login authenticates the administrator and returns the bearer token.
		// The token is not stored by the client, see CredentialProvider.
		Login(ctx context.Context, email, password string) (string, error)
		// UpdatePassword changes the administrator's password.
		UpdatePassword(ctx context.Context, current, password string) error

		// Posts returns all the blog posts.
		Posts(ctx context.Context) ([]Post, error)
		// Post returns the blog post for the given id.
		Post(ctx context.Context, id string) (*Post, error)
		// CreatePost creates a new blog post.
		CreatePost(ctx context.Context, params PostParams) error
		// UpdatePost updates the title and the description of the given blog post.
		UpdatePost(ctx context.Context, id string, params PostParams) error
		// DeletePost deletes the given blog post.
		DeletePost(ctx context.Context, id string) error

		// Events returns all the events.
		Events(ctx context.Context) ([]Event, error)
		// Event returns the event for the given id.
		Event(ctx context.Context, id string) (*Event, error)
		// CreateEvent creates a new event.
		CreateEvent(ctx context.Context, params EventParams) error
		// UpdateEvent updates the given event.
		UpdateEvent(ctx context.Context, id string, params EventParams) error
		// DeleteEvent deletes the given event.
		DeleteEvent(ctx context.Context, id string) error

		// Gallery returns the gallery images, filtered on category when not empty.
		Gallery(ctx context.Context, category Category) ([]GalleryImage, error)
		// CreateGalleryImage adds an image to the gallery.
		CreateGalleryImage(ctx context.Context, params GalleryParams) error
	}

	p      map[string]any
	client struct {
		http        *http.Client
		endpoint    string
		credentials CredentialProvider
	}
)

// NewDefaultClient returns a new Client with a default HTTP client.
func NewDefaultClient(endpoint string, credentials CredentialProvider) (Client, error) {
	return NewClient(&http.Client{Timeout: DefaultTimeout}, endpoint, credentials)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string, credentials CredentialProvider) (Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse endpoint")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("endpoint must be an absolute URL: %s", endpoint)
	}

	if credentials == nil {
		credentials = NewTokenStore("")
	}
	return &client{http: c, endpoint: endpoint, credentials: credentials}, nil
}

func (c *client) Login(ctx context.Context, email, password string) (string, error) {
	var login struct {
		Token string `json:"token"`
	}

	err := c.do(ctx, http.MethodPost, "/auth/login", nil, p{"email": email, "password": password}, &login, false)
	if err != nil {
		return "", err
	}

	if login.Token == "" {
		return "", errors.New("no token in login response")
	}
	return login.Token, nil
}

func (c *client) UpdatePassword(ctx context.Context, current, password string) error {
	return c.do(ctx, http.MethodPut, "/admin/update-password", nil, p{"currentPassword": current, "newPassword": password}, nil, true)
}

//
// Posts
//

func (c *client) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := c.do(ctx, http.MethodGet, "/admin/blogs", nil, nil, &posts, true)
	return posts, err
}

func (c *client) Post(ctx context.Context, id string) (*Post, error) {
	route, err := resource("/admin/blogs", id)
	if err != nil {
		return nil, err
	}

	var post *Post
	if err := c.do(ctx, http.MethodGet, route, nil, nil, &post, true); err != nil {
		return nil, err
	}

	if post == nil || post.ID == "" {
		return nil, errors.Wrapf(ErrNotFound, "post %s", id)
	}
	return post, nil
}

func (c *client) CreatePost(ctx context.Context, params PostParams) error {
	return c.do(ctx, http.MethodPost, "/admin/blogs", nil, params, nil, true)
}

func (c *client) UpdatePost(ctx context.Context, id string, params PostParams) error {
	params.Image = "" // Only title and description are updatable.
	route, err := resource("/admin/blogs", id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, route, nil, params, nil, true)
}

func (c *client) DeletePost(ctx context.Context, id string) error {
	route, err := resource("/admin/blogs", id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, route, nil, nil, nil, true)
}

//
// Events
//

func (c *client) Events(ctx context.Context) ([]Event, error) {
	var events []Event
	err := c.do(ctx, http.MethodGet, "/admin/events", nil, nil, &events, true)
	return events, err
}

func (c *client) Event(ctx context.Context, id string) (*Event, error) {
	route, err := resource("/admin/events", id)
	if err != nil {
		return nil, err
	}

	var event *Event
	if err := c.do(ctx, http.MethodGet, route, nil, nil, &event, true); err != nil {
		return nil, err
	}

	if event == nil || event.ID == "" {
		return nil, errors.Wrapf(ErrNotFound, "event %s", id)
	}
	return event, nil
}

func (c *client) CreateEvent(ctx context.Context, params EventParams) error {
	return c.do(ctx, http.MethodPost, "/admin/events", nil, params, nil, true)
}

func (c *client) UpdateEvent(ctx context.Context, id string, params EventParams) error {
	params.Image = ""
	route, err := resource("/admin/events", id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, route, nil, params, nil, true)
}

func (c *client) DeleteEvent(ctx context.Context, id string) error {
	route, err := resource("/admin/events", id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, route, nil, nil, nil, true)
}

//
// Gallery
//

func (c *client) Gallery(ctx context.Context, category Category) ([]GalleryImage, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", string(category))
	}

	var images []GalleryImage
	err := c.do(ctx, http.MethodGet, "/admin/gallery", query, nil, &images, true)
	return images, err
}

func (c *client) CreateGalleryImage(ctx context.Context, params GalleryParams) error {
	return c.do(ctx, http.MethodPost, "/admin/gallery", nil, params, nil, true)
}

////////////////////
//                //
// Transport      //
//                //
////////////////////

// resource returns the path of an entity. The URL encoding of the id is done when the request URL is built.
// Ids that would resolve to another route once the path is cleaned are rejected.
func resource(collection, id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.Contains(id, "/") {
		return "", errors.Wrapf(ErrInvalidID, "%q", id)
	}
	return collection + "/" + id, nil
}

// do performs a JSON request. The bearer token is read from the credential provider when authenticated is true.
func (c *client) do(ctx context.Context, method, route string, query url.Values, payload, out any, authenticated bool) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.RawPath = ""
	u.Path = path.Join(u.Path, route)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	//
	// Build request
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "could not serialize request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Header.Add("Accept", "application/json")
	if payload != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	if authenticated {
		if token := c.credentials.Token(); token != "" {
			req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Err: errors.Wrap(err, "could not perform request")}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return parseRequestError(res.Body, res.StatusCode)
	}

	if out == nil {
		return nil
	}

	//
	// Process response
	dec := json.NewDecoder(res.Body)
	err = dec.Decode(out)
	if err == io.EOF {
		return nil // Empty body
	}
	return errors.Wrap(err, "could not parse response")
}
