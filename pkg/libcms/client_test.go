package libcms_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method        string
	path          string
	query         string
	authorization string
	body          map[string]any
}

func setup(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (libcms.Client, *libcms.TokenStore, *[]recorded) {
	var requests []recorded

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			method:        r.Method,
			path:          r.URL.Path,
			query:         r.URL.RawQuery,
			authorization: r.Header.Get("Authorization"),
		}
		if payload, _ := io.ReadAll(r.Body); len(payload) > 0 {
			require.NoError(t, json.Unmarshal(payload, &rec.body))
		}
		requests = append(requests, rec)

		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	tokens := libcms.NewTokenStore("")
	client, err := libcms.NewClient(server.Client(), server.URL+"/api/", tokens)
	require.NoError(t, err)

	return client, tokens, &requests
}

func TestNewClient(t *testing.T) {
	_, err := libcms.NewDefaultClient("http://localhost:7777/api/", nil)
	assert.NoError(t, err)

	_, err = libcms.NewDefaultClient("localhost", nil)
	assert.Error(t, err)
}

func TestClient_Login(t *testing.T) {
	client, tokens, requests := setup(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"token":"tk42"}`)
	})
	tokens.SetToken("stale")

	token, err := client.Login(context.Background(), "admin@nowhere.lan", "password42")
	require.NoError(t, err)
	assert.Equal(t, "tk42", token)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/api/auth/login", req.path)
	assert.Empty(t, req.authorization)
	assert.Equal(t, map[string]any{"email": "admin@nowhere.lan", "password": "password42"}, req.body)
}

func TestClient_LoginFailure(t *testing.T) {
	client, _, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Invalid credentials"}`)
	})

	_, err := client.Login(context.Background(), "admin@nowhere.lan", "nope")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", libcms.Message(err, "Login failed"))
}

func TestClient_BearerReadOnEveryRequest(t *testing.T) {
	client, tokens, requests := setup(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	_, err := client.Posts(context.Background())
	require.NoError(t, err)

	tokens.SetToken("tk42")
	_, err = client.Posts(context.Background())
	require.NoError(t, err)

	tokens.Clear()
	_, err = client.Posts(context.Background())
	require.NoError(t, err)

	require.Len(t, *requests, 3)
	assert.Empty(t, (*requests)[0].authorization)
	assert.Equal(t, "Bearer tk42", (*requests)[1].authorization)
	assert.Empty(t, (*requests)[2].authorization)
}

func TestClient_Posts(t *testing.T) {
	client, _, requests := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if r.URL.Path == "/api/admin/blogs" {
				io.WriteString(w, `[{"_id":"1","title":"Hello","description":"World","imageUrl":"http://img/1"}]`)
				return
			}
			io.WriteString(w, `{"_id":"1","title":"Hello","description":"World"}`)
		default:
			io.WriteString(w, `{"message":"ok"}`)
		}
	})
	ctx := context.Background()

	posts, err := client.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []libcms.Post{{ID: "1", Title: "Hello", Description: "World", ImageURL: "http://img/1"}}, posts)

	post, err := client.Post(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)

	err = client.CreatePost(ctx, libcms.PostParams{Title: "T", Description: "D", Image: "data:image/png;base64,AA=="})
	require.NoError(t, err)

	err = client.UpdatePost(ctx, "1", libcms.PostParams{Title: "T2", Description: "D2", Image: "ignored"})
	require.NoError(t, err)

	err = client.DeletePost(ctx, "1")
	require.NoError(t, err)

	require.Len(t, *requests, 5)
	assert.Equal(t, http.MethodPost, (*requests)[2].method)
	assert.Equal(t, "/api/admin/blogs", (*requests)[2].path)
	assert.Equal(t, map[string]any{"title": "T", "description": "D", "image": "data:image/png;base64,AA=="}, (*requests)[2].body)

	assert.Equal(t, http.MethodPut, (*requests)[3].method)
	assert.Equal(t, "/api/admin/blogs/1", (*requests)[3].path)
	assert.Equal(t, map[string]any{"title": "T2", "description": "D2"}, (*requests)[3].body)

	assert.Equal(t, http.MethodDelete, (*requests)[4].method)
	assert.Equal(t, "/api/admin/blogs/1", (*requests)[4].path)
	assert.Nil(t, (*requests)[4].body)
}

func TestClient_PostNotFound(t *testing.T) {
	client, _, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/blogs/404":
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"Blog not found"}`)
		default:
			io.WriteString(w, `null`)
		}
	})

	_, err := client.Post(context.Background(), "404")
	assert.True(t, libcms.IsNotFound(err))

	_, err = client.Post(context.Background(), "null")
	assert.True(t, libcms.IsNotFound(err))
}

func TestClient_InvalidID(t *testing.T) {
	client, _, requests := setup(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})
	ctx := context.Background()

	for _, id := range []string{"", ".", "..", "a/b", "../events"} {
		assert.ErrorIs(t, client.DeletePost(ctx, id), libcms.ErrInvalidID, id)
		assert.ErrorIs(t, client.UpdatePost(ctx, id, libcms.PostParams{Title: "t"}), libcms.ErrInvalidID, id)
		assert.ErrorIs(t, client.DeleteEvent(ctx, id), libcms.ErrInvalidID, id)
		assert.ErrorIs(t, client.UpdateEvent(ctx, id, libcms.EventParams{Title: "t"}), libcms.ErrInvalidID, id)

		_, err := client.Post(ctx, id)
		assert.ErrorIs(t, err, libcms.ErrInvalidID, id)
		_, err = client.Event(ctx, id)
		assert.ErrorIs(t, err, libcms.ErrInvalidID, id)
	}
	assert.Empty(t, *requests)

	// Dots inside an id are fine.
	require.NoError(t, client.DeletePost(ctx, "a..b"))
	require.Len(t, *requests, 1)
	assert.Equal(t, "/api/admin/blogs/a..b", (*requests)[0].path)
}

func TestClient_Events(t *testing.T) {
	client, _, requests := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/events":
			if r.Method == http.MethodGet {
				io.WriteString(w, `[{"_id":"1","title":"Gala","description":"Annual","date":"2025-03-14T00:00:00.000Z","isActive":false},{"_id":"2","title":"Fair","description":"Spring","date":"2025-04-01"}]`)
				return
			}
			w.WriteHeader(http.StatusCreated)
		default:
			io.WriteString(w, `{"_id":"1","title":"Gala","description":"Annual","date":"2025-03-14","venue":"Hall"}`)
		}
	})
	ctx := context.Background()

	events, err := client.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2025-03-14", events[0].Date.String())
	assert.False(t, events[0].Active())
	assert.True(t, events[1].Active())

	event, err := client.Event(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Hall", event.Venue)

	date, err := libcms.ParseDate("2025-05-01")
	require.NoError(t, err)
	err = client.CreateEvent(ctx, libcms.EventParams{Title: "T", Description: "D", Date: date, IsActive: true})
	require.NoError(t, err)

	err = client.UpdateEvent(ctx, "1", libcms.EventParams{Title: "T", Description: "D", Date: date, Venue: "Hall"})
	require.NoError(t, err)

	require.Len(t, *requests, 4)
	assert.Equal(t, map[string]any{"title": "T", "description": "D", "date": "2025-05-01", "isActive": true}, (*requests)[2].body)
	assert.Equal(t, http.MethodPut, (*requests)[3].method)
	assert.Equal(t, "/api/admin/events/1", (*requests)[3].path)
	assert.Equal(t, map[string]any{"title": "T", "description": "D", "date": "2025-05-01", "venue": "Hall", "isActive": false}, (*requests)[3].body)
}

func TestClient_Gallery(t *testing.T) {
	client, _, requests := setup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			io.WriteString(w, `[{"_id":"1","image":"http://img/1","title":"Team","category":"team"}]`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"_id":"2"}`)
	})
	ctx := context.Background()

	images, err := client.Gallery(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, libcms.CategoryTeam, images[0].Category)

	_, err = client.Gallery(ctx, libcms.CategoryTeam)
	require.NoError(t, err)

	err = client.CreateGalleryImage(ctx, libcms.GalleryParams{Image: "data:image/png;base64,AA=="})
	require.NoError(t, err)

	require.Len(t, *requests, 3)
	assert.Empty(t, (*requests)[0].query)
	assert.Equal(t, "category=team", (*requests)[1].query)
	assert.Equal(t, map[string]any{"image": "data:image/png;base64,AA=="}, (*requests)[2].body)
}

func TestClient_UpdatePassword(t *testing.T) {
	client, tokens, requests := setup(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"Password updated"}`)
	})
	tokens.SetToken("tk42")

	err := client.UpdatePassword(context.Background(), "old-password", "new-password")
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodPut, (*requests)[0].method)
	assert.Equal(t, "/api/admin/update-password", (*requests)[0].path)
	assert.Equal(t, "Bearer tk42", (*requests)[0].authorization)
	assert.Equal(t, map[string]any{"currentPassword": "old-password", "newPassword": "new-password"}, (*requests)[0].body)
}

func TestClient_TransportFailure(t *testing.T) {
	client, err := libcms.NewDefaultClient("http://127.0.0.1:1/api/", nil)
	require.NoError(t, err)

	_, err = client.Posts(context.Background())
	require.Error(t, err)

	var rerr *libcms.RequestError
	assert.ErrorAs(t, err, &rerr)
	assert.Zero(t, rerr.StatusCode)
	assert.Equal(t, "Failed to fetch", libcms.Message(err, "Failed to fetch"))
}
