package admin_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdouchement/cmsadmin/internal/admin"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostForm_Validation(t *testing.T) {
	ioc, rec, b := setup(t)
	ctx := context.Background()

	for _, tc := range []struct {
		title       string
		description string
		image       bool
	}{
		{"", "World", true},
		{"Hello", "  ", true},
		{"Hello", "World", false},
	} {
		form := admin.NewPostForm(ioc)
		form.Title = tc.title
		form.Description = tc.description
		if tc.image {
			require.NoError(t, form.SelectImage(pngFile(t, "post.png")))
		}

		err := form.Submit(ctx)
		assert.True(t, admin.IsValidation(err))
		assert.EqualError(t, err, "All fields are required")
	}

	assert.Equal(t, 0, b.mutations(), "no request is sent on validation error")
	assert.Equal(t, []string{"All fields are required", "All fields are required", "All fields are required"}, rec.errors)
	assert.Empty(t, rec.routes)
}

func TestPostForm_Submit(t *testing.T) {
	ioc, rec, b := setup(t)

	form := admin.NewPostForm(ioc)
	form.Title = "Hello"
	form.Description = "World"
	require.NoError(t, form.SelectImage(pngFile(t, "post.png")))

	require.NoError(t, form.Submit(context.Background()))
	assert.Equal(t, 1, b.count("POST", "/api/admin/blogs"))
	assert.Equal(t, []string{"Post added successfully"}, rec.successes)
	assert.Equal(t, []admin.Route{admin.RoutePosts}, rec.routes)

	// Cleared.
	assert.Empty(t, form.Title)
	assert.Empty(t, form.Description)
	_, ok := form.Image()
	assert.False(t, ok)
	assert.False(t, form.Submitting())

	posts, err := b.client.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
	assert.NotEmpty(t, posts[0].ImageURL)
}

func TestPostForm_Failure(t *testing.T) {
	ioc, rec, b := setup(t)

	// Not an image, rejected by the backend.
	filename := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(filename, []byte("hello"), 0o600))

	form := admin.NewPostForm(ioc)
	form.Title = "Hello"
	form.Description = "World"
	require.NoError(t, form.SelectImage(filename))

	err := form.Submit(context.Background())
	assert.Error(t, err)
	assert.False(t, admin.IsValidation(err))
	assert.Equal(t, 1, b.count("POST", "/api/admin/blogs"))
	assert.Equal(t, []string{"Invalid image"}, rec.errors)
	assert.Empty(t, rec.routes)

	// Preserved for a retry.
	assert.Equal(t, "Hello", form.Title)
	assert.Equal(t, "World", form.Description)
	_, ok := form.Image()
	assert.True(t, ok)
}

func TestPostForm_TransportFailure(t *testing.T) {
	ioc, rec, _ := setup(t)

	client, err := libcms.NewClient(&http.Client{}, "http://127.0.0.1:1/api/", nil)
	require.NoError(t, err)
	ioc.Client = client

	form := admin.NewPostForm(ioc)
	form.Title = "Hello"
	form.Description = "World"
	require.NoError(t, form.SelectImage(pngFile(t, "post.png")))

	assert.Error(t, form.Submit(context.Background()))
	assert.Equal(t, []string{"Failed to add post"}, rec.errors)
	assert.Equal(t, "Hello", form.Title)
}

func TestEventForm(t *testing.T) {
	ioc, rec, b := setup(t)
	ctx := context.Background()

	form := admin.NewEventForm(ioc)
	assert.True(t, form.IsActive, "events are active by default")

	form.Title = "Meetup"
	form.Description = "Monthly gathering"
	err := form.Submit(ctx)
	assert.EqualError(t, err, "Title, description and date are required")

	form.Date = "soon"
	err = form.Submit(ctx)
	assert.EqualError(t, err, "Invalid date")
	assert.Equal(t, 0, b.mutations())

	form.Date = "March 1, 2024"
	form.Venue = "Town hall"
	require.NoError(t, form.Submit(ctx), "image is optional")
	assert.Equal(t, []string{"Event created successfully"}, rec.successes)
	assert.Equal(t, []admin.Route{admin.RouteEvents}, rec.routes)
	assert.Empty(t, form.Date)
	assert.True(t, form.IsActive)

	events, err := b.client.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2024-03-01", events[0].Date.String())
	assert.Equal(t, "Town hall", events[0].Venue)
	assert.True(t, events[0].Active())
}

func TestGalleryForm(t *testing.T) {
	ioc, rec, b := setup(t)
	ctx := context.Background()

	form := admin.NewGalleryForm(ioc)
	form.Title = "Team day"
	err := form.Submit(ctx)
	assert.EqualError(t, err, "Please select an image")

	require.NoError(t, form.SelectImage(pngFile(t, "team.png")))
	form.Category = "holidays"
	err = form.Submit(ctx)
	assert.EqualError(t, err, "Unknown category")
	assert.Equal(t, 0, b.mutations())

	form.Category = "team"
	require.NoError(t, form.Submit(ctx))
	assert.Equal(t, []string{"Image added to gallery"}, rec.successes)
	assert.Equal(t, []admin.Route{admin.RouteGallery}, rec.routes)
	assert.Empty(t, form.Title)
	assert.Empty(t, form.Category)

	images, err := b.client.Gallery(ctx, libcms.CategoryTeam)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "Team day", images[0].Title)
}

func TestForm_ImageTooLarge(t *testing.T) {
	ioc, rec, _ := setup(t)

	filename := filepath.Join(t.TempDir(), "huge.png")
	f, err := os.Create(filename)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(libcms.MaxImageSize+1))
	require.NoError(t, f.Close())

	form := admin.NewGalleryForm(ioc)
	err = form.SelectImage(filename)
	assert.ErrorIs(t, err, libcms.ErrImageTooLarge)
	assert.Equal(t, []string{"Image must be smaller than 10MB"}, rec.errors)

	_, ok := form.Image()
	assert.False(t, ok, "no pending upload")

	// A previous selection is kept.
	require.NoError(t, form.SelectImage(pngFile(t, "small.png")))
	assert.Error(t, form.SelectImage(filename))
	img, ok := form.Image()
	assert.True(t, ok)
	assert.Equal(t, "small.png", img.Name)
}

func TestForm_ImageRoundTrip(t *testing.T) {
	ioc, _, _ := setup(t)

	form := admin.NewPostForm(ioc)
	pristine, pristineOK := form.Image()

	require.NoError(t, form.SelectImage(pngFile(t, "post.png")))
	img, ok := form.Image()
	require.True(t, ok)
	assert.Contains(t, img.Data, "data:image/png;base64,")
	assert.Contains(t, img.Preview, "data:image/")

	form.RemoveImage()
	removed, removedOK := form.Image()
	assert.Equal(t, pristine, removed)
	assert.Equal(t, pristineOK, removedOK)
}

func TestForm_ImageUnreadable(t *testing.T) {
	ioc, rec, _ := setup(t)

	form := admin.NewPostForm(ioc)
	assert.Error(t, form.SelectImage(filepath.Join(t.TempDir(), "missing.png")))
	assert.Equal(t, []string{"Could not read image"}, rec.errors)
}
