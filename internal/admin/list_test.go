package admin_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/mdouchement/cmsadmin/internal/admin"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostList(t *testing.T) {
	ioc, _, b := setup(t)
	ctx := context.Background()

	list := admin.NewPostList(ioc)
	assert.Equal(t, admin.ListLoading, list.State(), "empty state is suppressed while loading")
	assert.True(t, list.Loading())

	list.Load(ctx)
	assert.Equal(t, admin.ListEmpty, list.State())
	assert.Equal(t, 0, list.Total())

	createPost(t, b, "Spring release", "What's new")
	createPost(t, b, "Roadmap", "Next steps for spring")
	createPost(t, b, "Hiring", "Join us")

	list.Load(ctx)
	assert.Equal(t, admin.ListReady, list.State())
	assert.Equal(t, 3, list.Total())
	assert.Len(t, list.Items(), 3)
	assert.Equal(t, 1, b.count("GET", "/api/admin/blogs"))

	// Title match on a single item.
	list.SetSearch("RELEASE")
	require.Len(t, list.Items(), 1)
	assert.Equal(t, "Spring release", list.Items()[0].Title)

	// Title or description.
	list.SetSearch("spring")
	assert.Len(t, list.Items(), 2)

	list.SetSearch("nothing like this")
	assert.Empty(t, list.Items())
	assert.Equal(t, admin.ListNoMatch, list.State())
	assert.Equal(t, 3, list.Total())

	list.SetSearch("")
	assert.Len(t, list.Items(), 3)
	assert.Equal(t, admin.ListReady, list.State())

	// Filtering never fetches again.
	assert.Equal(t, 1, b.count("GET", "/api/admin/blogs"))
}

func TestEventList(t *testing.T) {
	ioc, _, b := setup(t)

	createEvent(t, b, "Meetup", "Monthly gathering", "2024-03-01")
	createEvent(t, b, "Hackathon", "48 hours of code", "2024-05-10")

	list := admin.NewEventList(ioc)
	list.Load(context.Background())
	assert.Equal(t, 2, list.Total())

	list.SetSearch("gathering")
	require.Len(t, list.Items(), 1)
	assert.Equal(t, "Meetup", list.Items()[0].Title)
	assert.Equal(t, "gathering", list.Search())
}

func TestGalleryList(t *testing.T) {
	ioc, _, b := setup(t)
	ctx := context.Background()

	img, err := libcms.EncodeFile(pngFile(t, "gallery.png"))
	require.NoError(t, err)
	require.NoError(t, b.client.CreateGalleryImage(ctx, libcms.GalleryParams{Image: img.Data, Title: "Team day", Category: libcms.CategoryTeam}))
	require.NoError(t, b.client.CreateGalleryImage(ctx, libcms.GalleryParams{Image: img.Data, Title: "Launch party", Category: libcms.CategoryEvents}))
	b.reset()

	list := admin.NewGalleryList(ioc)
	list.Load(ctx)
	assert.Equal(t, 2, list.Total())
	assert.Empty(t, list.Category())

	list.SetCategory(ctx, libcms.CategoryTeam)
	assert.Equal(t, libcms.CategoryTeam, list.Category())
	require.Equal(t, 1, list.Total())
	assert.Equal(t, "Team day", list.Items()[0].Title)
	assert.Equal(t, 2, b.count("GET", "/api/admin/gallery"), "category change fetches again")

	list.SetSearch("party")
	assert.Equal(t, admin.ListNoMatch, list.State())

	list.SetCategory(ctx, "")
	assert.Len(t, list.Items(), 1)
	assert.Equal(t, 2, list.Total())
}

func TestList_SoftFail(t *testing.T) {
	ioc, _, b := setup(t)
	createPost(t, b, "Hello", "World")

	list := admin.NewPostList(ioc)
	list.Load(context.Background())
	require.Equal(t, 1, list.Total())

	b.tokens.Clear() // Requests are now rejected.

	list.Load(context.Background())
	assert.False(t, list.Loading())
	assert.Equal(t, admin.ListEmpty, list.State())
	assert.Empty(t, list.Items())
}

func TestList_StaleResponse(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	list := admin.NewList(admin.IOC{}, "items", func(ctx context.Context) ([]libcms.Post, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return []libcms.Post{{Title: "stale"}}, nil
		}
		return []libcms.Post{{Title: "fresh"}}, nil
	}, "Title")

	done := make(chan struct{})
	go func() {
		list.Load(context.Background())
		close(done)
	}()

	<-started
	list.Load(context.Background())
	close(release)
	<-done

	require.Len(t, list.Items(), 1)
	assert.Equal(t, "fresh", list.Items()[0].Title)
}

func TestList_Error(t *testing.T) {
	list := admin.NewList(admin.IOC{}, "items", func(ctx context.Context) ([]libcms.Post, error) {
		return nil, errors.New("boom")
	}, "Title")

	list.Load(context.Background())
	assert.Equal(t, admin.ListEmpty, list.State())
	assert.Equal(t, "empty", list.State().String())
}
