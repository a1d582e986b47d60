package admin_test

import (
	"context"
	"testing"

	"github.com/mdouchement/cmsadmin/internal/admin"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetail_NotFound(t *testing.T) {
	ioc, _, _ := setup(t)

	detail := admin.NewPostDetail(ioc, "3f9b2f5e-7a51-4e0a-9a9c-5d0f1b7c4e11")
	assert.Equal(t, admin.DetailLoading, detail.State())

	err := detail.Load(context.Background())
	assert.Error(t, err)
	assert.True(t, libcms.IsNotFound(err))
	assert.Equal(t, admin.DetailError, detail.State())
	assert.True(t, libcms.IsNotFound(detail.Err()))

	_, ok := detail.Entity()
	assert.False(t, ok)
	assert.ErrorIs(t, detail.BeginEdit(), admin.ErrInvalidState)
	assert.ErrorIs(t, detail.RequestDelete(), admin.ErrInvalidState)
}

func TestDetail_Edit(t *testing.T) {
	ioc, _, b := setup(t)
	ctx := context.Background()
	post := createPost(t, b, "Hello", "World")

	detail := admin.NewPostDetail(ioc, post.ID)
	require.NoError(t, detail.Load(ctx))
	assert.Equal(t, admin.DetailViewing, detail.State())
	assert.Equal(t, post.ID, detail.ID())
	assert.Equal(t, admin.PostDraft{Title: "Hello", Description: "World"}, detail.Draft())

	assert.ErrorIs(t, detail.SetDraft(admin.PostDraft{Title: "Nope"}), admin.ErrInvalidState, "read-only mode")
	assert.ErrorIs(t, detail.CancelEdit(), admin.ErrInvalidState)

	require.NoError(t, detail.BeginEdit())
	assert.Equal(t, admin.DetailEditing, detail.State())
	assert.ErrorIs(t, detail.BeginEdit(), admin.ErrInvalidState)

	require.NoError(t, detail.SetDraft(admin.PostDraft{Title: "Changed", Description: "Changed"}))
	require.NoError(t, detail.CancelEdit())
	assert.Equal(t, admin.DetailViewing, detail.State())
	assert.Equal(t, admin.PostDraftOf(post), detail.Draft(), "draft is restored from the server values")

	// Editing then cancelling without changes is a no-op.
	require.NoError(t, detail.BeginEdit())
	require.NoError(t, detail.CancelEdit())
	assert.Equal(t, admin.PostDraftOf(post), detail.Draft())

	assert.Equal(t, 0, b.mutations())
}

func TestDetail_Save(t *testing.T) {
	ioc, rec, b := setup(t)
	ctx := context.Background()
	post := createPost(t, b, "Hello", "World")

	detail := admin.NewPostDetail(ioc, post.ID)
	require.NoError(t, detail.Load(ctx))

	assert.ErrorIs(t, detail.Save(ctx), admin.ErrInvalidState, "read-only mode")

	require.NoError(t, detail.BeginEdit())
	require.NoError(t, detail.SetDraft(admin.PostDraft{Title: "Hello again", Description: "World"}))
	require.NoError(t, detail.Save(ctx))

	assert.Equal(t, 1, b.count("PUT", "/api/admin/blogs/"+post.ID))
	assert.Equal(t, 2, b.count("GET", "/api/admin/blogs/"+post.ID), "entity is fetched again after the update")
	assert.Equal(t, []string{"Post updated successfully"}, rec.successes)
	assert.Equal(t, admin.DetailViewing, detail.State())

	entity, ok := detail.Entity()
	require.True(t, ok)
	assert.Equal(t, "Hello again", entity.Title)
	assert.Equal(t, post.ImageURL, entity.ImageURL, "image is kept")
	assert.Equal(t, admin.PostDraftOf(entity), detail.Draft())
}

func TestDetail_SaveFailure(t *testing.T) {
	ioc, rec, b := setup(t)
	ctx := context.Background()
	post := createPost(t, b, "Hello", "World")

	detail := admin.NewPostDetail(ioc, post.ID)
	require.NoError(t, detail.Load(ctx))
	require.NoError(t, detail.BeginEdit())

	draft := admin.PostDraft{Title: "  ", Description: "World"}
	require.NoError(t, detail.SetDraft(draft))

	assert.Error(t, detail.Save(ctx))
	assert.Equal(t, []string{"Title and description are required"}, rec.errors)
	assert.Empty(t, rec.successes)
	assert.Equal(t, admin.DetailEditing, detail.State())
	assert.Equal(t, draft, detail.Draft(), "draft is kept")
	assert.False(t, detail.Busy())

	entity, _ := detail.Entity()
	assert.Equal(t, "Hello", entity.Title)
}

func TestDetail_EventInvalidDate(t *testing.T) {
	ioc, rec, b := setup(t)
	ctx := context.Background()
	event := createEvent(t, b, "Meetup", "Monthly", "2024-03-01")

	detail := admin.NewEventDetail(ioc, event.ID)
	require.NoError(t, detail.Load(ctx))
	assert.Equal(t, "2024-03-01", detail.Draft().Date)
	assert.True(t, detail.Draft().IsActive)

	require.NoError(t, detail.BeginEdit())
	draft := detail.Draft()
	draft.Date = "someday"
	require.NoError(t, detail.SetDraft(draft))

	err := detail.Save(ctx)
	assert.True(t, admin.IsValidation(err))
	assert.Equal(t, []string{"Invalid date"}, rec.errors)
	assert.Equal(t, 0, b.mutations(), "invalid draft is never sent")
	assert.Equal(t, admin.DetailEditing, detail.State())

	draft.Date = "2024-04-02"
	draft.IsActive = false
	require.NoError(t, detail.SetDraft(draft))
	require.NoError(t, detail.Save(ctx))

	entity, _ := detail.Entity()
	assert.Equal(t, "2024-04-02", entity.Date.String())
	assert.False(t, entity.Active())
}

func TestDetail_Delete(t *testing.T) {
	ioc, rec, b := setup(t)
	ctx := context.Background()
	post := createPost(t, b, "Hello", "World")
	path := "/api/admin/blogs/" + post.ID

	detail := admin.NewPostDetail(ioc, post.ID)
	require.NoError(t, detail.Load(ctx))

	assert.ErrorIs(t, detail.ConfirmDelete(ctx), admin.ErrInvalidState, "no pending confirmation")

	//
	// Cancelled
	require.NoError(t, detail.RequestDelete())
	assert.Equal(t, admin.DetailDeleting, detail.State())
	assert.True(t, detail.Confirm().Active())
	assert.Equal(t, "Are you sure you want to delete this post?", detail.Confirm().Message())
	assert.ErrorIs(t, detail.RequestDelete(), admin.ErrInvalidState)

	require.NoError(t, detail.CancelDelete())
	assert.Equal(t, admin.DetailViewing, detail.State())
	assert.False(t, detail.Confirm().Active())
	assert.Equal(t, 0, b.count("DELETE", path))

	//
	// Confirmed from edit mode
	require.NoError(t, detail.BeginEdit())
	require.NoError(t, detail.RequestDelete())
	require.NoError(t, detail.ConfirmDelete(ctx))

	assert.Equal(t, 1, b.count("DELETE", path))
	assert.Equal(t, admin.DetailDeleted, detail.State())
	assert.Equal(t, []string{"Post deleted successfully"}, rec.successes)
	assert.Equal(t, []admin.Route{admin.RoutePosts}, rec.routes)

	assert.ErrorIs(t, detail.ConfirmDelete(ctx), admin.ErrInvalidState, "resolved only once")
	assert.Equal(t, 1, b.count("DELETE", path))

	posts, err := b.client.Posts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestDetail_ReloadWhileDeleting(t *testing.T) {
	ioc, _, b := setup(t)
	ctx := context.Background()
	post := createPost(t, b, "Hello", "World")
	path := "/api/admin/blogs/" + post.ID

	detail := admin.NewPostDetail(ioc, post.ID)
	require.NoError(t, detail.Load(ctx))
	require.NoError(t, detail.RequestDelete())

	// A reload, as done at the end of a save, keeps the pending confirmation.
	require.NoError(t, detail.Load(ctx))
	assert.Equal(t, admin.DetailDeleting, detail.State())
	assert.True(t, detail.Confirm().Active())

	require.NoError(t, detail.CancelDelete())
	assert.Equal(t, admin.DetailViewing, detail.State())
	require.NoError(t, detail.RequestDelete(), "a new confirmation can be opened")

	// A failed reload drops it.
	require.NoError(t, b.client.DeletePost(ctx, post.ID))
	assert.Error(t, detail.Load(ctx))
	assert.Equal(t, admin.DetailError, detail.State())
	assert.False(t, detail.Confirm().Active())
	assert.ErrorIs(t, detail.ConfirmDelete(ctx), admin.ErrInvalidState)
	assert.Equal(t, 1, b.count("DELETE", path))
}

func TestDetail_DeleteFailure(t *testing.T) {
	ioc, rec, b := setup(t)
	ctx := context.Background()
	event := createEvent(t, b, "Meetup", "Monthly", "2024-03-01")

	detail := admin.NewEventDetail(ioc, event.ID)
	require.NoError(t, detail.Load(ctx))
	require.NoError(t, detail.RequestDelete())

	// Deleted behind our back.
	require.NoError(t, b.client.DeleteEvent(ctx, event.ID))

	assert.Error(t, detail.ConfirmDelete(ctx))
	assert.Equal(t, admin.DetailViewing, detail.State())
	assert.False(t, detail.Confirm().Active())
	assert.Equal(t, []string{"Event not found"}, rec.errors)
	assert.Empty(t, rec.routes)
	assert.Equal(t, admin.EventDraftOf(event), detail.Draft())
}
