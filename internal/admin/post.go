package admin

import (
	"context"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
)

// A PostForm creates a blog post. Title, description and image are required.
type PostForm struct {
	createForm
	Title       string
	Description string
}

// NewPostForm returns a new PostForm.
func NewPostForm(ioc IOC) *PostForm {
	return &PostForm{createForm: createForm{ioc: ioc}}
}

// Submit validates the form and creates the post.
func (f *PostForm) Submit(ctx context.Context) error {
	return f.submit(ctx, creation{
		validate: func() error {
			_, ok := f.Image()
			if blank(f.Title) || blank(f.Description) || !ok {
				return invalid("All fields are required")
			}
			return nil
		},
		create: func(ctx context.Context, image string) error {
			return f.ioc.Client.CreatePost(ctx, libcms.PostParams{
				Title:       f.Title,
				Description: f.Description,
				Image:       image,
			})
		},
		clear: func() {
			f.Title = ""
			f.Description = ""
		},
		success: "Post added successfully",
		failure: "Failed to add post",
		route:   RoutePosts,
	})
}

// A PostDraft holds the editable fields of a Post.
type PostDraft struct {
	Title       string
	Description string
}

// PostDraftOf returns the draft initialized from the given post.
func PostDraftOf(p libcms.Post) PostDraft {
	return PostDraft{
		Title:       p.Title,
		Description: p.Description,
	}
}

// NewPostList returns the list of blog posts, searchable on title and description.
func NewPostList(ioc IOC) *List[libcms.Post] {
	return NewList(ioc, "posts", ioc.Client.Posts, "Title", "Description")
}

// NewPostDetail returns the detail/edit view of the given blog post.
func NewPostDetail(ioc IOC, id string) *Detail[libcms.Post, PostDraft] {
	return newDetail(ioc, id, detailConfig[libcms.Post, PostDraft]{
		kind:  "post",
		route: RoutePosts,
		fetch: ioc.Client.Post,
		update: func(ctx context.Context, id string, d PostDraft) error {
			return ioc.Client.UpdatePost(ctx, id, libcms.PostParams{
				Title:       d.Title,
				Description: d.Description,
			})
		},
		remove: ioc.Client.DeletePost,
		draft:  PostDraftOf,
	})
}
