package admin

import (
	"context"
	"strings"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/pkg/errors"
)

// createForm contains the behavior shared by all the create forms.
type createForm struct {
	ioc    IOC
	guard  Guard
	upload Upload
}

// creation describes one submission of a create form.
type creation struct {
	validate func() error
	create   func(ctx context.Context, image string) error
	clear    func()
	success  string
	failure  string
	route    Route
}

// SelectImage encodes the given file and attaches it to the form.
// A rejected file is notified and leaves the form unchanged.
func (f *createForm) SelectImage(filename string) error {
	if err := f.upload.Select(filename); err != nil {
		f.ioc.notifier().Error(uploadMessage(err))
		return err
	}
	return nil
}

// RemoveImage detaches the image from the form.
func (f *createForm) RemoveImage() {
	f.upload.Remove()
}

// Image returns the attached image if any.
func (f *createForm) Image() (libcms.EncodedImage, bool) {
	return f.upload.Image()
}

// Submitting returns true while the form is being submitted.
func (f *createForm) Submitting() bool {
	return f.guard.Busy()
}

func (f *createForm) submit(ctx context.Context, c creation) error {
	if !f.guard.Acquire() {
		return ErrBusy
	}
	defer f.guard.Release()

	if err := c.validate(); err != nil {
		f.ioc.notifier().Error(err.Error())
		return err
	}

	// The image is already encoded at selection time so the request only carries resolved values.
	var data string
	if img, ok := f.upload.Image(); ok {
		data = img.Data
	}

	if err := c.create(ctx, data); err != nil {
		f.ioc.logger().WithError(err).Warn(c.failure)
		f.ioc.notifier().Error(libcms.Message(err, c.failure))
		return errors.Wrap(err, "could not submit form")
	}

	c.clear()
	f.upload.Remove()
	f.ioc.notifier().Success(c.success)
	f.ioc.navigate(c.route)
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
