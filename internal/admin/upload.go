package admin

import (
	"sync"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/pkg/errors"
)

// An Upload is the pending image of a form. It holds at most one image.
type Upload struct {
	mu    sync.Mutex
	image *libcms.EncodedImage
}

// Select encodes the given file and makes it the pending image.
// On error the previous state is kept.
func (u *Upload) Select(filename string) error {
	img, err := libcms.EncodeFile(filename)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.image = &img
	return nil
}

// Remove discards the pending image.
func (u *Upload) Remove() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.image = nil
}

// Image returns the pending image if any.
func (u *Upload) Image() (libcms.EncodedImage, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.image == nil {
		return libcms.EncodedImage{}, false
	}
	return *u.image, true
}

// uploadMessage returns the notification for an image selection failure.
func uploadMessage(err error) string {
	if errors.Is(err, libcms.ErrImageTooLarge) {
		return "Image must be smaller than 10MB"
	}
	return "Could not read image"
}
