package tui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	assert.Equal(t, "No image selected", describe(libcms.EncodedImage{}, false))

	img := libcms.EncodedImage{
		Name:     "team.png",
		MIMEType: "image/png",
		Size:     3 << 19,
		Width:    640,
		Height:   480,
	}
	assert.Equal(t, "team.png (image/png, 640x480, 1.5 MiB)", describe(img, true))

	img = libcms.EncodedImage{Name: "logo.svg", MIMEType: "image/svg+xml", Size: 2048}
	assert.Equal(t, "logo.svg (image/svg+xml, 2.0 KiB)", describe(img, true))
}

func TestSize(t *testing.T) {
	assert.Equal(t, "0 B", size(0))
	assert.Equal(t, "1023 B", size(1023))
	assert.Equal(t, "1.0 KiB", size(1024))
	assert.Equal(t, "10.0 MiB", size(libcms.MaxImageSize))
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "pictures/cat.png"), expand(" ~/pictures/cat.png "))
	assert.Equal(t, "/tmp/cat.png", expand("/tmp/cat.png"))
	assert.Equal(t, "cat~.png", expand("cat~.png"))
}

func TestOneline(t *testing.T) {
	assert.Equal(t, "Hello world", oneline("Hello\n\n  world", 20))
	assert.Equal(t, "Héllo…", oneline("Héllo world", 6))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Post", capitalize("post"))
	assert.Equal(t, "", capitalize(""))
}

func TestLogFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "could not fetch posts",
		Data:    logrus.Fields{"id": "42", "error": "timeout"},
	}

	data, err := new(logFormatter).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2024-03-01T12:00:00Z] WARNING: could not fetch posts (error=timeout, id=42)\n", string(data))
}

func TestFileHook(t *testing.T) {
	var buf bytes.Buffer

	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	log.Hooks.Add(&fileHook{rotate: &buf, formatter: new(logFormatter)})

	log.WithError(errors.New("boom")).Error("could not load post")
	assert.Contains(t, buf.String(), "ERROR: could not load post (error=boom)")
}
