package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcla/gowid"
	"github.com/gcla/gowid/widgets/button"
	"github.com/gcla/gowid/widgets/columns"
	"github.com/gcla/gowid/widgets/edit"
	"github.com/gcla/gowid/widgets/pile"
	"github.com/gcla/gowid/widgets/styled"
	"github.com/gcla/gowid/widgets/text"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
)

// action returns a focusable button running fn in the event loop when clicked.
func action(label string, fn func(app gowid.IApp)) gowid.IWidget {
	b := button.New(text.New(label))
	b.OnClick(gowid.WidgetCallback{Name: "cb", WidgetChangedFunction: func(app gowid.IApp, _ gowid.IWidget) {
		fn(app)
	}})

	return styled.NewExt(b, gowid.MakePaletteRef("normal"), gowid.MakePaletteRef("focused"))
}

// toolbar lays the given widgets out on one line.
func toolbar(widgets ...gowid.IWidget) gowid.IWidget {
	cws := make([]gowid.IContainerWidget, 0, len(widgets))
	for _, w := range widgets {
		cws = append(cws, &gowid.ContainerWidget{IWidget: w, D: gowid.RenderFixed{}})
	}
	return columns.New(cws)
}

// stack lays the given widgets out vertically.
// A widget wrapped by fill takes the remaining height.
func stack(widgets ...gowid.IWidget) gowid.IWidget {
	cws := make([]gowid.IContainerWidget, 0, len(widgets))
	for _, w := range widgets {
		if f, ok := w.(filler); ok {
			cws = append(cws, &gowid.ContainerWidget{IWidget: f.IWidget, D: gowid.RenderWithWeight{W: 1}})
			continue
		}
		cws = append(cws, &gowid.ContainerWidget{IWidget: w, D: gowid.RenderFlow{}})
	}
	return pile.New(cws)
}

type filler struct {
	gowid.IWidget
}

func fill(w gowid.IWidget) gowid.IWidget {
	return filler{IWidget: w}
}

func input(caption, value string) *edit.Widget {
	return edit.New(edit.Options{Caption: caption, Text: value})
}

func title(s string) gowid.IWidget {
	return styled.New(text.New(s), gowid.MakePaletteRef("title"))
}

// describe returns a one-line description of the encoded image.
func describe(img libcms.EncodedImage, ok bool) string {
	if !ok {
		return "No image selected"
	}

	dimensions := ""
	if img.Width > 0 {
		dimensions = fmt.Sprintf(", %dx%d", img.Width, img.Height)
	}
	return fmt.Sprintf("%s (%s%s, %s)", img.Name, img.MIMEType, dimensions, size(img.Size))
}

func size(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

// expand replaces a leading ~ by the home directory.
func expand(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
