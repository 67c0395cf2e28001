// Package assets embeds the stylesheet, scripts and images shared by every
// page and serves them content-addressed through hashfs.
package assets

import (
	"context"
	"embed"
	"io"

	"github.com/a-h/templ"
	"github.com/benbjohnson/hashfs"
)

//go:embed css/*.css js/*.js images/*.svg
var FS embed.FS

var HashFS = hashfs.NewFS(FS)

// Path returns the public URL of an embedded asset, including its content hash.
func Path(name string) string {
	return "/assets/" + HashFS.HashName(name)
}

func DefaultLogo() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<img src="`+templ.EscapeString(Path("images/logo.svg"))+`" alt="Box Office" class="h-8 w-8">`)
		return err
	})
}
