// Package static embeds the assets served under /static, among them the
// placeholder shown for products without an uploaded image.
package static

import (
	"embed"
	"io/fs"
)

// PathPrefix is the URL prefix the assets are served under.
const PathPrefix = "/static"

//go:embed assets
var assets embed.FS

// FS returns the assets rooted so that "img/placeholder.png" is served as
// PathPrefix + "/img/placeholder.png".
func FS() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}

	return sub
}
