package assets

import (
	"embed"
	"io/fs"
)

// ClientTemplate is the default Lua client template. It is written to disk by
// `framerelay -write-template`; the server always renders from the configured
// path so operators can edit the copy in place.
//
//go:embed client.lua
var ClientTemplate []byte

//go:embed web
var webFS embed.FS

// WebUI is an embedded filesystem rooted at internal/assets/web.
var WebUI fs.FS

func init() {
	// Embed paths include the leading directory; strip it for serving at '/'.
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	WebUI = sub
}
