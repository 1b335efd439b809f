package webui

import "embed"

// PublicFS holds the embedded static files served under /static, most
// importantly the browser-side pusher script that the host loads through
// its extra_module_url mechanism.
//
//go:embed public
var PublicFS embed.FS
