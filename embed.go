package blogfront

import "embed"

// EmbeddedAssets contains front-end assets shipped with the app:
// menu.js (mobile menu + search form behavior) and site.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
