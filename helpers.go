package blogfront

import (
	"net/url"
	"path"
)

// BuildURL joins path segments onto a base URL.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}
