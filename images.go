package blogfront

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/iu-gakuyukai/blogfront/internal/logger"
)

const (
	defaultImageWidth = 800
	maxImageWidth     = 1200
	jpegQuality       = 80
	maxImageBytes     = 10 << 20 // 10MB upstream response cap
	imageLimitWindow  = time.Minute
)

var imageFetchClient = &http.Client{Timeout: 10 * time.Second}

// handleImage proxies a CMS-hosted image, downscaled to the requested
// width and re-encoded as JPEG. Only hosts in Config.ImageHosts are
// fetched; anything else is rejected.
func (a *App) handleImage(c echo.Context) error {
	if !a.imgLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many requests")
	}

	src := c.QueryParam("url")
	if src == "" {
		return c.String(http.StatusBadRequest, "url parameter required")
	}
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return c.String(http.StatusBadRequest, "invalid url")
	}
	if !a.imageHostAllowed(u.Hostname()) {
		return c.String(http.StatusForbidden, "host not allowed")
	}

	width := clampWidth(c.QueryParam("w"))

	data, err := fetchAndResize(c.Request().Context(), u.String(), width)
	if err != nil {
		logger.Log.Warnf("image proxy: %v", err)
		return c.String(http.StatusBadGateway, "image unavailable")
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

func (a *App) imageHostAllowed(host string) bool {
	for _, h := range a.Config.ImageHosts {
		if host == h {
			return true
		}
	}
	return false
}

// clampWidth parses the w parameter, falling back to the default and
// capping at maxImageWidth.
func clampWidth(s string) int {
	w, err := strconv.Atoi(s)
	if err != nil || w <= 0 {
		return defaultImageWidth
	}
	if w > maxImageWidth {
		return maxImageWidth
	}
	return w
}

func fetchAndResize(ctx context.Context, src string, width int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := imageFetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status=%d", src, resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > width {
		newH := h * width / w
		dst := image.NewRGBA(image.Rect(0, 0, width, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
