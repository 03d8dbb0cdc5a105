package blogfront

import "testing"

func TestClampWidth(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", defaultImageWidth},
		{"abc", defaultImageWidth},
		{"-10", defaultImageWidth},
		{"0", defaultImageWidth},
		{"480", 480},
		{"1200", 1200},
		{"4000", maxImageWidth},
	}
	for _, tc := range cases {
		if got := clampWidth(tc.in); got != tc.want {
			t.Errorf("clampWidth(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestImageHostAllowed(t *testing.T) {
	a := New(SiteConfig{ImageHosts: []string{"images.microcms-assets.io"}})

	if !a.imageHostAllowed("images.microcms-assets.io") {
		t.Error("expected configured host to be allowed")
	}
	if a.imageHostAllowed("evil.example.com") {
		t.Error("expected unknown host to be rejected")
	}
	if a.imageHostAllowed("images.microcms-assets.io.evil.example.com") {
		t.Error("expected suffix-spoofed host to be rejected")
	}
}
