package geometry

import (
	"fmt"
	"sort"
	"strings"
)

// Resolution is an image size in pixels
type Resolution struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Named display resolutions
var (
	VGA  = Resolution{640, 480}
	SVGA = Resolution{800, 600}
	XGA  = Resolution{1024, 768}
	SXGA = Resolution{1280, 1024}
	FHD  = Resolution{1920, 1080}
	QHD  = Resolution{2560, 1440}
	UHD  = Resolution{3840, 2160}

	// DefaultResolution is used when a camera names no resolution
	DefaultResolution = Resolution{100, 50}
)

var namedResolutions = map[string]Resolution{
	"VGA":  VGA,
	"SVGA": SVGA,
	"XGA":  XGA,
	"SXGA": SXGA,
	"FHD":  FHD,
	"QHD":  QHD,
	"UHD":  UHD,
}

// ParseResolution looks up a named resolution, ignoring case
func ParseResolution(name string) (Resolution, error) {
	r, ok := namedResolutions[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Resolution{}, fmt.Errorf("unknown resolution %q (expected one of %s)", name, strings.Join(ResolutionNames(), ", "))
	}
	return r, nil
}

// ResolutionNames lists the named resolutions from smallest to largest
func ResolutionNames() []string {
	names := make([]string, 0, len(namedResolutions))
	for name := range namedResolutions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := namedResolutions[names[i]], namedResolutions[names[j]]
		return a.Width*a.Height < b.Width*b.Height
	})
	return names
}

// Draft returns the resolution reduced by a factor of four on each axis
func (r Resolution) Draft() Resolution {
	return Resolution{Width: max(1, r.Width/4), Height: max(1, r.Height/4)}
}

// Validate rejects empty resolutions
func (r Resolution) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("resolution %dx%d must be positive", r.Width, r.Height)
	}
	return nil
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}
