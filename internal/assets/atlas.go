// Package assets loads images and sprite atlases before the game starts.
// An atlas is an image plus a manifest of named frames in the
// TexturePacker hash format:
//
//	{"frames": {"fish_2": {"frame": {"x": 128, "y": 0, "w": 64, "h": 64}}}}
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
)

var (
	// ErrAtlasNotFound is returned when no atlas is loaded under a key.
	ErrAtlasNotFound = errors.New("assets: atlas not found")
	// ErrFrameNotFound is returned when an atlas has no frame with a name.
	ErrFrameNotFound = errors.New("assets: frame not found")
)

// Rect is a pixel rectangle inside an atlas image.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Bounds converts the rect to an image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Frame is one manifest entry. Only the source rectangle is used.
type Frame struct {
	Frame Rect `json:"frame"`
}

// Manifest is the parsed atlas JSON.
type Manifest struct {
	Frames map[string]Frame `json:"frames"`
}

// ParseManifest decodes atlas JSON.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("assets: cannot parse atlas manifest: %w", err)
	}
	if m.Frames == nil {
		return Manifest{}, errors.New("assets: atlas manifest has no \"frames\" key")
	}
	for name, f := range m.Frames {
		if f.Frame.W <= 0 || f.Frame.H <= 0 {
			return Manifest{}, fmt.Errorf("assets: frame %q has empty size", name)
		}
	}
	return m, nil
}

// Atlas is a loaded image with its named frames.
type Atlas struct {
	Key    string
	Image  image.Image
	Frames map[string]Frame
}

// Frame resolves name through the legacy frame table and returns its
// source rectangle.
func (a *Atlas) Frame(name string) (Rect, error) {
	mapped := MapFrameName(name)
	f, ok := a.Frames[mapped]
	if !ok {
		return Rect{}, fmt.Errorf("%w: %q (original: %q) in atlas %q", ErrFrameNotFound, mapped, name, a.Key)
	}
	return f.Frame, nil
}

// HasFrame reports whether name resolves to a frame.
func (a *Atlas) HasFrame(name string) bool {
	_, ok := a.Frames[MapFrameName(name)]
	return ok
}
