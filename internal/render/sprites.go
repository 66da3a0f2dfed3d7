package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-island/internal/assets"
	"github.com/vovakirdan/pixel-island/internal/core"
)

// AtlasSource looks up loaded atlases. *assets.Loader implements it.
type AtlasSource interface {
	GetAtlas(key string) (*assets.Atlas, bool)
}

// Sprites draws named frames from atlases. Missing atlases and frames are
// logged once per key and the draw is skipped.
type Sprites struct {
	src    AtlasSource
	logger *log.Logger

	mu     sync.Mutex
	warned map[string]bool
}

// NewSprites creates a sprite drawer over src.
func NewSprites(src AtlasSource, logger *log.Logger) *Sprites {
	if logger == nil {
		logger = log.Default()
	}
	return &Sprites{
		src:    src,
		logger: logger,
		warned: make(map[string]bool),
	}
}

// Resolve finds the source image and rectangle for a frame.
func (s *Sprites) Resolve(atlasKey, frame string) (Image, error) {
	atlas, ok := s.src.GetAtlas(atlasKey)
	if !ok {
		return Image{}, fmt.Errorf("%w: %q", assets.ErrAtlasNotFound, atlasKey)
	}
	r, err := atlas.Frame(frame)
	if err != nil {
		return Image{}, err
	}
	return Image{
		Atlas:  atlasKey,
		Frame:  assets.MapFrameName(frame),
		Source: atlas.Image,
		Src:    r.Bounds(),
	}, nil
}

// Draw paints frame from atlasKey with its top-left corner at (x, y),
// scaled by scale.
func (s *Sprites) Draw(surf Surface, atlasKey, frame string, x, y, scale float64) {
	img, err := s.Resolve(atlasKey, frame)
	if err != nil {
		s.warnOnce(atlasKey+"/"+frame, err)
		return
	}
	w := float64(img.Src.Dx()) * scale
	h := float64(img.Src.Dy()) * scale
	surf.DrawImage(img, core.NewRect(x, y, w, h))
}

// FrameSize returns the unscaled size of a frame.
func (s *Sprites) FrameSize(atlasKey, frame string) (w, h float64, ok bool) {
	img, err := s.Resolve(atlasKey, frame)
	if err != nil {
		return 0, 0, false
	}
	return float64(img.Src.Dx()), float64(img.Src.Dy()), true
}

// HasFrame reports whether frame resolves in atlasKey.
func (s *Sprites) HasFrame(atlasKey, frame string) bool {
	atlas, ok := s.src.GetAtlas(atlasKey)
	return ok && atlas.HasFrame(frame)
}

func (s *Sprites) warnOnce(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warned[key] {
		return
	}
	s.warned[key] = true
	s.logger.Warn("sprite not drawn", "error", err)
}
