package assets

import (
	"context"
	"embed"
	"fmt"
	"image"
	_ "image/png" // PNG decoder for atlas pages
	"io/fs"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Spec describes one atlas to load: its page image and frame manifest.
type Spec struct {
	Key       string
	ImagePath string
	JSONPath  string
}

// Atlas keys used by the game.
const (
	AtlasFish    = "fish"
	AtlasTerrain = "terrain"
)

// DefaultSpecs lists the atlases the game loads at startup.
func DefaultSpecs() []Spec {
	return []Spec{
		{Key: AtlasFish, ImagePath: "fish_characters.png", JSONPath: "fish_characters.json"},
		{Key: AtlasTerrain, ImagePath: "terrain_flora.png", JSONPath: "terrain_flora.json"},
	}
}

//go:embed defaults/*
var defaultFS embed.FS

// DefaultFS returns the embedded placeholder assets.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return sub
}

// FS returns the asset filesystem for dir, or the embedded assets when
// dir is empty.
func FS(dir string) fs.FS {
	if dir == "" {
		return DefaultFS()
	}
	return os.DirFS(dir)
}

// Loader loads atlases from a filesystem and keeps them by key.
// It is safe for concurrent use so LoadAll can fetch entries in parallel.
type Loader struct {
	fsys fs.FS

	mu      sync.RWMutex
	atlases map[string]*Atlas
}

// NewLoader creates a loader reading from fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys:    fsys,
		atlases: make(map[string]*Atlas),
	}
}

func (l *Loader) decodeImage(path string) (image.Image, error) {
	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to load image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadAtlas loads the manifest at jsonPath and the image at imagePath and
// stores the atlas under key.
func (l *Loader) LoadAtlas(key, imagePath, jsonPath string) (*Atlas, error) {
	data, err := fs.ReadFile(l.fsys, jsonPath)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to load atlas %s: %w", key, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to load atlas %s: %w", key, err)
	}

	img, err := l.decodeImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to load atlas %s: %w", key, err)
	}

	for name, f := range m.Frames {
		if !f.Frame.Bounds().In(img.Bounds()) {
			return nil, fmt.Errorf("assets: atlas %s: frame %q lies outside the %v image", key, name, img.Bounds().Size())
		}
	}

	atlas := &Atlas{Key: key, Image: img, Frames: m.Frames}
	l.mu.Lock()
	l.atlases[key] = atlas
	l.mu.Unlock()
	return atlas, nil
}

// GetAtlas returns the atlas loaded under key.
func (l *Loader) GetAtlas(key string) (*Atlas, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.atlases[key]
	return a, ok
}

// LoadAll loads every spec concurrently and returns the first failure.
// Nothing should read from the loader until LoadAll returns.
func (l *Loader) LoadAll(ctx context.Context, specs []Spec) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range specs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := l.LoadAtlas(s.Key, s.ImagePath, s.JSONPath)
			return err
		})
	}
	return g.Wait()
}
