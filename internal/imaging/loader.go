package imaging

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CSVFallback selects what Loader.Load does when a CSV file cannot be parsed.
type CSVFallback int

const (
	// CSVFallbackPlaceholder logs the parse failure and returns the loader's
	// placeholder image instead of an error.
	CSVFallbackPlaceholder CSVFallback = iota

	// CSVFallbackError returns the parse failure to the caller.
	CSVFallbackError
)

// DefaultPlaceholderSize is the side of the default placeholder image.
const DefaultPlaceholderSize = 300

// Loader reads and writes images on disk, dispatching on the file extension:
// ".csv" files go through DecodeCSV/EncodeCSV, everything else through the
// raster codecs.
//
// A Loader holds only read-only settings and may be shared between goroutines.
type Loader struct {
	// CSVFallback is the recovery policy for unparseable CSV files.
	CSVFallback CSVFallback

	// Placeholder is returned for unparseable CSV files under
	// CSVFallbackPlaceholder. A nil Placeholder means a black 300x300 RGB image.
	Placeholder *Image

	// JPEGQuality applies when saving JPEG files; 0 means DefaultJPEGQuality.
	JPEGQuality int
}

// NewLoader returns a Loader with the placeholder recovery policy.
func NewLoader() *Loader {
	return &Loader{CSVFallback: CSVFallbackPlaceholder}
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// Load reads the image at path.
//
// # Errors
//
//   - Returns error if the file cannot be read
//   - Returns ErrDecode if a raster file is not a supported format
//   - Returns ErrDecode for malformed CSV only under CSVFallbackError
func (l *Loader) Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if !isCSV(path) {
		img, err := DecodeImage(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		return img, nil
	}

	img, err := DecodeCSV(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}
	if l.CSVFallback == CSVFallbackError {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Printf("CSV %s unreadable, using placeholder: %v", path, err)
	return l.placeholder(), nil
}

func (l *Loader) placeholder() *Image {
	if l.Placeholder != nil {
		return l.Placeholder
	}
	return newImage(DefaultPlaceholderSize, DefaultPlaceholderSize, 3)
}

// Save encodes img according to the extension of path and writes it.
// A path without extension is written as JPEG.
//
// The whole file is encoded in memory first; nothing is written when
// encoding fails. The bytes go to a temporary file in the destination
// directory that is then renamed over path.
func (l *Loader) Save(img *Image, path string) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidParameter)
	}
	var buf bytes.Buffer
	if isCSV(path) {
		if err := EncodeCSV(&buf, img); err != nil {
			return err
		}
	} else {
		format, err := FormatFromExtension(filepath.Ext(path))
		if err != nil {
			return err
		}
		if err := EncodeImage(&buf, img, format, l.JPEGQuality); err != nil {
			return err
		}
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".image-filter-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

var defaultLoader = NewLoader()

// LoadImage reads an image with the default Loader.
func LoadImage(path string) (*Image, error) {
	return defaultLoader.Load(path)
}

// SaveImage writes an image with the default Loader.
func SaveImage(img *Image, path string) error {
	return defaultLoader.Save(img, path)
}

// ImageCache provides thread-safe caching of loaded images to avoid
// redundant disk reads and decodes.
//
// Cached images are immutable, so the same *Image may be handed to any number
// of concurrent operators. Entries stay until Evict or Clear is called.
//
//	cache := imaging.NewImageCache(imaging.NewLoader())
//	img, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache.Evict("/path/to/image.png") // Optional: free memory
type ImageCache struct {
	loader *Loader
	mu     sync.RWMutex
	images map[string]*Image
}

// NewImageCache creates an empty cache backed by loader. A nil loader uses
// NewLoader().
func NewImageCache(loader *Loader) *ImageCache {
	if loader == nil {
		loader = NewLoader()
	}
	return &ImageCache{
		loader: loader,
		images: make(map[string]*Image),
	}
}

// Loader returns the loader used for cache misses.
func (c *ImageCache) Loader() *Loader {
	return c.loader
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// The image is cached using the exact path string provided. Different paths to the
// same file (e.g., relative vs absolute) will result in separate cache entries.
func (c *ImageCache) Load(path string) (*Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := c.loader.Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Channels is 3 for everything the loader produces.
	Channels int `json:"channels"`

	// Format is "csv", "png", "jpeg", "gif", "bmp", "tiff" or "unknown",
	// based on the file extension.
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		format = "csv"
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	case ".tif", ".tiff":
		format = "tiff"
	}

	return &ImageInfo{
		Width:         img.Width(),
		Height:        img.Height(),
		Channels:      img.Channels(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
