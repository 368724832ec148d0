// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-filter-mcp/internal/imaging"
)

// Environment variable names.
const (
	EnvLogLevel         = "IMAGE_FILTER_LOG_LEVEL"
	EnvCSVFallback      = "IMAGE_FILTER_CSV_FALLBACK"
	EnvPlaceholderColor = "IMAGE_FILTER_PLACEHOLDER_COLOR"
	EnvPlaceholderSize  = "IMAGE_FILTER_PLACEHOLDER_SIZE"
	EnvJPEGQuality      = "IMAGE_FILTER_JPEG_QUALITY"
	EnvHTTPAddr         = "IMAGE_FILTER_HTTP_ADDR"
)

// Config holds the settings shared by the MCP server, the HTTP server and the
// one-shot CLI.
type Config struct {
	Debug            bool
	CSVFallback      imaging.CSVFallback
	PlaceholderColor string
	PlaceholderSize  int
	JPEGQuality      int
	HTTPAddr         string
}

// Default returns the settings used when no environment variable is set.
func Default() Config {
	return Config{
		CSVFallback:      imaging.CSVFallbackPlaceholder,
		PlaceholderColor: "#000000",
		PlaceholderSize:  imaging.DefaultPlaceholderSize,
		JPEGQuality:      imaging.DefaultJPEGQuality,
		HTTPAddr:         ":8080",
	}
}

// FromEnv overlays the environment on Default.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Debug = v == "debug"
	}

	if v, ok := lookup(EnvCSVFallback); ok {
		switch v {
		case "placeholder", "":
			cfg.CSVFallback = imaging.CSVFallbackPlaceholder
		case "error":
			cfg.CSVFallback = imaging.CSVFallbackError
		default:
			return cfg, fmt.Errorf("%s: unknown policy %q, want placeholder or error", EnvCSVFallback, v)
		}
	}

	if v, ok := lookup(EnvPlaceholderColor); ok && v != "" {
		if _, err := colorful.Hex(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvPlaceholderColor, err)
		}
		cfg.PlaceholderColor = v
	}

	if v, ok := lookup(EnvPlaceholderSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("%s: %q is not a positive integer", EnvPlaceholderSize, v)
		}
		cfg.PlaceholderSize = n
	}

	if v, ok := lookup(EnvJPEGQuality); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return cfg, fmt.Errorf("%s: %q is not an integer in [1,100]", EnvJPEGQuality, v)
		}
		cfg.JPEGQuality = n
	}

	if v, ok := lookup(EnvHTTPAddr); ok && v != "" {
		cfg.HTTPAddr = v
	}

	return cfg, nil
}

// Loader builds the imaging.Loader these settings describe.
func (c Config) Loader() (*imaging.Loader, error) {
	col, err := colorful.Hex(c.PlaceholderColor)
	if err != nil {
		return nil, fmt.Errorf("placeholder color: %w", err)
	}
	r, g, b := col.RGB255()
	size := c.PlaceholderSize
	pix := make([]uint8, 0, size*size*3)
	for i := 0; i < size*size; i++ {
		pix = append(pix, r, g, b)
	}
	placeholder, err := imaging.FromPixels(size, size, 3, pix)
	if err != nil {
		return nil, fmt.Errorf("placeholder: %w", err)
	}
	return &imaging.Loader{
		CSVFallback: c.CSVFallback,
		Placeholder: placeholder,
		JPEGQuality: c.JPEGQuality,
	}, nil
}
