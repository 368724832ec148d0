package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/image-filter-mcp/internal/config"
	"github.com/ironsheep/image-filter-mcp/internal/imaging"
	"github.com/ironsheep/image-filter-mcp/internal/rest"
	"github.com/ironsheep/image-filter-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	mode := ""
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	// Handle --version and -v flags
	switch mode {
	case "--version", "-v", "version":
		fmt.Printf("image-filter-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printHelp(os.Stdout)
		return
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	loader, err := cfg.Loader()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug {
		log.Printf("Image Filter MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	switch mode {
	case "apply":
		if err := runApply(loader, os.Args[2:]); err != nil {
			log.Fatalf("apply: %v", err)
		}
	case "--http":
		addr := cfg.HTTPAddr
		if len(os.Args) > 2 {
			addr = os.Args[2]
		}
		if cfg.Debug {
			log.Printf("Listening on %s", addr)
		}
		if err := rest.Serve(addr, loader); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	default:
		server.Version = Version
		srv := server.New(loader)
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}

// runApply loads one file, runs one operation and saves the result.
func runApply(loader *imaging.Loader, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	op := fs.String("op", "", "operation: mean, gaussian, median, sobel, prewitt or laplacian")
	in := fs.String("in", "", "input image or CSV `file`")
	out := fs.String("out", "", "output `file`; format follows the extension, none means JPEG")
	size := fs.Int("size", 3, "kernel size for smoothing filters; even values are increased by one")
	threshold := fs.Int("threshold", 0, "suppress edge magnitudes below this value, 0=keep all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *op == "" || *in == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("-op, -in and -out are required")
	}

	img, err := loader.Load(*in)
	if err != nil {
		return err
	}
	result, err := imaging.Apply(img, *op, *size, *threshold)
	if err != nil {
		return err
	}
	return loader.Save(result, *out)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "image-filter-mcp - spatial image filtering over MCP, HTTP or the command line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  image-filter-mcp                 Serve MCP over stdin/stdout")
	fmt.Fprintln(w, "  image-filter-mcp --http [ADDR]   Serve the HTTP API")
	fmt.Fprintln(w, "  image-filter-mcp apply -op OP -in FILE -out FILE [-size N] [-threshold T]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  IMAGE_FILTER_LOG_LEVEL=debug            Enable debug logging")
	fmt.Fprintln(w, "  IMAGE_FILTER_CSV_FALLBACK=placeholder   Unreadable CSV: placeholder (default) or error")
	fmt.Fprintln(w, "  IMAGE_FILTER_PLACEHOLDER_COLOR=#000000  Fill color of the CSV placeholder")
	fmt.Fprintln(w, "  IMAGE_FILTER_PLACEHOLDER_SIZE=300       Side of the CSV placeholder")
	fmt.Fprintln(w, "  IMAGE_FILTER_JPEG_QUALITY=95            JPEG output quality")
	fmt.Fprintln(w, "  IMAGE_FILTER_HTTP_ADDR=:8080            Default address for --http")
}
