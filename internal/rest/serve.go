// Package rest exposes the filtering operations over HTTP for scripted and
// batch use.
package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/image-filter-mcp/internal/imaging"
)

// NewRouter builds the HTTP routes. A nil loader uses imaging.NewLoader().
//
//	GET  /api/v1/ping
//	GET  /api/v1/operations
//	POST /api/v1/filter
func NewRouter(loader *imaging.Loader) *gin.Engine {
	if loader == nil {
		loader = imaging.NewLoader()
	}
	h := &handler{loader: loader}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ping", getPing)
			v1.GET("/operations", getOperations)
			v1.POST("/filter", h.postFilter)
		}
	}
	return r
}

// Serve listens on addr until the server fails.
func Serve(addr string, loader *imaging.Loader) error {
	return NewRouter(loader).Run(addr)
}

type handler struct {
	loader *imaging.Loader
}

func getPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

func getOperations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"operations": imaging.Operations(),
	})
}

type postFilterArgs struct {
	Input      string `json:"input" binding:"required"`
	Output     string `json:"output" binding:"required"`
	Op         string `json:"op" binding:"required"`
	KernelSize *int   `json:"kernelSize"`
	Threshold  int    `json:"threshold"`
}

type postFilterResult struct {
	Output   string `json:"output"`
	Op       string `json:"op"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Channels int    `json:"channels"`
}

func (h *handler) postFilter(c *gin.Context) {
	var args postFilterArgs
	if err := c.ShouldBindJSON(&args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kernelSize := 3
	if args.KernelSize != nil {
		kernelSize = *args.KernelSize
	}

	img, err := h.loader.Load(args.Input)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	out, err := imaging.Apply(img, args.Op, kernelSize, args.Threshold)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if err := h.loader.Save(out, args.Output); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, postFilterResult{
		Output:   args.Output,
		Op:       args.Op,
		Width:    out.Width(),
		Height:   out.Height(),
		Channels: out.Channels(),
	})
}

// statusFor maps engine error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, imaging.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, imaging.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, imaging.ErrEncode):
		// unsupported output extension
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
