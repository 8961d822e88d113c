package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/kiesman99/planetize/internal/accessory"
	"github.com/kiesman99/planetize/internal/api"
	"github.com/kiesman99/planetize/internal/planetizer"
	"github.com/kiesman99/planetize/internal/scene"
	"github.com/kiesman99/planetize/internal/source"
	"github.com/kiesman99/planetize/pkg/texture"
)

// Request limits
const (
	DefaultMaxBody   = 32 << 20
	DefaultMaxHeight = 8192

	defaultSnapshotSide  = 1024
	defaultSnapshotPitch = 0.3
)

// Options bounds what a single request may ask for.
type Options struct {
	// MaxBody is the largest accepted upload in bytes.
	MaxBody int64
	// MaxSide is the side the square crop is shrunk to before synthesis.
	MaxSide int
	// MaxHeight caps the requested texture height.
	MaxHeight int
}

func (o Options) withDefaults() Options {
	if o.MaxBody <= 0 {
		o.MaxBody = DefaultMaxBody
	}
	if o.MaxSide == 0 {
		o.MaxSide = source.DefaultMaxSide
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = DefaultMaxHeight
	}
	return o
}

// Server implements the ServerInterface from the generated API
type Server struct {
	startTime time.Time
	version   string
	planet    *planetizer.Planetizer
	opts      Options
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates a new server instance
func NewServer(version string, p *planetizer.Planetizer, opts Options) *Server {
	return &Server{
		startTime: time.Now(),
		version:   version,
		planet:    p,
		opts:      opts.withDefaults(),
	}
}

// GetHealth implements the health check endpoint
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	uptime := int(time.Since(s.startTime).Seconds())
	busy := s.planet.Busy()

	response := api.HealthResponse{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Uptime:    &uptime,
		Version:   &s.version,
		Busy:      &busy,
	}
	s.writeJSON(w, http.StatusOK, response)
}

// CreateTexture synthesizes the equirectangular texture of the uploaded photo.
func (s *Server) CreateTexture(w http.ResponseWriter, r *http.Request, params api.CreateTextureParams) {
	requestID := requestIDOf(r)

	opts, ok := s.textureOptions(w, params.Height, params.Filter, &requestID)
	if !ok {
		return
	}
	crop, ok := s.readCrop(w, r, &requestID)
	if !ok {
		return
	}

	res, err := s.planet.Run(r.Context(), planetizer.Request{Crop: crop, Options: &opts})
	if err != nil {
		s.handleRunError(w, err, &requestID)
		return
	}

	w.Header().Set("X-Edge-Color", res.Edge.Hex())
	if res.Degenerate {
		w.Header().Set("X-Degenerate-Input", "true")
	}
	s.writePNG(w, res.TexturePNG, requestID)
}

// CreateBump derives the bump map of the uploaded photo's texture.
func (s *Server) CreateBump(w http.ResponseWriter, r *http.Request, params api.CreateBumpParams) {
	requestID := requestIDOf(r)

	opts, ok := s.textureOptions(w, params.Height, params.Filter, &requestID)
	if !ok {
		return
	}
	var contrast float64
	if params.Contrast != nil {
		contrast = float64(*params.Contrast)
		if contrast < 0 {
			s.writeErrorResponse(w, http.StatusBadRequest, api.VALIDATIONERROR,
				"contrast must not be negative", &requestID, map[string]interface{}{"parameter": "contrast"})
			return
		}
	}
	crop, ok := s.readCrop(w, r, &requestID)
	if !ok {
		return
	}

	res, err := s.planet.Run(r.Context(), planetizer.Request{
		Crop:         crop,
		Options:      &opts,
		Bump:         true,
		BumpContrast: contrast,
	})
	if err != nil {
		s.handleRunError(w, err, &requestID)
		return
	}

	w.Header().Set("X-Edge-Color", res.Edge.Hex())
	s.writePNG(w, res.BumpPNG, requestID)
}

// CreateSnapshot renders a still of the planet made from the uploaded photo.
func (s *Server) CreateSnapshot(w http.ResponseWriter, r *http.Request, params api.CreateSnapshotParams) {
	requestID := requestIDOf(r)

	width, height := defaultSnapshotSide, defaultSnapshotSide
	if params.Width != nil {
		width = *params.Width
	}
	if params.Height != nil {
		height = *params.Height
	}
	if width < 1 || height < 1 || width > scene.MaxSnapshotSide || height > scene.MaxSnapshotSide {
		s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDDIMENSION,
			fmt.Sprintf("snapshot sides must be in [1, %d]", scene.MaxSnapshotSide), &requestID,
			map[string]interface{}{"width": width, "height": height})
		return
	}

	frames := 0
	if params.Frames != nil {
		frames = *params.Frames
	}
	if frames < 0 || frames > scene.MaxFrames {
		s.writeErrorResponse(w, http.StatusBadRequest, api.VALIDATIONERROR,
			fmt.Sprintf("frames must be in [0, %d]", scene.MaxFrames), &requestID,
			map[string]interface{}{"parameter": "frames", "frames": frames})
		return
	}

	seed := time.Now().UnixNano()
	if params.Seed != nil {
		seed = *params.Seed
	}
	acc := accessory.Seeded(seed)
	if params.Accessory != nil && *params.Accessory != api.AccessoryChoiceAuto {
		var err error
		if acc, err = accessory.Parse(string(*params.Accessory)); err != nil {
			s.writeErrorResponse(w, http.StatusBadRequest, api.VALIDATIONERROR,
				err.Error(), &requestID, map[string]interface{}{"parameter": "accessory"})
			return
		}
	}

	crop, ok := s.readCrop(w, r, &requestID)
	if !ok {
		return
	}
	res, err := s.planet.Run(r.Context(), planetizer.Request{Crop: crop})
	if err != nil {
		s.handleRunError(w, err, &requestID)
		return
	}

	sc := scene.New()
	sc.SetTexture(res.Texture, nil)
	sc.Accessory = acc
	sc.Seed = seed
	sc.Orbit.Pitch = defaultSnapshotPitch
	if params.Yaw != nil {
		sc.Orbit.Yaw = float64(*params.Yaw)
	}
	if params.Pitch != nil {
		sc.Orbit.Pitch = float64(*params.Pitch)
	}
	if params.Zoom != nil {
		sc.Orbit.Zoom(float64(*params.Zoom))
	}
	spin := 0.0
	if params.Spin != nil {
		spin = float64(*params.Spin)
	}
	sc.Orbit.Spin(spin, 0, frames)

	img, err := sc.Snapshot(width, height)
	if err != nil {
		s.handleRunError(w, err, &requestID)
		return
	}
	data, err := encodePNG(img)
	if err != nil {
		s.handleRunError(w, err, &requestID)
		return
	}

	w.Header().Set("X-Accessory", acc.String())
	w.Header().Set("X-Seed", strconv.FormatInt(seed, 10))
	w.Header().Set("X-Yaw", strconv.FormatFloat(sc.Orbit.Yaw, 'f', 4, 64))
	s.writePNG(w, data, requestID)
}

// GetAccessory draws an accessory, from the seed when one is given.
func (s *Server) GetAccessory(w http.ResponseWriter, r *http.Request, params api.GetAccessoryParams) {
	seed := time.Now().UnixNano()
	if params.Seed != nil {
		seed = *params.Seed
	}
	s.writeJSON(w, http.StatusOK, api.AccessoryResponse{
		Accessory: api.AccessoryName(accessory.Seeded(seed).String()),
		Seed:      seed,
	})
}

// textureOptions merges the query parameters into the planetizer's options.
func (s *Server) textureOptions(w http.ResponseWriter, height *int, filter *api.Filter, requestID *string) (texture.Options, bool) {
	opts := s.planet.Options()
	if height != nil {
		if *height > s.opts.MaxHeight {
			s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDDIMENSION,
				fmt.Sprintf("height must be at most %d", s.opts.MaxHeight), requestID,
				map[string]interface{}{"height": *height})
			return opts, false
		}
		opts.Height = *height
	}
	if filter != nil {
		f, err := texture.ParseFilter(string(*filter))
		if err != nil {
			s.writeErrorResponse(w, http.StatusBadRequest, api.VALIDATIONERROR,
				err.Error(), requestID, map[string]interface{}{"parameter": "filter"})
			return opts, false
		}
		opts.Filter = f
	}

	if err := opts.Validate(); err != nil {
		var dimErr *texture.DimensionError
		if errors.As(err, &dimErr) {
			s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDDIMENSION,
				err.Error(), requestID, map[string]interface{}{"height": dimErr.Height})
			return opts, false
		}
		s.writeErrorResponse(w, http.StatusBadRequest, api.VALIDATIONERROR, err.Error(), requestID, nil)
		return opts, false
	}
	return opts, true
}

// readCrop reads the request body and returns its square crop.
func (s *Server) readCrop(w http.ResponseWriter, r *http.Request, requestID *string) (*image.RGBA, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeErrorResponse(w, http.StatusRequestEntityTooLarge, api.PAYLOADTOOLARGE,
				fmt.Sprintf("image exceeds %d bytes", tooLarge.Limit), requestID, nil)
			return nil, false
		}
		s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDIMAGE,
			"failed to read request body", requestID, nil)
		return nil, false
	}
	if len(body) == 0 {
		s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDIMAGE,
			"request body is empty", requestID, nil)
		return nil, false
	}

	crop, err := source.Acquire(bytes.NewReader(body), s.opts.MaxSide)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, source.ErrUnsupportedFormat) {
			status = http.StatusUnsupportedMediaType
		}
		s.writeErrorResponse(w, status, api.INVALIDIMAGE, err.Error(), requestID, nil)
		return nil, false
	}
	return crop, true
}

// handleRunError maps pipeline errors to responses
func (s *Server) handleRunError(w http.ResponseWriter, err error, requestID *string) {
	var dimErr *texture.DimensionError
	switch {
	case errors.Is(err, planetizer.ErrBusy):
		s.writeErrorResponse(w, http.StatusTooManyRequests, api.BUSY,
			"a planet is already being generated, try again shortly", requestID, nil)
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusGatewayTimeout, api.CANCELLED,
			"generation timed out", requestID, nil)
	case errors.Is(err, context.Canceled):
		s.writeErrorResponse(w, http.StatusServiceUnavailable, api.CANCELLED,
			"generation was cancelled", requestID, nil)
	case errors.As(err, &dimErr):
		s.writeErrorResponse(w, http.StatusBadRequest, api.INVALIDDIMENSION,
			err.Error(), requestID, map[string]interface{}{"width": dimErr.Width, "height": dimErr.Height})
	default:
		slog.Error("generation failed", "request_id", *requestID, "error", err)
		s.writeErrorResponse(w, http.StatusInternalServerError, api.INTERNALERROR,
			"Internal server error", requestID, nil)
	}
}

// ValidationError reports a malformed query parameter.
func (s *Server) ValidationError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestIDOf(r)
	var details map[string]interface{}
	var paramErr *api.InvalidParamFormatError
	if errors.As(err, &paramErr) {
		details = map[string]interface{}{"parameter": paramErr.ParamName}
	}
	s.writeErrorResponse(w, http.StatusBadRequest, api.VALIDATIONERROR, err.Error(), &requestID, details)
}

func (s *Server) writePNG(w http.ResponseWriter, data []byte, requestID string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Request-ID", requestID)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Warn("error writing response", "request_id", requestID, "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("error encoding response", "error", err)
	}
}

// writeErrorResponse writes a standard error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode api.ErrorResponseError, message string, requestID *string, details map[string]interface{}) {
	response := api.ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestId: requestID,
	}

	if details != nil {
		response.Details = &details
	}
	if requestID != nil {
		w.Header().Set("X-Request-ID", *requestID)
	}
	s.writeJSON(w, statusCode, response)
}

// RequestID keeps the caller's X-Request-ID or assigns a fresh UUID, and
// stores it where middleware.GetReqID finds it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDOf(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}
