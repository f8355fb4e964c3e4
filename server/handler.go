package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/auxgeo/sentinel-tiler/interface/object"
	"github.com/auxgeo/sentinel-tiler/sentinel"
	"github.com/auxgeo/sentinel-tiler/service/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler serves the scene metadata endpoints consumed by the tiling framework.
// Tile rendering itself (raster decoding, resampling, encoding) is the
// framework's job; this surface only resolves scenes to bounds, bands and urls.
type Handler struct {
	// Getter is the object storage the scene sidecars are fetched from
	Getter object.Getter
	// ReaderOptions are applied to every scene reader (hostname, prefix template, zooms)
	ReaderOptions []sentinel.Option
}

func (h *Handler) NewRouter() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/scenes/sentinel/{scene}/info", h.SceneInfoHandler).Methods("GET")
	r.HandleFunc("/scenes/sentinel/{scene}/bands", h.ListBandsHandler).Methods("GET")
	r.HandleFunc("/scenes/sentinel/{scene}/bands/{band}", h.GetBandHandler).Methods("GET")
	r.Use(requestIDMiddleware)
	return r
}

// requestIDMiddleware tags the request context logger with a unique id
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		ctx := log.With(req.Context(), zap.String("request_id", requestID))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// SceneInfo is the response of the scene info endpoint
type SceneInfo struct {
	Scene   string     `json:"scene"`
	Bounds  [4]float64 `json:"bounds"`
	CRS     string     `json:"crs"`
	Bands   []string   `json:"bands"`
	MinZoom int        `json:"minzoom"`
	MaxZoom int        `json:"maxzoom"`
}

// BandAsset is the response of the band endpoint
type BandAsset struct {
	Scene string `json:"scene"`
	Band  string `json:"band"`
	URL   string `json:"url"`
}

// newReader creates the per-request scene reader
func (h *Handler) newReader(req *http.Request) (*sentinel.Reader, error) {
	options := h.ReaderOptions
	if h.Getter != nil {
		options = append(append([]sentinel.Option(nil), options...), sentinel.WithGetter(h.Getter))
	}
	return sentinel.NewSceneReader(req.Context(), mux.Vars(req)["scene"], options...)
}

// writeReaderError maps construction failures to client-facing statuses.
// Every failure that can reach this point (unsupported level, template/metadata
// mismatch, malformed scene name) indicates a request that cannot be served.
func writeReaderError(w http.ResponseWriter, req *http.Request, err error) {
	log.Logger(req.Context()).Sugar().Debugf("newReader: %v", err)
	w.WriteHeader(400)
	fmt.Fprintf(w, "%v", err)
}

// SceneInfoHandler returns the bounds, crs, bands and zoom range of the scene
func (h *Handler) SceneInfoHandler(w http.ResponseWriter, req *http.Request) {
	reader, err := h.newReader(req)
	if err != nil {
		writeReaderError(w, req, err)
		return
	}
	json.NewEncoder(w).Encode(SceneInfo{
		Scene:   reader.SceneID,
		Bounds:  [4]float64(reader.Bounds),
		CRS:     reader.CRS,
		Bands:   reader.Bands(),
		MinZoom: reader.MinZoom,
		MaxZoom: reader.MaxZoom,
	})
}

// ListBandsHandler returns the available bands of the scene
func (h *Handler) ListBandsHandler(w http.ResponseWriter, req *http.Request) {
	reader, err := h.newReader(req)
	if err != nil {
		writeReaderError(w, req, err)
		return
	}
	json.NewEncoder(w).Encode(reader.Bands())
}

// GetBandHandler returns the url of one band of the scene
func (h *Handler) GetBandHandler(w http.ResponseWriter, req *http.Request) {
	reader, err := h.newReader(req)
	if err != nil {
		writeReaderError(w, req, err)
		return
	}
	band := mux.Vars(req)["band"]
	url, err := reader.BandURL(band)
	var invalid sentinel.ErrInvalidBandName
	if errors.As(err, &invalid) {
		w.WriteHeader(404)
		fmt.Fprintf(w, "%v", err)
		return
	}
	if err != nil {
		log.Logger(req.Context()).Sugar().Warnf("BandURL: %v", err)
		w.WriteHeader(500)
		fmt.Fprintf(w, "%v", err)
		return
	}
	json.NewEncoder(w).Encode(BandAsset{
		Scene: reader.SceneID,
		Band:  sentinel.NormalizeBand(band),
		URL:   url,
	})
}
