package sentinel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/auxgeo/sentinel-tiler/common"
	"github.com/auxgeo/sentinel-tiler/interface/object"
	"github.com/auxgeo/sentinel-tiler/service"
	"github.com/auxgeo/sentinel-tiler/service/log"
	"github.com/go-spatial/geom"
	"go.uber.org/zap"
)

const (
	// Scheme of the band urls
	Scheme = "s3"
	// DefaultHostname is the bucket of the AWS Public Dataset Sentinel-2 COGs
	DefaultHostname = "sentinel-cogs"
	// DefaultPrefixTemplate locates a scene in the bucket from its metadata fields
	DefaultPrefixTemplate = "sentinel-s2-{_levelLow}-cogs/{_utm}/{lat}/{sq}/{acquisitionYear}/{_month}/{scene}"
	// SidecarName is the per-scene metadata document fetched at construction
	SidecarName = "tileInfo.json"

	DefaultMinZoom = 8
	DefaultMaxZoom = 14

	// DefaultCRS applies until the sidecar declares the native CRS of the scene
	DefaultCRS = "EPSG:4326"
)

// wholeEarth is the footprint of a scene whose sidecar is unavailable
var wholeEarth = geom.Extent{-180, -90, 180, 90}

// Reader resolves a Sentinel-2 scene identifier to its remote band assets.
// It is created once per request, performs its single sidecar fetch during
// construction and must not be mutated afterwards.
//
// Example:
//
//	r, err := sentinel.NewSceneReader(ctx, "S2A_29RKH_20200219_0_L2A")
//	...
//	url, err := r.BandURL("B04")
type Reader struct {
	SceneID  string
	Metadata common.SceneMetadata

	Hostname       string
	PrefixTemplate string
	MinZoom        int
	MaxZoom        int

	// Bounds, CRS and Date are derived from the sidecar document
	Bounds geom.Extent
	CRS    string
	Date   time.Time

	// TileInfo is the parsed sidecar, nil if the scene is degraded
	TileInfo *TileInfo

	bands   []string
	bandSet service.StringSet
	prefix  string
	getter  object.Getter
}

// Option overrides a default of the Reader before it resolves
type Option func(*Reader)

// WithHostname sets the object storage bucket hosting the scenes
func WithHostname(hostname string) Option {
	return func(r *Reader) { r.Hostname = hostname }
}

// WithPrefixTemplate sets the storage prefix template. The template must
// resolve to a distinct prefix for every distinct scene.
func WithPrefixTemplate(template string) Option {
	return func(r *Reader) { r.PrefixTemplate = template }
}

// WithZoomRange sets the zoom bounds advertised to the tiling framework
func WithZoomRange(minZoom, maxZoom int) Option {
	return func(r *Reader) { r.MinZoom, r.MaxZoom = minZoom, maxZoom }
}

// WithGetter sets the object storage service the sidecar is fetched from
func WithGetter(getter object.Getter) Option {
	return func(r *Reader) { r.getter = getter }
}

// NewSceneReader creates the Reader matching the processing level of the scene.
// Raise ErrUnsupportedProcessingLevel, ErrMissingMetadataField.
func NewSceneReader(ctx context.Context, sceneID string, options ...Option) (*Reader, error) {
	metadata, err := common.Info(sceneID)
	if err != nil {
		return nil, fmt.Errorf("NewSceneReader: %w", err)
	}
	switch metadata.Level() {
	case common.LevelL2A:
		return NewL2AReader(ctx, sceneID, options...)
	case common.LevelL1C:
		return NewL1CReader(ctx, sceneID, options...)
	}
	return nil, ErrUnsupportedProcessingLevel{Level: string(metadata.Level()), Scene: sceneID}
}

// NewL2AReader creates a Reader for a L2A scene
func NewL2AReader(ctx context.Context, sceneID string, options ...Option) (*Reader, error) {
	return newReader(ctx, sceneID, common.LevelL2A, options...)
}

// NewL1CReader creates a Reader for a L1C scene
func NewL1CReader(ctx context.Context, sceneID string, options ...Option) (*Reader, error) {
	return newReader(ctx, sceneID, common.LevelL1C, options...)
}

func newReader(ctx context.Context, sceneID string, level common.ProcessingLevel, options ...Option) (*Reader, error) {
	metadata, err := common.Info(sceneID)
	if err != nil {
		return nil, fmt.Errorf("newReader: %w", err)
	}
	if metadata.Level() != level {
		return nil, ErrUnsupportedProcessingLevel{Level: string(metadata.Level()), Scene: sceneID}
	}

	r := &Reader{
		SceneID:        sceneID,
		Metadata:       metadata,
		Hostname:       DefaultHostname,
		PrefixTemplate: DefaultPrefixTemplate,
		MinZoom:        DefaultMinZoom,
		MaxZoom:        DefaultMaxZoom,
		Bounds:         wholeEarth,
		CRS:            DefaultCRS,
	}
	for _, o := range options {
		o(r)
	}

	for _, field := range common.BracketFields(r.PrefixTemplate) {
		if _, ok := r.Metadata[field]; !ok {
			return nil, ErrMissingMetadataField{Field: field, Template: r.PrefixTemplate}
		}
	}
	r.prefix = common.FormatBrackets(r.PrefixTemplate, r.Metadata)

	r.resolve(ctx, Bands(level))
	return r, nil
}

// resolve fetches and parses the sidecar document. A scene whose sidecar is
// unreachable or malformed degrades to an empty band set and the default
// whole-earth footprint instead of failing the request.
func (r *Reader) resolve(ctx context.Context, bands []string) {
	key := r.prefix + "/" + SidecarName

	content, err := r.fetchSidecar(ctx, key)
	if err != nil {
		r.degraded(ctx, key, err)
		return
	}
	tileInfo := TileInfo{}
	if err := json.Unmarshal(content, &tileInfo); err != nil {
		r.degraded(ctx, key, fmt.Errorf("unmarshal sidecar: %w", err))
		return
	}
	geometry := tileInfo.BoundingGeometry()
	if geometry == nil {
		r.degraded(ctx, key, fmt.Errorf("sidecar has no tile geometry"))
		return
	}
	extent, err := geom.NewExtentFromGeometry(geometry.Geometry.Geometry)
	if err != nil {
		r.degraded(ctx, key, fmt.Errorf("extent from tile geometry: %w", err))
		return
	}

	r.TileInfo = &tileInfo
	r.Bounds = *extent
	if geometry.CRSName != "" {
		r.CRS = geometry.CRSName
	}
	if date, err := dateparse.ParseAny(tileInfo.Timestamp); err == nil {
		r.Date = date
	}
	r.bands = bands
	r.bandSet = service.NewStringSet(bands...)
}

func (r *Reader) fetchSidecar(ctx context.Context, key string) ([]byte, error) {
	if r.getter == nil {
		// the public Sentinel-2 buckets are requester-pays
		getter, err := object.NewS3Getter(ctx, object.WithRequestPayer(true))
		if err != nil {
			return nil, fmt.Errorf("NewS3Getter: %w", err)
		}
		r.getter = getter
	}
	return r.getter.Get(ctx, r.Hostname, key)
}

func (r *Reader) degraded(ctx context.Context, key string, err error) {
	log.Logger(ctx).Warn("scene sidecar unavailable, serving degraded scene",
		zap.String("scene", r.SceneID),
		zap.String("hostname", r.Hostname),
		zap.String("key", key),
		zap.Bool("temporary", service.Temporary(err)),
		zap.Error(err))
}

// Prefix returns the resolved storage prefix of the scene
func (r *Reader) Prefix() string {
	return r.prefix
}

// Bands returns the available band codes of the scene.
// Empty if the scene is degraded.
func (r *Reader) Bands() []string {
	return append([]string(nil), r.bands...)
}

// BandURL validates the band name and returns the band's url.
// No network access occurs, the prefix is already resolved.
// Raise ErrInvalidBandName.
func (r *Reader) BandURL(band string) (string, error) {
	band = NormalizeBand(band)
	if !r.bandSet.Exists(band) {
		return "", ErrInvalidBandName{Band: band, ValidBands: r.Bands()}
	}
	return fmt.Sprintf("%s://%s/%s/%s.tif", Scheme, r.Hostname, r.prefix, band), nil
}
