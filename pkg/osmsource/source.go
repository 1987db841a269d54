package osmsource

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/osm-route/pkg/osmgraph"

	"github.com/k0kubun/go-ansi"
	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported map file format")
)

type Format int

const (
	XML Format = iota
	XML_GZIP
	PBF
)

func (f Format) String() string {
	switch f {
	case XML:
		return "osm xml"
	case XML_GZIP:
		return "gzipped osm xml"
	case PBF:
		return "osm pbf"
	}
	return "unknown"
}

// FormatFromPath guesses the map file format from its extension.
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".osm.gz") || strings.HasSuffix(lower, ".xml.gz") {
		return XML_GZIP, nil
	}
	switch filepath.Ext(lower) {
	case ".osm", ".xml":
		return XML, nil
	case ".pbf":
		return PBF, nil
	}
	return XML, errors.Wrapf(ErrUnsupportedFormat, "file extension %q for file %q", filepath.Ext(path), path)
}

type osmScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

type options struct {
	log      *zap.Logger
	progress bool
	pbfProcs int
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithProgress shows a progress bar of the bytes read on stdout.
func WithProgress(progress bool) Option {
	return func(o *options) {
		o.progress = progress
	}
}

// WithPBFProcs number of goroutines decoding pbf blocks.
func WithPBFProcs(procs int) Option {
	return func(o *options) {
		o.pbfProcs = procs
	}
}

func newOptions(opts []Option) options {
	o := options{
		log:      zap.NewNop(),
		pbfProcs: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pbfProcs < 1 {
		o.pbfProcs = 1
	}
	return o
}

// Stats number of elements delivered to the handler.
type Stats struct {
	Nodes int
	Ways  int
}

// Read opens the map file at path and delivers its nodes and ways to h as ingestion events.
func Read(ctx context.Context, path string, h osmgraph.EventHandler, opts ...Option) (Stats, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Stats{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Stats{}, errors.Wrapf(err, "open map file %s", path)
	}
	defer f.Close()

	o := newOptions(opts)
	o.log.Sugar().Infof("reading %s map file %s", format, path)

	var r io.Reader = f
	if o.progress {
		var size int64 = -1
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan]Reading osm objects..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
		defer bar.Finish()
		pr := progressbar.NewReader(f, bar)
		r = &pr
	}

	return scan(ctx, r, format, h, o)
}

// Scan reads map data of the given format from r and delivers its nodes and ways to h as ingestion events.
func Scan(ctx context.Context, r io.Reader, format Format, h osmgraph.EventHandler, opts ...Option) (Stats, error) {
	return scan(ctx, r, format, h, newOptions(opts))
}

func scan(ctx context.Context, r io.Reader, format Format, h osmgraph.EventHandler, o options) (Stats, error) {
	var scanner osmScanner
	switch format {
	case XML:
		scanner = osmxml.New(ctx, r)
	case XML_GZIP:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return Stats{}, errors.Wrap(err, "open gzip stream")
		}
		defer gz.Close()
		scanner = osmxml.New(ctx, gz)
	case PBF:
		pbfScanner := osmpbf.New(ctx, r, o.pbfProcs)
		pbfScanner.SkipRelations = true
		scanner = pbfScanner
	default:
		return Stats{}, errors.Wrapf(ErrUnsupportedFormat, "format %d", int(format))
	}
	defer scanner.Close()

	stats := Stats{}
	for scanner.Scan() {
		switch obj := scanner.Object().(type) {
		case *osm.Node:
			if err := emitNode(obj, h); err != nil {
				return stats, err
			}
			stats.Nodes++
			if stats.Nodes%1000000 == 0 {
				o.log.Sugar().Infof("read %d nodes", stats.Nodes)
			}
		case *osm.Way:
			if err := emitWay(obj, h); err != nil {
				return stats, err
			}
			stats.Ways++
			if stats.Ways%100000 == 0 {
				o.log.Sugar().Infof("read %d ways", stats.Ways)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, errors.Wrap(err, "scan osm objects")
	}
	if err := ctx.Err(); err != nil {
		return stats, errors.Wrap(err, "scan osm objects")
	}

	o.log.Info("map data read", zap.Int("nodes", stats.Nodes), zap.Int("ways", stats.Ways))
	return stats, nil
}

func emitNode(node *osm.Node, h osmgraph.EventHandler) error {
	id := int64(node.ID)
	if err := h.NodeStart(id, node.Lon, node.Lat); err != nil {
		return errors.Wrapf(err, "node %d", id)
	}
	for _, tag := range node.Tags {
		if err := h.NodeTag(tag.Key, tag.Value); err != nil {
			return errors.Wrapf(err, "node %d tag %s", id, tag.Key)
		}
	}
	return errors.Wrapf(h.NodeEnd(), "node %d", id)
}

func emitWay(way *osm.Way, h osmgraph.EventHandler) error {
	id := int64(way.ID)
	if err := h.WayStart(id); err != nil {
		return errors.Wrapf(err, "way %d", id)
	}
	for _, ref := range way.Nodes {
		if err := h.WayNodeRef(int64(ref.ID)); err != nil {
			return errors.Wrapf(err, "way %d node ref %d", id, ref.ID)
		}
	}
	for _, tag := range way.Tags {
		if err := h.WayTag(tag.Key, tag.Value); err != nil {
			return errors.Wrapf(err, "way %d tag %s", id, tag.Key)
		}
	}
	return errors.Wrapf(h.WayEnd(), "way %d", id)
}
