package osmgraph

import (
	"sort"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
)

const (
	HIGHWAY_TAG = "highway"
	NAME_TAG    = "name"
)

// DefaultHighwayTypes road classes that produce graph edges.
var DefaultHighwayTypes = []string{
	"motorway",
	"trunk",
	"primary",
	"secondary",
	"tertiary",
	"unclassified",
	"residential",
	"living_street",
	"motorway_link",
	"trunk_link",
	"primary_link",
	"secondary_link",
	"tertiary_link",
}

// HighwayConfig immutable allow-list of highway tag values.
type HighwayConfig struct {
	allowed map[string]struct{}
}

func NewHighwayConfig(highwayTypes []string) HighwayConfig {
	allowed := make(map[string]struct{}, len(highwayTypes))
	for _, tipe := range highwayTypes {
		allowed[tipe] = struct{}{}
	}
	return HighwayConfig{allowed: allowed}
}

func DefaultHighwayConfig() HighwayConfig {
	return NewHighwayConfig(DefaultHighwayTypes)
}

// CheckTag checks if the highway value is in the allow-list.
func (cfg HighwayConfig) CheckTag(tag string) bool {
	_, ok := cfg.allowed[tag]
	return ok
}

// IsValid way has a highway tag whose value is allowed.
func (cfg HighwayConfig) IsValid(way *datastructure.Way) bool {
	highway, ok := way.Tag(HIGHWAY_TAG)
	if !ok {
		return false
	}
	return cfg.CheckTag(highway)
}

func (cfg HighwayConfig) Types() []string {
	types := make([]string, 0, len(cfg.allowed))
	for tipe := range cfg.allowed {
		types = append(types, tipe)
	}
	sort.Strings(types)
	return types
}
