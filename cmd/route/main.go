package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/lintang-b-s/osm-route/pkg/di"

	"github.com/spf13/viper"
)

var (
	mapFile  = flag.String("f", "", "openstreetmap file (.osm, .osm.gz, .osm.pbf). overrides MAP_FILE")
	startLon = flag.Float64("start_lon", -122.2608, "start longitude")
	startLat = flag.Float64("start_lat", 37.8753, "start latitude")
	destLon  = flag.Float64("dest_lon", -122.2700, "destination longitude")
	destLat  = flag.Float64("dest_lat", 37.8660, "destination latitude")
	progress = flag.Bool("progress", true, "show map file progress bar")
)

func main() {
	flag.Parse()
	if *mapFile != "" {
		viper.Set("MAP_FILE", *mapFile)
	}
	viper.Set("SHOW_PROGRESS", *progress)

	engine, cleanup, err := di.InitializeRoutingEngine()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	route, err := engine.Route(context.Background(), *startLon, *startLat, *destLon, *destLat)
	if err != nil {
		log.Fatal(err)
	}
	if len(route) == 0 {
		fmt.Println("no route found")
		return
	}

	fmt.Printf("route with %d vertices, %.3f miles\n", len(route), engine.RouteLength(route))
	for i, step := range engine.Directions(route) {
		fmt.Printf("%d. %s\n", i+1, step)
	}
}
