package main

import (
	"flag"
	"log"

	"github.com/lintang-b-s/osm-route/pkg/di"

	"github.com/spf13/viper"
)

var (
	mapFile = flag.String("f", "", "openstreetmap file (.osm, .osm.gz, .osm.pbf). overrides MAP_FILE")
	port    = flag.Int("p", 0, "api port. overrides API_PORT")
)

//	@title			osm-route API
//	@version		1.0
//	@description	shortest path routing and turn by turn directions over an openstreetmap road network.
//	@BasePath		/
func main() {
	flag.Parse()
	if *mapFile != "" {
		viper.Set("MAP_FILE", *mapFile)
	}
	if *port != 0 {
		viper.Set("API_PORT", *port)
	}

	server, cleanup, err := di.InitializeRoutingService()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	if err := server.Wait(); err != nil {
		server.Log.Sugar().Errorf("api stopped: %v", err)
	}
}
