package datastructure

// Location model info
// @Description named osm node. used for location search and as a route query endpoint.
type Location struct {
	ID   int64   `json:"id"`   // osm node id
	Name string  `json:"name"` // from osm tag name
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func NewLocation(id int64, name string, lat float64, lon float64) Location {
	return Location{
		ID:   id,
		Name: name,
		Lat:  lat,
		Lon:  lon,
	}
}
