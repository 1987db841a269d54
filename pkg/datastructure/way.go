package datastructure

// Way osm way being accumulated while building the graph. node order is the physical order of the road.
type Way struct {
	ID      int64
	NodeIDs []int64
	Tags    map[string]string
}

func NewWay(id int64) *Way {
	return &Way{
		ID:      id,
		NodeIDs: make([]int64, 0),
		Tags:    make(map[string]string),
	}
}

func (w *Way) AddNodeRef(nodeID int64) {
	w.NodeIDs = append(w.NodeIDs, nodeID)
}

func (w *Way) SetTag(key, value string) {
	w.Tags[key] = value
}

func (w *Way) Tag(key string) (string, bool) {
	val, ok := w.Tags[key]
	return val, ok
}
