package osmgraph

import "fmt"

// EventHandler ingestion contract between a map-data reader and the graph builder.
// events arrive in document order. tag events apply to the element started last.
type EventHandler interface {
	NodeStart(id int64, lon, lat float64) error
	NodeTag(key, value string) error
	NodeEnd() error
	WayStart(id int64) error
	WayNodeRef(nodeID int64) error
	WayTag(key, value string) error
	WayEnd() error
}

type EventKind int

const (
	NODE_START EventKind = iota
	NODE_TAG
	NODE_END
	WAY_START
	WAY_NODE_REF
	WAY_TAG
	WAY_END
)

func (k EventKind) String() string {
	switch k {
	case NODE_START:
		return "NodeStart"
	case NODE_TAG:
		return "NodeTag"
	case NODE_END:
		return "NodeEnd"
	case WAY_START:
		return "WayStart"
	case WAY_NODE_REF:
		return "WayNodeRef"
	case WAY_TAG:
		return "WayTag"
	case WAY_END:
		return "WayEnd"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event a recorded ingestion event. ID is the node/way id for *_START and the node ref for WAY_NODE_REF.
type Event struct {
	Kind  EventKind
	ID    int64
	Lon   float64
	Lat   float64
	Key   string
	Value string
}

func NodeStartEvent(id int64, lon, lat float64) Event {
	return Event{Kind: NODE_START, ID: id, Lon: lon, Lat: lat}
}

func NodeTagEvent(key, value string) Event {
	return Event{Kind: NODE_TAG, Key: key, Value: value}
}

func NodeEndEvent() Event {
	return Event{Kind: NODE_END}
}

func WayStartEvent(id int64) Event {
	return Event{Kind: WAY_START, ID: id}
}

func WayNodeRefEvent(nodeID int64) Event {
	return Event{Kind: WAY_NODE_REF, ID: nodeID}
}

func WayTagEvent(key, value string) Event {
	return Event{Kind: WAY_TAG, Key: key, Value: value}
}

func WayEndEvent() Event {
	return Event{Kind: WAY_END}
}

// Dispatch delivers a single event to h.
func Dispatch(e Event, h EventHandler) error {
	switch e.Kind {
	case NODE_START:
		return h.NodeStart(e.ID, e.Lon, e.Lat)
	case NODE_TAG:
		return h.NodeTag(e.Key, e.Value)
	case NODE_END:
		return h.NodeEnd()
	case WAY_START:
		return h.WayStart(e.ID)
	case WAY_NODE_REF:
		return h.WayNodeRef(e.ID)
	case WAY_TAG:
		return h.WayTag(e.Key, e.Value)
	case WAY_END:
		return h.WayEnd()
	}
	return fmt.Errorf("%w: %s", ErrUnexpectedEvent, e.Kind)
}

// Replay delivers events to h in order and stops at the first error.
func Replay(events []Event, h EventHandler) error {
	for i, e := range events {
		if err := Dispatch(e, h); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, e.Kind, err)
		}
	}
	return nil
}
