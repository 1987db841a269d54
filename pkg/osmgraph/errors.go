package osmgraph

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEvent = errors.New("unexpected ingestion event")
	ErrUnknownNode     = errors.New("way references undeclared node")
	ErrBuildFinished   = errors.New("graph build already finished")
)

// BuildError structural error of a single way. the offending edge is skipped.
type BuildError struct {
	WayID  int64
	NodeID int64
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("way %d: node %d: %v", e.WayID, e.NodeID, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
