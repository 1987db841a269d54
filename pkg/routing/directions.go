package routing

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"github.com/lintang-b-s/osm-route/pkg/geo"
)

type TurnKind int

const (
	Start TurnKind = iota
	Straight
	SlightLeft
	SlightRight
	Right
	Left
	SharpLeft
	SharpRight
)

const (
	UNKNOWN_ROAD = "unknown road"
)

var turnNames = map[TurnKind]string{
	Start:       "Start",
	Straight:    "Go straight",
	SlightLeft:  "Slight left",
	SlightRight: "Slight right",
	Left:        "Turn left",
	Right:       "Turn right",
	SharpLeft:   "Sharp left",
	SharpRight:  "Sharp right",
}

func (t TurnKind) String() string {
	if name, ok := turnNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TurnKind(%d)", int(t))
}

func (t TurnKind) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TurnKind) UnmarshalText(text []byte) error {
	kind, err := ParseTurnKind(string(text))
	if err != nil {
		return err
	}
	*t = kind
	return nil
}

func ParseTurnKind(s string) (TurnKind, error) {
	for kind, name := range turnNames {
		if name == s {
			return kind, nil
		}
	}
	return Start, fmt.Errorf("unknown turn %q", s)
}

// ClassifyTurn maps a signed heading change in degrees to a turn. positive is to the right.
func ClassifyTurn(delta float64) TurnKind {
	switch {
	case delta >= -15 && delta <= 15:
		return Straight
	case delta > 15 && delta <= 30:
		return SlightRight
	case delta > 30 && delta <= 100:
		return Right
	case delta > 100:
		return SharpRight
	case delta < -15 && delta >= -30:
		return SlightLeft
	case delta < -30 && delta >= -100:
		return Left
	default:
		return SharpLeft
	}
}

// Step model info
// @Description one navigation instruction.
type Step struct {
	Turn     TurnKind `json:"turn"`
	Road     string   `json:"road"`
	Distance float64  `json:"distance_miles"`
}

func (s Step) String() string {
	return fmt.Sprintf("%s on %s and continue for %.3f miles.", s.Turn, s.Road, s.Distance)
}

var stepRegex = regexp.MustCompile(`^([a-zA-Z\s]+?) on (.*) and continue for ([0-9.]+) miles\.$`)

// ParseStep parses the output of Step.String.
func ParseStep(s string) (Step, error) {
	m := stepRegex.FindStringSubmatch(s)
	if m == nil {
		return Step{}, fmt.Errorf("invalid navigation step %q", s)
	}
	turn, err := ParseTurnKind(m[1])
	if err != nil {
		return Step{}, err
	}
	dist, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Step{}, fmt.Errorf("invalid navigation step distance %q: %w", m[3], err)
	}
	return Step{Turn: turn, Road: m[2], Distance: dist}, nil
}

func roadName(g *datastructure.Graph, from, to int64) string {
	edge, ok := g.Edge(from, to)
	if !ok {
		return ""
	}
	name, _ := edge.Name()
	return name
}

func displayName(name string) string {
	if name == "" {
		return UNKNOWN_ROAD
	}
	return name
}

func turnAt(g *datastructure.Graph, before, at, after int64) TurnKind {
	return ClassifyTurn(geo.BearingDelta(g.Bearing(before, at), g.Bearing(at, after)))
}

// terminalTurn classifies the last traversed bearing: the heading change of the last two hops,
// or the absolute bearing of the hop when the route has only one.
func terminalTurn(g *datastructure.Graph, route []int64) TurnKind {
	n := len(route)
	if n == 2 {
		return ClassifyTurn(g.Bearing(route[0], route[1]))
	}
	return turnAt(g, route[n-3], route[n-2], route[n-1])
}

// Directions converts a route into navigation steps. consecutive hops on roads with the same name
// are merged into one step. the final step, even a lone one, is always reclassified by terminalTurn.
func Directions(g *datastructure.Graph, route []int64) []Step {
	steps := make([]Step, 0)
	if len(route) < 2 {
		return steps
	}

	currentName := roadName(g, route[0], route[1])
	current := Step{Turn: Start, Road: displayName(currentName)}

	for i := 1; i < len(route); i++ {
		prev, cur := route[i-1], route[i]
		name := roadName(g, prev, cur)
		if name != currentName {
			steps = append(steps, current)
			currentName = name
			current = Step{
				Turn: turnAt(g, route[i-2], prev, cur),
				Road: displayName(name),
			}
		}
		current.Distance += g.Distance(prev, cur)
	}

	current.Turn = terminalTurn(g, route)
	return append(steps, current)
}
