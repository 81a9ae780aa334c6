package trackfile

import (
	"encoding/json"
	"fmt"

	"github.com/ha1tch/track-toolkit/pkg/geom"
	"github.com/ha1tch/track-toolkit/pkg/track"
)

// jsonTrack is the JSON representation of a generated track.
type jsonTrack struct {
	Name     string        `json:"name,omitempty"`
	Sections []jsonSection `json:"sections"`
}

type jsonSection struct {
	Center jsonCurve   `json:"center"`
	Left   []jsonCurve `json:"left"`
	Right  []jsonCurve `json:"right"`
}

// jsonCurve is a cubic as four [x, y] pairs in control point order.
type jsonCurve [4][2]float64

func toJSONCurve(c geom.Cubic) jsonCurve {
	return jsonCurve{
		{c.P0.X, c.P0.Y},
		{c.P1.X, c.P1.Y},
		{c.P2.X, c.P2.Y},
		{c.P3.X, c.P3.Y},
	}
}

func fromJSONCurve(j jsonCurve) geom.Cubic {
	return geom.Cubic{
		P0: geom.Point{X: j[0][0], Y: j[0][1]},
		P1: geom.Point{X: j[1][0], Y: j[1][1]},
		P2: geom.Point{X: j[2][0], Y: j[2][1]},
		P3: geom.Point{X: j[3][0], Y: j[3][1]},
	}
}

func toJSONCurves(cs []geom.Cubic) []jsonCurve {
	out := make([]jsonCurve, len(cs))
	for i, c := range cs {
		out[i] = toJSONCurve(c)
	}
	return out
}

func fromJSONCurves(js []jsonCurve) []geom.Cubic {
	out := make([]geom.Cubic, len(js))
	for i, j := range js {
		out[i] = fromJSONCurve(j)
	}
	return out
}

// ToJSON converts a track to JSON. Only the centre curve and the edge chains
// are persisted; the raw offset outline is a working artefact of generation.
func ToJSON(t track.Track, name string, pretty bool) ([]byte, error) {
	j := jsonTrack{Name: name, Sections: make([]jsonSection, len(t))}
	for i, s := range t {
		j.Sections[i] = jsonSection{
			Center: toJSONCurve(s.Center),
			Left:   toJSONCurves(s.LeftEdge),
			Right:  toJSONCurves(s.RightEdge),
		}
	}
	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}

// ParseJSON parses a track from JSON.
func ParseJSON(data []byte) (track.Track, string, error) {
	var j jsonTrack
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, "", err
	}
	if len(j.Sections) == 0 {
		return nil, "", fmt.Errorf("track has no sections")
	}

	t := make(track.Track, len(j.Sections))
	for i, js := range j.Sections {
		t[i] = &track.Section{
			Center:    fromJSONCurve(js.Center),
			LeftEdge:  fromJSONCurves(js.Left),
			RightEdge: fromJSONCurves(js.Right),
		}
	}
	return t, j.Name, nil
}
