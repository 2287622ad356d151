package petrinet

import (
	"encoding/json"
	"fmt"

	"github.com/vassreach/vassreach/valuation"
	"github.com/vassreach/vassreach/vass"
)

// Transition is one Petri-net transition: the weighted multiset of
// places it consumes from and produces into, expressed the way spec §6
// describes a rule's net effect once guard and update are combined
// (weight may be negative for a pure consumption with no matching
// production, at the model level a Transition is just a signed
// per-place weight vector).
type Transition struct {
	Weights []PlaceWeight `json:"weights"`
}

// PlaceWeight names one place and the signed weight a transition applies
// to it.
type PlaceWeight struct {
	Place  int   `json:"place"`
	Weight int64 `json:"weight"`
}

// PetriNet is an unvalued Petri net: a fixed number of places and an
// ordered list of transitions over them.
type PetriNet struct {
	NumPlaces   int          `json:"num_places"`
	Transitions []Transition `json:"transitions"`
}

// InitializedPetriNet pairs a PetriNet with an initial and final marking
// (spec §6: "place count, transitions ..., initial and final markings").
// It round-trips through JSON, pretty-printed.
type InitializedPetriNet struct {
	Net     PetriNet `json:"net"`
	Initial []int64  `json:"initial"`
	Final   []int64  `json:"final"`
}

// MarshalJSON and UnmarshalJSON are the default encoding/json behavior
// for the exported struct fields above; no custom marshaling is needed
// since the wire shape is already the natural Go struct shape (spec §6's
// JSON persistence is named as an external collaborator's format, not a
// domain algorithm, so there is no third-party library in the pack that
// fits better than the standard encoding/json here — see DESIGN.md).

// ToJSON pretty-prints ipn per spec §6.
func (ipn *InitializedPetriNet) ToJSON() ([]byte, error) {
	return json.MarshalIndent(ipn, "", "  ")
}

// FromJSON parses the pretty-printed form ToJSON produces.
func FromJSON(data []byte) (*InitializedPetriNet, error) {
	var ipn InitializedPetriNet
	if err := json.Unmarshal(data, &ipn); err != nil {
		return nil, fmt.Errorf("petrinet: FromJSON: %w", err)
	}
	return &ipn, nil
}

// Compile lowers a parsed textual Spec into an InitializedPetriNet,
// assigning each variable a dense place index in first-appearance order.
func Compile(s *Spec) (*InitializedPetriNet, error) {
	places := make(map[string]int)
	order := func(name string) int {
		if idx, ok := places[name]; ok {
			return idx
		}
		idx := len(places)
		places[name] = idx
		return idx
	}
	for _, v := range s.Vars {
		order(v)
	}

	transitions := make([]Transition, 0, len(s.Rules))
	for _, r := range s.Rules {
		// Per spec §6, guard p>=k and update p'=p±k describe the same
		// firing: the guard's -k consumption and the update's own
		// signed delta act on the same token movement, not two
		// independent effects, so for a place with both a guard and a
		// matching update the two cancel to leave just the update's
		// signed delta (see original_source's TransitionSpec::
		// to_transition: input[pos]=-k, output[pos]=-input+change nets
		// to change). A place that appears in the guard only (no
		// matching update) is a pure consumption of its threshold; a
		// place that appears in an update only starts from a zero base
		// weight.
		guardOf := make(map[int]int64)
		for _, g := range r.Guards {
			idx := order(g.Place)
			guardOf[idx] += g.Threshold
		}
		updateOf := make(map[int]int64)
		updated := make(map[int]bool)
		for _, u := range r.Updates {
			idx := order(u.Place)
			updateOf[idx] += u.Sign * u.Delta
			updated[idx] = true
		}

		weights := make(map[int]int64)
		for idx, k := range guardOf {
			if !updated[idx] {
				weights[idx] = -k
			}
		}
		for idx, w := range updateOf {
			weights[idx] = w
		}

		t := Transition{}
		for idx, w := range weights {
			if w != 0 {
				t.Weights = append(t.Weights, PlaceWeight{Place: idx, Weight: w})
			}
		}
		transitions = append(transitions, t)
	}

	numPlaces := len(places)
	initial := markingFrom(s.Init, places, numPlaces)
	final := markingFrom(s.Target, places, numPlaces)

	return &InitializedPetriNet{
		Net:     PetriNet{NumPlaces: numPlaces, Transitions: transitions},
		Initial: initial,
		Final:   final,
	}, nil
}

func markingFrom(atoms []EqAtom, places map[string]int, numPlaces int) []int64 {
	m := make([]int64, numPlaces)
	for _, a := range atoms {
		if idx, ok := places[a.Place]; ok {
			m[idx] = a.Value
		}
	}
	return m
}

// ToVASS lowers ipn to a single-state VASS: one transition per Petri-net
// transition, all looping on the sole VASS state, each carrying the
// transition's weight vector as its delta (spec §6's standard
// Petri-net-as-1-state-VASS encoding).
func (ipn *InitializedPetriNet) ToVASS() (*vass.InitializedVASS, error) {
	d := ipn.Net.NumPlaces
	v := vass.New(d)
	s := v.AddState()

	for _, t := range ipn.Net.Transitions {
		delta := make([]int32, d)
		for _, pw := range t.Weights {
			delta[pw.Place] = int32(pw.Weight)
		}
		if _, err := v.AddEdge(s, s, delta, ""); err != nil {
			return nil, fmt.Errorf("petrinet: ToVASS: %w", err)
		}
	}

	init := make([]int32, d)
	final := make([]int32, d)
	for i, x := range ipn.Initial {
		init[i] = int32(x)
	}
	for i, x := range ipn.Final {
		final[i] = int32(x)
	}

	return vass.NewInitialized(v, s, s, valuation.New(init...), valuation.New(final...))
}
