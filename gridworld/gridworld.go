// Package gridworld implements the classic slippery grid navigation task as
// a Markov Decision Process.
//
// The agent moves on a rectangular grid toward a goal cell. Each move
// succeeds with probability 1 - Slip and slides to one of the two
// perpendicular directions with probability Slip/2 each. Moves that would
// leave the grid keep the agent in place. Reaching the goal yields a final
// reward and ends the episode; every other transition costs a small step
// penalty.
//
// The world computes transition probabilities and rewards on demand, so it is
// cheap to construct at any size and can be copied into fast storage with
// mdp.NewSparseModelFromModel.
package gridworld

import (
	"fmt"
)

type Action int

const (
	Up Action = iota
	Down
	Left
	Right
	NumActions
)

var actionStr = [...]string{
	"Up",
	"Down",
	"Left",
	"Right",
}

func (a Action) String() string {
	return actionStr[a]
}

// perpendicular holds the two slip directions for each intended move.
var perpendicular = [...][2]Action{
	Up:    {Left, Right},
	Down:  {Left, Right},
	Left:  {Up, Down},
	Right: {Up, Down},
}

// Params describe a grid world instance.
type Params struct {
	Width  int
	Height int
	// Goal is the state index of the absorbing goal cell.
	Goal int
	// Slip is the total probability of sliding perpendicular to the
	// intended direction.
	Slip       float64
	StepCost   float64
	GoalReward float64
	Discount   float64
}

// DefaultParams returns a 4 x 3 world with the goal in the top-right corner
// and the conventional small penalty on every step.
func DefaultParams() Params {
	return Params{
		Width:      4,
		Height:     3,
		Goal:       11,
		Slip:       0.2,
		StepCost:   -0.04,
		GoalReward: 1.0,
		Discount:   0.95,
	}
}

// World is a grid navigation task. It implements mdp.Model.
type World struct {
	params Params
}

func New(params Params) *World {
	return &World{params: params}
}

// String implements fmt.Stringer.
func (w *World) String() string {
	return fmt.Sprintf("%d x %d grid world, goal at (%d, %d)",
		w.params.Width, w.params.Height, w.params.Goal%w.params.Width, w.params.Goal/w.params.Width)
}

// NumStates implements mdp.Model. States are grid cells numbered row-major
// from the bottom-left corner.
func (w *World) NumStates() int {
	return w.params.Width * w.params.Height
}

// NumActions implements mdp.Model.
func (w *World) NumActions() int {
	return int(NumActions)
}

// Discount implements mdp.Model.
func (w *World) Discount() float64 {
	return w.params.Discount
}

// State returns the state index of the cell at (x, y).
func (w *World) State(x, y int) int {
	return y*w.params.Width + x
}

// Coords returns the cell coordinates of the given state.
func (w *World) Coords(s int) (x, y int) {
	return s % w.params.Width, s / w.params.Width
}

// GetTransitionProbability implements mdp.Model. The goal cell is absorbing:
// every action keeps the agent there with certainty.
func (w *World) GetTransitionProbability(s, a, s1 int) float64 {
	if s == w.params.Goal {
		if s1 == s {
			return 1.0
		}

		return 0
	}

	// Distinct movement outcomes may land on the same cell when the agent
	// is next to a wall, so the masses accumulate.
	var p float64
	if w.move(s, Action(a)) == s1 {
		p += 1 - w.params.Slip
	}

	for _, slip := range perpendicular[a] {
		if w.move(s, slip) == s1 {
			p += w.params.Slip / 2
		}
	}

	return p
}

// GetExpectedReward implements mdp.Model. Entering the goal yields the goal
// reward; every other move costs the step penalty. The goal itself yields
// nothing.
func (w *World) GetExpectedReward(s, a, s1 int) float64 {
	if s == w.params.Goal {
		return 0
	}

	if s1 == w.params.Goal {
		return w.params.GoalReward
	}

	return w.params.StepCost
}

// move returns the cell reached by taking a single step from s in the given
// direction, staying in place when the step would leave the grid.
func (w *World) move(s int, a Action) int {
	x, y := w.Coords(s)
	switch a {
	case Up:
		y++
	case Down:
		y--
	case Left:
		x--
	case Right:
		x++
	}

	if x < 0 || x >= w.params.Width || y < 0 || y >= w.params.Height {
		return s
	}

	return w.State(x, y)
}
