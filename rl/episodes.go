package rl

import (
	"github.com/golang/glog"

	"github.com/timpalpant/go-mdp"
)

// RunEpisode plays a single episode, starting from the given state and
// updating the agent after every sampled transition. The episode ends when
// the model reaches a terminal state or after maxSteps transitions. It
// returns the total accumulated reward and the number of steps taken.
func RunEpisode(model mdp.GenerativeModel, agent *QLearning, start, maxSteps int) (float64, int) {
	s := start
	total := 0.0
	for i := 0; i < maxSteps; i++ {
		if model.IsTerminal(s) {
			return total, i
		}

		a := agent.GetAction(s)
		s1, r := model.SampleSR(s, a)
		agent.UpdateQTable(s, a, r, s1)
		total += r
		s = s1
	}

	return total, maxSteps
}

// Train runs nEpisodes episodes from the given start state, decaying the
// agent's exploration rate by one time unit after each.
func Train(model mdp.GenerativeModel, agent *QLearning, start, nEpisodes, maxSteps int) {
	for i := 1; i <= nEpisodes; i++ {
		reward, steps := RunEpisode(model, agent, start, maxSteps)
		agent.UpdateEpsilon(1.0)
		glog.V(1).Infof("[episode=%d] reward=%.4f steps=%d epsilon=%.3f",
			i, reward, steps, agent.Epsilon())
	}
}

// TrainWithReplay trains like Train, but additionally records every
// transition in the buffer and re-applies nReplay uniformly drawn past
// transitions after each real step. Replayed experience propagates values
// faster on models whose rewards are sparse.
func TrainWithReplay(model mdp.GenerativeModel, agent *QLearning, buffer *ReservoirBuffer, start, nEpisodes, maxSteps, nReplay int) {
	for i := 1; i <= nEpisodes; i++ {
		s := start
		total := 0.0
		steps := 0
		for ; steps < maxSteps; steps++ {
			if model.IsTerminal(s) {
				break
			}

			a := agent.GetAction(s)
			s1, r := model.SampleSR(s, a)
			agent.UpdateQTable(s, a, r, s1)
			buffer.Add(Transition{S: s, A: a, R: r, S1: s1})
			total += r
			s = s1

			for j := 0; j < nReplay; j++ {
				t := buffer.Get(agent.rng.Intn(buffer.Len()))
				agent.UpdateQTable(t.S, t.A, t.R, t.S1)
			}
		}

		agent.UpdateEpsilon(1.0)
		glog.V(1).Infof("[episode=%d] reward=%.4f steps=%d epsilon=%.3f buffer=%d",
			i, total, steps, agent.Epsilon(), buffer.Len())
	}
}
