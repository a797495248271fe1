package events

import "github.com/gridpilot/bessim/core/model"

// StepEvent is published after every engine step.
type StepEvent struct {
	RunID       string
	EpisodeID   string
	Episode     int
	Step        int
	Observation model.Observation
	Reward      float64
	Terminated  bool
	Truncated   bool
	Info        model.StepInfo
}
