package bot

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/perudo/internal/game"
)

// DeadlineAgent bounds how long another agent may take to decide. An agent
// that misses the deadline forfeits the round.
type DeadlineAgent struct {
	agent   game.Agent
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger
}

// NewDeadlineAgent wraps agent with a per-decision timeout measured on clock.
func NewDeadlineAgent(agent game.Agent, timeout time.Duration, clock quartz.Clock, logger *log.Logger) *DeadlineAgent {
	return &DeadlineAgent{
		agent:   agent,
		timeout: timeout,
		clock:   clock,
		logger:  logger.WithPrefix("deadline"),
	}
}

// Decide implements game.Agent. The wrapped agent's context is cancelled
// when the deadline passes so it can stop work early.
func (d *DeadlineAgent) Decide(ctx context.Context, view game.View) game.Action {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeoutFired := make(chan struct{})
	timer := d.clock.AfterFunc(d.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	decision := make(chan game.Action, 1)
	go func() {
		decision <- d.agent.Decide(ctx, view)
	}()

	select {
	case action := <-decision:
		return action
	case <-timeoutFired:
		d.logger.Warn("Decision timeout, forfeiting round", "player", view.PlayerID, "timeout", d.timeout)
		return game.ForfeitAction{Reason: "decision timeout"}
	case <-ctx.Done():
		return game.ForfeitAction{Reason: ctx.Err().Error()}
	}
}
