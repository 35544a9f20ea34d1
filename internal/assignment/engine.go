package assignment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Engine matches pending orders to the least-loaded claimable delivery agent.
type Engine struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewEngine builds the assignment engine with the required dependencies.
func NewEngine(repo Repository, tx txRunner, logg *logger.Logger) (*Engine, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignment repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &Engine{repo: repo, tx: tx, logg: logg}, nil
}

// assignOutcome says why an assignment attempt did not stick. Only the
// no-agent outcome means younger pending orders cannot do better.
type assignOutcome int

const (
	outcomeAssigned assignOutcome = iota
	outcomeNoAgent
	outcomeOrderUnavailable
)

// AssignOne tries to hand the order to the least-loaded eligible agent inside
// the caller's transaction. Ties go to the longest-registered agent. A false
// return with nil error means the order stays pending; that outcome is not a
// failure.
func (e *Engine) AssignOne(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) (bool, error) {
	outcome, err := e.assignOne(ctx, tx, orderID)
	return outcome == outcomeAssigned, err
}

func (e *Engine) assignOne(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) (assignOutcome, error) {
	if orderID == uuid.Nil {
		return outcomeNoAgent, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	repo := e.repo.WithTx(tx)

	loads, err := repo.ListEligibleAgentLoads(ctx)
	if err != nil {
		return outcomeNoAgent, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list eligible agents")
	}

	for _, candidate := range loads {
		claimed, err := repo.ClaimAgent(ctx, candidate.AgentID)
		if err != nil {
			return outcomeNoAgent, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim agent")
		}
		if !claimed {
			// lost the race for this agent, try the next one
			continue
		}

		assigned, err := repo.AssignOrder(ctx, orderID, candidate.AgentID)
		if err != nil {
			return outcomeNoAgent, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign order")
		}
		if !assigned {
			// order left pending state underneath us; undo the claim
			if relErr := repo.ReleaseAgent(ctx, candidate.AgentID); relErr != nil {
				return outcomeNoAgent, pkgerrors.Wrap(pkgerrors.CodeDependency, relErr, "release claimed agent")
			}
			return outcomeOrderUnavailable, nil
		}

		if e.logg != nil {
			fields := map[string]any{"agent_id": candidate.AgentID.String()}
			e.logg.Info(e.logg.WithFields(e.logg.WithOrderID(ctx, orderID.String()), fields), "order assigned")
		}
		return outcomeAssigned, nil
	}

	return outcomeNoAgent, nil
}

// SweepPending walks unassigned payable orders oldest-first, assigning each in
// its own transaction. The walk stops at the first order no agent can take
// since younger orders cannot do better. Per-order failures are collected and
// do not halt the sweep.
func (e *Engine) SweepPending(ctx context.Context) (int, error) {
	orders, err := e.repo.ListPendingPayableOrders(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending orders")
	}

	assignedCount := 0
	var errs error
	for _, order := range orders {
		var outcome assignOutcome
		txErr := e.tx.WithTx(ctx, func(tx *gorm.DB) error {
			var innerErr error
			outcome, innerErr = e.assignOne(ctx, tx, order.ID)
			return innerErr
		})
		if txErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("order %s: %w", order.ID, txErr))
			continue
		}
		if outcome == outcomeOrderUnavailable {
			// cancelled or claimed elsewhere since the listing; the agent
			// pool is untouched, keep walking
			continue
		}
		if outcome == outcomeNoAgent {
			break
		}
		assignedCount++
	}

	return assignedCount, errs
}
