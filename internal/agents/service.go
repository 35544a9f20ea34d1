package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/config"
	"github.com/nabeel-mp/foodish-backend/pkg/db"
	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
	"github.com/nabeel-mp/foodish-backend/pkg/security"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateAgentInput is the admin-supplied profile for a new delivery agent.
type CreateAgentInput struct {
	Name     string
	Email    string
	Phone    *string
	Password string
}

// Service exposes delivery agent administration.
type Service interface {
	CreateAgent(ctx context.Context, input CreateAgentInput) (*models.DeliveryAgent, error)
	ListAgents(ctx context.Context) ([]models.DeliveryAgent, error)
	SetStatus(ctx context.Context, agentID uuid.UUID, status enums.AgentStatus) (*models.DeliveryAgent, error)
	SetPresence(ctx context.Context, agentID uuid.UUID, present bool) (*models.DeliveryAgent, error)
	SetAvailability(ctx context.Context, agentID uuid.UUID, available bool) (*models.DeliveryAgent, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	passCfg config.PasswordConfig
	logg    *logger.Logger
}

// NewService builds an agents service with the required dependencies.
func NewService(repo Repository, tx txRunner, passCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("agents repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, passCfg: passCfg, logg: logg}, nil
}

// CreateAgent provisions a delivery-role user plus its agent record in one
// transaction. Agents start active, available, with presence unrecorded.
func (s *service) CreateAgent(ctx context.Context, input CreateAgentInput) (*models.DeliveryAgent, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent name required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent email required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := security.HashPassword(input.Password, s.passCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         enums.UserRoleDelivery,
		IsActive:     true,
	}
	agent := &models.DeliveryAgent{
		UserID:      user.ID,
		IsAvailable: true,
		Status:      enums.AgentStatusActive,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		taken, err := repo.EmailTaken(ctx, email)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}

		if err := repo.CreateUser(ctx, user); err != nil {
			// The unique index can still lose a race after EmailTaken.
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		if err := repo.CreateAgent(ctx, agent); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create agent")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	agent.User = user
	return agent, nil
}

func (s *service) ListAgents(ctx context.Context) ([]models.DeliveryAgent, error) {
	agents, err := s.repo.ListAgents(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list agents")
	}
	return agents, nil
}

func (s *service) SetStatus(ctx context.Context, agentID uuid.UUID, status enums.AgentStatus) (*models.DeliveryAgent, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be active or blocked")
	}
	return s.applyUpdate(ctx, agentID, func(repo Repository) (bool, error) {
		return repo.UpdateStatus(ctx, agentID, status)
	})
}

func (s *service) SetPresence(ctx context.Context, agentID uuid.UUID, present bool) (*models.DeliveryAgent, error) {
	return s.applyUpdate(ctx, agentID, func(repo Repository) (bool, error) {
		return repo.UpdatePresence(ctx, agentID, present)
	})
}

func (s *service) SetAvailability(ctx context.Context, agentID uuid.UUID, available bool) (*models.DeliveryAgent, error) {
	return s.applyUpdate(ctx, agentID, func(repo Repository) (bool, error) {
		return repo.UpdateAvailability(ctx, agentID, available)
	})
}

func (s *service) applyUpdate(ctx context.Context, agentID uuid.UUID, update func(Repository) (bool, error)) (*models.DeliveryAgent, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent id required")
	}

	updated, err := update(s.repo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update agent")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery agent not found")
	}

	agent, err := s.repo.FindAgent(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery agent not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent")
	}
	return agent, nil
}
