package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/config"
	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
)

type stubAgentsRepo struct {
	emailTaken    bool
	createdUser   *models.User
	createdAgent  *models.DeliveryAgent
	agent         *models.DeliveryAgent
	updateOK      bool
	statusSet     *enums.AgentStatus
	presenceSet   *bool
	availableSet  *bool
}

func (s *stubAgentsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubAgentsRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.emailTaken, nil
}

func (s *stubAgentsRepo) CreateUser(ctx context.Context, user *models.User) error {
	s.createdUser = user
	return nil
}

func (s *stubAgentsRepo) CreateAgent(ctx context.Context, agent *models.DeliveryAgent) error {
	s.createdAgent = agent
	return nil
}

func (s *stubAgentsRepo) FindAgent(ctx context.Context, agentID uuid.UUID) (*models.DeliveryAgent, error) {
	if s.agent == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.agent, nil
}

func (s *stubAgentsRepo) ListAgents(ctx context.Context) ([]models.DeliveryAgent, error) {
	return nil, nil
}

func (s *stubAgentsRepo) UpdateStatus(ctx context.Context, agentID uuid.UUID, status enums.AgentStatus) (bool, error) {
	s.statusSet = &status
	return s.updateOK, nil
}

func (s *stubAgentsRepo) UpdatePresence(ctx context.Context, agentID uuid.UUID, present bool) (bool, error) {
	s.presenceSet = &present
	return s.updateOK, nil
}

func (s *stubAgentsRepo) UpdateAvailability(ctx context.Context, agentID uuid.UUID, available bool) (bool, error) {
	s.availableSet = &available
	return s.updateOK, nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newAgentsService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTx{}, testPasswordConfig(), nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestCreateAgentProvisionsUserAndAgent(t *testing.T) {
	repo := &stubAgentsRepo{}
	svc := newAgentsService(t, repo)

	agent, err := svc.CreateAgent(context.Background(), CreateAgentInput{
		Name:     "Ravi",
		Email:    "Ravi@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.createdUser == nil || repo.createdAgent == nil {
		t.Fatal("expected user and agent rows")
	}
	if repo.createdUser.Email != "ravi@example.com" {
		t.Fatalf("email must be lowercased, got %q", repo.createdUser.Email)
	}
	if repo.createdUser.Role != enums.UserRoleDelivery {
		t.Fatalf("role = %s, want delivery", repo.createdUser.Role)
	}
	if !strings.HasPrefix(repo.createdUser.PasswordHash, "$argon2id$") {
		t.Fatalf("password must be argon2id hashed, got %q", repo.createdUser.PasswordHash)
	}
	if !agent.IsAvailable || agent.Status != enums.AgentStatusActive {
		t.Fatalf("new agent must start active and available, got %+v", agent)
	}
	if agent.IsPresent != nil {
		t.Fatal("presence starts unrecorded")
	}
}

func TestCreateAgentRejectsDuplicateEmail(t *testing.T) {
	svc := newAgentsService(t, &stubAgentsRepo{emailTaken: true})

	_, err := svc.CreateAgent(context.Background(), CreateAgentInput{
		Name:     "Ravi",
		Email:    "ravi@example.com",
		Password: "correct-horse",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateAgentRejectsShortPassword(t *testing.T) {
	svc := newAgentsService(t, &stubAgentsRepo{})

	_, err := svc.CreateAgent(context.Background(), CreateAgentInput{
		Name:     "Ravi",
		Email:    "ravi@example.com",
		Password: "short",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	svc := newAgentsService(t, &stubAgentsRepo{updateOK: true})

	_, err := svc.SetStatus(context.Background(), uuid.New(), "suspended")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetStatusUnknownAgent(t *testing.T) {
	svc := newAgentsService(t, &stubAgentsRepo{updateOK: false})

	_, err := svc.SetStatus(context.Background(), uuid.New(), enums.AgentStatusBlocked)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetPresenceWritesFlag(t *testing.T) {
	agentID := uuid.New()
	repo := &stubAgentsRepo{updateOK: true, agent: &models.DeliveryAgent{UserID: agentID}}
	svc := newAgentsService(t, repo)

	if _, err := svc.SetPresence(context.Background(), agentID, false); err != nil {
		t.Fatalf("set presence: %v", err)
	}
	if repo.presenceSet == nil || *repo.presenceSet {
		t.Fatal("expected presence recorded as false")
	}
}
