package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nabeel-mp/foodish-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migration dir invalid: %v", err)
	}
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_orders.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no orders migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CHECK (status IN ('pending', 'assigned', 'shipped', 'delivered', 'cancelled'))",
		"CHECK (payment_method IN ('cod', 'stripe', 'upi'))",
		"FOREIGN KEY (delivery_boy_id) REFERENCES delivery_agents(user_id)",
		"DROP TABLE IF EXISTS orders",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestDeliveryAgentsMigrationCascadesFromUsers(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_delivery_agents.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no delivery agents migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS delivery_agents",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"is_present   BOOLEAN",
		"DROP TABLE IF EXISTS delivery_agents",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
