package payments

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/internal/orders"
	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
)

func setupPaymentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	agents := `
CREATE TABLE IF NOT EXISTS delivery_agents (
  user_id TEXT PRIMARY KEY,
  is_available NUMERIC NOT NULL DEFAULT 1,
  is_present NUMERIC,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`
	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  address TEXT NOT NULL,
  phone TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  payment_status NUMERIC NOT NULL DEFAULT 0,
  payment_session_id TEXT,
  delivery_boy_id TEXT,
  status TEXT NOT NULL,
  total_cents INTEGER NOT NULL,
  delivered_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  title TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  qty INTEGER NOT NULL,
  total_cents INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(agents).Error)
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(items).Error)
	return db
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// The idle check in the release query only passes once the failed order is
// gone, so Verify must delete before it releases. This runs against the real
// order store to catch a wrong ordering the stubs would forgive.
func TestVerifyFailureFreesAgentOnRealStore(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := orders.NewRepository(db)
	svc, err := NewService(&stubOrdersService{}, repo, gormTxRunner{db: db}, &stubAssigner{}, &stubCheckout{}, nil)
	require.NoError(t, err)

	agent := models.DeliveryAgent{
		UserID:      uuid.New(),
		IsAvailable: false,
		Status:      enums.AgentStatusActive,
	}
	require.NoError(t, db.Create(&agent).Error)

	sessionID := "cs_test_failed"
	order := models.Order{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		Name:             "Test Customer",
		Address:          "12 Spice Lane",
		Phone:            "9999999999",
		PaymentMethod:    enums.PaymentMethodStripe,
		PaymentSessionID: &sessionID,
		DeliveryBoyID:    &agent.UserID,
		Status:           enums.OrderStatusAssigned,
		TotalCents:       2000,
	}
	require.NoError(t, db.Create(&order).Error)

	result, err := svc.Verify(context.Background(), VerifyInput{
		OrderID:     order.ID,
		SessionID:   sessionID,
		Success:     false,
		ActorUserID: order.UserID,
	})
	require.NoError(t, err)
	assert.Nil(t, result)

	var remaining int64
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&remaining).Error)
	assert.Zero(t, remaining, "failed order must be removed")

	var reloaded models.DeliveryAgent
	require.NoError(t, db.First(&reloaded, "user_id = ?", agent.UserID).Error)
	assert.True(t, reloaded.IsAvailable, "agent availability must revert to true after failed payment")
}
