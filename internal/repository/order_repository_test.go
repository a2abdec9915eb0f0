package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func TestOrderCreatePersistsOrderAndItemsTogether(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	order := &models.ShopOrder{
		BusinessID:    1,
		OrderNo:       "SF-TEST-0001",
		CustomerEmail: "buyer@example.com",
		Status:        constants.OrderStatusDraft,
		TotalCents:    7500,
	}
	items := []models.ShopOrderItem{
		{ProductID: "p1", ProductName: "Shampoo", UnitPriceCents: 2500, Quantity: 3, LineTotalCents: 7500},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected order id to be assigned")
	}

	var count int64
	if err := db.Model(&models.ShopOrderItem{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("item count want 1 got %d", count)
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if got == nil || len(got.Items) != 1 || got.Items[0].OrderID != order.ID {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestOrderGetByIdempotencyKey(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := &models.ShopOrder{
		BusinessID:     1,
		OrderNo:        "SF-TEST-0002",
		Status:         constants.OrderStatusDraft,
		IdempotencyKey: "idem-abc",
	}
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByIdempotencyKey("idem-abc")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got == nil || got.ID != order.ID {
		t.Fatalf("unexpected order: %+v", got)
	}

	missing, err := repo.GetByIdempotencyKey("idem-missing")
	if err != nil {
		t.Fatalf("lookup missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown key, got %+v", missing)
	}
	empty, err := repo.GetByIdempotencyKey("")
	if err != nil {
		t.Fatalf("lookup empty failed: %v", err)
	}
	if empty != nil {
		t.Fatalf("expected nil for empty key, got %+v", empty)
	}
}

func TestOrderUpdateStatusWithExtraFields(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	order := &models.ShopOrder{
		BusinessID: 1,
		OrderNo:    "SF-TEST-0003",
		Status:     constants.OrderStatusDraft,
	}
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	now := time.Now()
	err := repo.UpdateStatus(order.ID, constants.OrderStatusPaid, map[string]interface{}{
		"payment_id": "sq_12345",
		"paid_at":    &now,
	})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	var reloaded models.ShopOrder
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPaid {
		t.Fatalf("status want paid got %s", reloaded.Status)
	}
	if reloaded.PaymentID != "sq_12345" {
		t.Fatalf("payment id want sq_12345 got %s", reloaded.PaymentID)
	}
	if reloaded.PaidAt == nil {
		t.Fatal("expected paid_at to be set")
	}
}
