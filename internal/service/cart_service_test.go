package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.Create(&models.Business{Name: "Test Shop", Slug: "test-shop", Currency: "USD", IsActive: true}).Error; err != nil {
		t.Fatalf("create business failed: %v", err)
	}
	cartRepo := repository.NewCartRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	return NewCartService(cartRepo, businessRepo, 24), db
}

func TestGetOrCreateGeneratesTokenAndReusesCart(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	first, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if first.Cart.SessionToken == "" {
		t.Fatal("expected generated session token")
	}
	if first.Cart.Status != constants.CartStatusActive {
		t.Fatalf("status want active got %s", first.Cart.Status)
	}
	if first.Items == nil || len(first.Items) != 0 {
		t.Fatalf("expected empty item slice, got %+v", first.Items)
	}

	second, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1, SessionToken: first.Cart.SessionToken})
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if second.Cart.ID != first.Cart.ID {
		t.Fatalf("expected same cart, got %d and %d", first.Cart.ID, second.Cart.ID)
	}
}

func TestGetOrCreateUnknownBusiness(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	_, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 99})
	if !errors.Is(err, ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}

func TestAddItemComputesLineTotal(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	view, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}

	itemID, err := svc.AddItem(AddCartItemInput{
		SessionToken:   view.Cart.SessionToken,
		ProductID:      "p-100",
		ProductName:    "Conditioner",
		UnitPriceCents: 1250,
		Quantity:       3,
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	var item models.CartItem
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if item.LineTotalCents != 3750 {
		t.Fatalf("line total want 3750 got %d", item.LineTotalCents)
	}
}

func TestUpdateItemRecomputesLineTotal(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	view, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}
	itemID, err := svc.AddItem(AddCartItemInput{
		SessionToken:   view.Cart.SessionToken,
		ProductID:      "p-1",
		ProductName:    "Shampoo",
		UnitPriceCents: 2500,
		Quantity:       1,
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	err = svc.UpdateItem(UpdateCartItemInput{
		SessionToken: view.Cart.SessionToken,
		ItemID:       itemID,
		Quantity:     4,
	})
	if err != nil {
		t.Fatalf("update item failed: %v", err)
	}

	var item models.CartItem
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if item.Quantity != 4 || item.LineTotalCents != 10000 {
		t.Fatalf("unexpected item after update: %+v", item)
	}
}

func TestUpdateItemRejectsNonPositiveQuantityWithoutMutation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	view, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}
	itemID, err := svc.AddItem(AddCartItemInput{
		SessionToken:   view.Cart.SessionToken,
		ProductID:      "p-1",
		ProductName:    "Shampoo",
		UnitPriceCents: 2500,
		Quantity:       2,
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	for _, quantity := range []int{0, -3} {
		err := svc.UpdateItem(UpdateCartItemInput{
			SessionToken: view.Cart.SessionToken,
			ItemID:       itemID,
			Quantity:     quantity,
		})
		if !errors.Is(err, ErrQuantityInvalid) {
			t.Fatalf("quantity %d: expected ErrQuantityInvalid, got %v", quantity, err)
		}
	}

	var item models.CartItem
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if item.Quantity != 2 || item.LineTotalCents != 5000 {
		t.Fatalf("item mutated by rejected update: %+v", item)
	}
}

func TestUpdateItemUnknownItem(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	view, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}
	err = svc.UpdateItem(UpdateCartItemInput{
		SessionToken: view.Cart.SessionToken,
		ItemID:       12345,
		Quantity:     1,
	})
	if !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	view, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{
		SessionToken:   view.Cart.SessionToken,
		ProductID:      "p-1",
		ProductName:    "Shampoo",
		UnitPriceCents: 2500,
		Quantity:       1,
	}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if err := svc.Clear(view.Cart.SessionToken); err != nil {
		t.Fatalf("first clear failed: %v", err)
	}
	// 再次清空：购物车已 abandoned，查不到活跃车，视为成功
	if err := svc.Clear(view.Cart.SessionToken); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}

	var reloaded models.Cart
	if err := db.First(&reloaded, view.Cart.ID).Error; err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if reloaded.Status != constants.CartStatusAbandoned {
		t.Fatalf("status want abandoned got %s", reloaded.Status)
	}
}

func TestSetBookingDetailsRequiresServiceName(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	view, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}
	_, err = svc.SetBookingDetails(SetBookingInput{
		SessionToken: view.Cart.SessionToken,
		ServiceName:  "   ",
	})
	if !errors.Is(err, ErrServiceNameRequired) {
		t.Fatalf("expected ErrServiceNameRequired, got %v", err)
	}
}

func TestRemoveItemDeletesRow(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	view, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}
	itemID, err := svc.AddItem(AddCartItemInput{
		SessionToken:   view.Cart.SessionToken,
		ProductID:      "p-1",
		ProductName:    "Shampoo",
		UnitPriceCents: 2500,
		Quantity:       1,
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if err := svc.RemoveItem(RemoveCartItemInput{SessionToken: view.Cart.SessionToken, ItemID: itemID}); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("item count want 0 got %d", count)
	}
}

func TestRemoveItemUnknownItem(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	view, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}
	err = svc.RemoveItem(RemoveCartItemInput{SessionToken: view.Cart.SessionToken, ItemID: 999})
	if !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestSetBookingDetailsReturnsOwningCart(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	view, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}
	cart, err := svc.SetBookingDetails(SetBookingInput{
		SessionToken: view.Cart.SessionToken,
		ServiceName:  "Haircut",
	})
	if err != nil {
		t.Fatalf("set booking failed: %v", err)
	}
	if cart.ID != view.Cart.ID || cart.BusinessID != 1 {
		t.Fatalf("unexpected owning cart: %+v", cart)
	}
}

func TestGetOrCreateForeignBusinessTokenMintsFreshCart(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	if err := db.Create(&models.Business{Name: "Other Shop", Slug: "other-shop", Currency: "USD", IsActive: true}).Error; err != nil {
		t.Fatalf("create second business failed: %v", err)
	}
	view, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 1})
	if err != nil {
		t.Fatalf("get-or-create failed: %v", err)
	}

	other, err := svc.GetOrCreate(GetOrCreateCartInput{BusinessID: 2, SessionToken: view.Cart.SessionToken})
	if err != nil {
		t.Fatalf("get-or-create for second business failed: %v", err)
	}
	if other.Cart.ID == view.Cart.ID {
		t.Fatal("cart must not be shared across businesses")
	}
	if other.Cart.SessionToken == view.Cart.SessionToken {
		t.Fatal("expected a freshly minted token for the second business")
	}
}
