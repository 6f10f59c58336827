package services

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/amey40375/getshiny-mobile-care/events"
	"github.com/amey40375/getshiny-mobile-care/models"
)

// OrderDraft is a customer's order submission.
type OrderDraft struct {
	CustomerName     string `json:"customer_name"`
	CustomerAddress  string `json:"customer_address"`
	CustomerWhatsApp string `json:"customer_whatsapp"`
	ServiceType      string `json:"service_type"`
}

// OrderService owns the order entity and its status lifecycle.
type OrderService struct {
	db     *gorm.DB
	hub    *events.Hub
	mitras *MitraService
}

// NewOrderService creates an OrderService.
func NewOrderService(db *gorm.DB, hub *events.Hub, mitras *MitraService) *OrderService {
	return &OrderService{db: db, hub: hub, mitras: mitras}
}

// Submit creates a new order in status NEW with no mitra assigned.
func (s *OrderService) Submit(draft OrderDraft) (*models.Order, error) {
	draft.CustomerName = strings.TrimSpace(draft.CustomerName)
	draft.CustomerAddress = strings.TrimSpace(draft.CustomerAddress)
	draft.CustomerWhatsApp = strings.TrimSpace(draft.CustomerWhatsApp)
	draft.ServiceType = strings.TrimSpace(draft.ServiceType)

	switch {
	case draft.CustomerName == "":
		return nil, &ValidationError{Message: "customer name is required"}
	case draft.CustomerAddress == "":
		return nil, &ValidationError{Message: "customer address is required"}
	case draft.CustomerWhatsApp == "":
		return nil, &ValidationError{Message: "customer WhatsApp number is required"}
	case draft.ServiceType == "":
		return nil, &ValidationError{Message: "service type is required"}
	}

	var count int64
	if err := s.db.Model(&models.Service{}).
		Where("service_key = ?", draft.ServiceType).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check service catalog: %w", err)
	}
	if count == 0 {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown service type %q", draft.ServiceType)}
	}

	order := models.Order{
		CustomerName:     draft.CustomerName,
		CustomerAddress:  draft.CustomerAddress,
		CustomerWhatsApp: draft.CustomerWhatsApp,
		ServiceType:      draft.ServiceType,
		Status:           models.OrderStatusNew,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	log.WithFields(log.Fields{"order_id": order.ID, "service": order.ServiceType}).
		Info("order submitted")
	s.hub.Publish(events.Event{Topic: events.TopicOrders, Type: events.TypeOrderCreated, Payload: order})
	return &order, nil
}

// Claim assigns a NEW, unassigned order to an accepted mitra. Two mitra may
// race for the same order; the conditional update lets exactly one win and
// the loser gets a ConflictError.
func (s *OrderService) Claim(orderID, mitraUserID string) (*models.Order, error) {
	eligible, err := s.mitras.IsEligiblePartner(mitraUserID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, &AuthorizationError{Message: "only accepted mitra may claim orders"}
	}

	if _, err := s.Get(orderID); err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ? AND mitra_id IS NULL", orderID, models.OrderStatusNew).
		Updates(map[string]interface{}{
			"status":   models.OrderStatusInProgress,
			"mitra_id": mitraUserID,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to claim order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &ConflictError{Message: "order was already claimed"}
	}

	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"order_id": orderID, "mitra_id": mitraUserID}).
		Info("order claimed")
	s.hub.Publish(events.Event{Topic: events.TopicOrders, Type: events.TypeOrderUpdated, Payload: order})
	return order, nil
}

// Assign gives an order to an accepted mitra on behalf of an administrator.
// By default it carries the same precondition as Claim; with reassign set
// it also moves an IN_PROGRESS order to another mitra.
func (s *OrderService) Assign(orderID, mitraUserID string, reassign bool) (*models.Order, error) {
	eligible, err := s.mitras.IsEligiblePartner(mitraUserID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, &AuthorizationError{Message: "orders may only be assigned to accepted mitra"}
	}

	if _, err := s.Get(orderID); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.Order{})
	if reassign {
		query = query.Where("id = ? AND status IN ?", orderID,
			[]models.OrderStatus{models.OrderStatusNew, models.OrderStatusInProgress})
	} else {
		query = query.Where("id = ? AND status = ? AND mitra_id IS NULL", orderID, models.OrderStatusNew)
	}
	res := query.Updates(map[string]interface{}{
		"status":   models.OrderStatusInProgress,
		"mitra_id": mitraUserID,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to assign order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &ConflictError{Message: "order is no longer assignable"}
	}

	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"order_id": orderID, "mitra_id": mitraUserID, "reassign": reassign}).
		Info("order assigned")
	s.hub.Publish(events.Event{Topic: events.TopicOrders, Type: events.TypeOrderUpdated, Payload: order})
	return order, nil
}

// Advance moves an order to the next status along the lifecycle graph.
// Mitra-side statuses may only be entered by the assigned mitra; statuses
// owned by other operations (claim, assignment, cancellation) are rejected
// here even when the graph permits the transition.
func (s *OrderService) Advance(orderID string, next models.OrderStatus, callerID string) (*models.Order, error) {
	if !next.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown order status %q", string(next))}
	}
	if !next.AdvanceTarget() {
		return nil, &ValidationError{Message: fmt.Sprintf("status %s cannot be set by advancing the order", string(next))}
	}

	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, &InvalidTransitionError{From: order.Status, To: next}
	}
	if next.RequiresAssignedMitra() {
		if order.MitraID == nil || *order.MitraID != callerID {
			return nil, &AuthorizationError{Message: "only the assigned mitra may advance this order"}
		}
	}

	// Conditional on the status we read, so a concurrent transition cannot
	// be silently overwritten.
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Update("status", next)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to advance order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &ConflictError{Message: "order status changed concurrently"}
	}

	order.Status = next
	log.WithFields(log.Fields{"order_id": orderID, "status": next}).Info("order advanced")
	s.hub.Publish(events.Event{Topic: events.TopicOrders, Type: events.TypeOrderUpdated, Payload: order})
	return order, nil
}

// Cancel aborts an order. Cancellation is only permitted from NEW or
// IN_PROGRESS; DONE and CANCELLED are terminal.
func (s *OrderService) Cancel(orderID string) (*models.Order, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
		return nil, &InvalidTransitionError{From: order.Status, To: models.OrderStatusCancelled}
	}

	// The mitra reference only travels with the active statuses; a
	// cancelled order goes back to carrying none.
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Updates(map[string]interface{}{
			"status":   models.OrderStatusCancelled,
			"mitra_id": nil,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &ConflictError{Message: "order status changed concurrently"}
	}

	order.Status = models.OrderStatusCancelled
	order.MitraID = nil
	log.WithField("order_id", orderID).Info("order cancelled")
	s.hub.Publish(events.Event{Topic: events.TopicOrders, Type: events.TypeOrderUpdated, Payload: order})
	return order, nil
}

// Get loads a single order.
func (s *OrderService) Get(orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "order"}
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// ListAll returns every order, most recent first.
func (s *OrderService) ListAll() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListForMitra returns the orders visible to a mitra: unclaimed NEW orders
// plus the mitra's own active orders.
func (s *OrderService) ListForMitra(mitraUserID string) ([]models.Order, error) {
	active := []models.OrderStatus{
		models.OrderStatusInProgress,
		models.OrderStatusEnRoute,
		models.OrderStatusWorking,
	}
	var orders []models.Order
	err := s.db.
		Where("status = ? AND mitra_id IS NULL", models.OrderStatusNew).
		Or("mitra_id = ? AND status IN ?", mitraUserID, active).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mitra orders: %w", err)
	}
	return orders, nil
}
