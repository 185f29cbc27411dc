package order

import (
	"context"
	"errors"

	"github.com/buildmart/backend/internal/domain/order"
	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor identifies who is performing a transition for the audit trail
type Actor struct {
	ID   uuid.UUID
	Role string
}

// Service drives the order state machine. Every transition re-reads
// the order inside a transaction, applies the domain rule, saves under
// an optimistic version check and appends one audit entry. A version
// conflict is retried once against a fresh read.
type Service struct {
	scope  TransactionScope
	audit  order.AuditRepository
	orders order.Repository
	logger *zap.Logger
}

// NewService creates a new order service
func NewService(scope TransactionScope, orders order.Repository, audit order.AuditRepository, logger *zap.Logger) *Service {
	return &Service{
		scope:  scope,
		orders: orders,
		audit:  audit,
		logger: logger,
	}
}

// GetByID returns an order the user owns, with its status history
func (s *Service) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*Response, error) {
	o, err := s.orders.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	history, err := s.audit.HistoryByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return ToResponse(o, history), nil
}

// GetByIDAdmin returns any order with its status history
func (s *Service) GetByIDAdmin(ctx context.Context, orderID uuid.UUID) (*Response, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	history, err := s.audit.HistoryByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return ToResponse(o, history), nil
}

// ListByUser returns the user's orders, newest first
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, query ListQuery) (*shared.Paginated[SummaryResponse], error) {
	filter := filterFromQuery(query)
	orders, err := s.orders.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return paginate(orders, total, filter), nil
}

// List returns all orders for the admin view, optionally by status
func (s *Service) List(ctx context.Context, query ListQuery) (*shared.Paginated[SummaryResponse], error) {
	filter := filterFromQuery(query)
	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return paginate(orders, total, filter), nil
}

// StatusSummary counts orders per status for the admin dashboard
func (s *Service) StatusSummary(ctx context.Context) (*StatusSummaryResponse, error) {
	statuses := []order.Status{
		order.StatusWaitingPayment, order.StatusPending, order.StatusPreparing,
		order.StatusShipped, order.StatusDelivered, order.StatusReqCancel,
		order.StatusRefunding, order.StatusRefunded, order.StatusCancelled,
	}
	counts := make(map[order.Status]int64, len(statuses))
	for _, st := range statuses {
		n, err := s.orders.CountByStatus(ctx, st)
		if err != nil {
			return nil, err
		}
		counts[st] = n
	}
	return &StatusSummaryResponse{Counts: counts}, nil
}

// AttachSlip records an uploaded transfer slip on the customer's order.
// The status does not change; the slip goes into review.
func (s *Service) AttachSlip(ctx context.Context, actor Actor, orderID uuid.UUID, req AttachSlipRequest) (*Response, error) {
	return s.transition(ctx, actor, orderID, true, func(o *order.Order) error {
		return o.AttachTransferSlip(req.SlipRef)
	})
}

// AcceptPayment confirms the transfer slip and moves the order to pending
func (s *Service) AcceptPayment(ctx context.Context, actor Actor, orderID uuid.UUID) (*Response, error) {
	return s.transition(ctx, actor, orderID, false, func(o *order.Order) error {
		return o.AcceptPayment()
	})
}

// RejectPayment marks the slip rejected; the order stays in waiting_payment
func (s *Service) RejectPayment(ctx context.Context, actor Actor, orderID uuid.UUID) (*Response, error) {
	return s.transition(ctx, actor, orderID, false, func(o *order.Order) error {
		return o.RejectPayment()
	})
}

// StartPreparing begins fulfilment
func (s *Service) StartPreparing(ctx context.Context, actor Actor, orderID uuid.UUID) (*Response, error) {
	return s.transition(ctx, actor, orderID, false, func(o *order.Order) error {
		return o.StartPreparing()
	})
}

// Ship records the carrier handoff
func (s *Service) Ship(ctx context.Context, actor Actor, orderID uuid.UUID, req ShipRequest) (*Response, error) {
	return s.transition(ctx, actor, orderID, false, func(o *order.Order) error {
		return o.Ship(req.Carrier, req.TrackingNumber)
	})
}

// MarkDelivered completes the order. An admin may mark any order
// delivered; a customer may only confirm receipt of their own.
func (s *Service) MarkDelivered(ctx context.Context, actor Actor, orderID uuid.UUID) (*Response, error) {
	return s.transition(ctx, actor, orderID, true, func(o *order.Order) error {
		return o.MarkDelivered()
	})
}

// ConfirmRefund finishes the refund flow
func (s *Service) ConfirmRefund(ctx context.Context, actor Actor, orderID uuid.UUID) (*Response, error) {
	return s.transition(ctx, actor, orderID, false, func(o *order.Order) error {
		return o.ConfirmRefund()
	})
}

// ResolveCancel settles a pending cancellation request
func (s *Service) ResolveCancel(ctx context.Context, actor Actor, orderID uuid.UUID, req ResolveCancelRequest) (*Response, error) {
	return s.transition(ctx, actor, orderID, false, func(o *order.Order) error {
		return o.ResolveCancelRequest(req.Refund)
	})
}

// Cancel moves the order into the cancellation branch and releases the
// reserved stock. Entering the branch happens at most once per order,
// so the release cannot double-count.
func (s *Service) Cancel(ctx context.Context, actor Actor, orderID uuid.UUID, req CancelRequest) (*Response, error) {
	var result *Response
	run := func(repos TransactionalRepositories) error {
		o, err := s.loadFor(ctx, repos, actor, orderID)
		if err != nil {
			return err
		}

		target, err := o.RequestCancel(req.Reason)
		if err != nil {
			return err
		}

		for _, line := range o.Lines {
			item, err := repos.Stock().FindByProductIDForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if err := item.Release(line.Quantity, o.ID); err != nil {
				return err
			}
			if err := repos.Stock().Save(ctx, item); err != nil {
				return err
			}
		}

		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		if err := repos.Audit().Append(ctx, order.NewAuditEntry(o.ID, target, actor.ID, actor.Role)); err != nil {
			return err
		}

		result = ToResponse(o, nil)
		return nil
	}

	if err := s.executeWithRetry(ctx, run); err != nil {
		return nil, err
	}

	s.logger.Info("order cancellation requested",
		zap.String("order_id", orderID.String()),
		zap.String("target_status", string(result.Status)),
		zap.String("actor_role", actor.Role))

	return result, nil
}

// transition applies a single state-machine move inside a transaction.
// When the mutation leaves the status unchanged (slip upload, payment
// rejection) the audit entry still records who acted and when.
func (s *Service) transition(ctx context.Context, actor Actor, orderID uuid.UUID, ownerOnly bool, mutate func(*order.Order) error) (*Response, error) {
	var result *Response
	run := func(repos TransactionalRepositories) error {
		var (
			o   *order.Order
			err error
		)
		if ownerOnly {
			o, err = s.loadFor(ctx, repos, actor, orderID)
		} else {
			o, err = repos.Orders().FindByID(ctx, orderID)
		}
		if err != nil {
			return err
		}

		if err := mutate(o); err != nil {
			return err
		}

		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		if err := repos.Audit().Append(ctx, order.NewAuditEntry(o.ID, o.Status, actor.ID, actor.Role)); err != nil {
			return err
		}

		result = ToResponse(o, nil)
		return nil
	}

	if err := s.executeWithRetry(ctx, run); err != nil {
		return nil, err
	}

	s.logger.Info("order transition applied",
		zap.String("order_id", orderID.String()),
		zap.String("status", string(result.Status)),
		zap.String("actor_role", actor.Role))

	return result, nil
}

// executeWithRetry retries a version conflict once. The second attempt
// re-reads the order, so a transition that became illegal in between
// fails with INVALID_TRANSITION instead of silently overwriting.
func (s *Service) executeWithRetry(ctx context.Context, run func(repos TransactionalRepositories) error) error {
	err := s.scope.Execute(ctx, run)
	if !isConcurrencyConflict(err) {
		return err
	}

	s.logger.Warn("version conflict on order save, retrying once")
	return s.scope.Execute(ctx, run)
}

// loadFor scopes the read to the acting customer; admins see all orders
func (s *Service) loadFor(ctx context.Context, repos TransactionalRepositories, actor Actor, orderID uuid.UUID) (*order.Order, error) {
	if actor.Role == "admin" {
		return repos.Orders().FindByID(ctx, orderID)
	}
	return repos.Orders().FindByIDForUser(ctx, actor.ID, orderID)
}

func isConcurrencyConflict(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "CONCURRENCY_CONFLICT"
}

func filterFromQuery(query ListQuery) shared.Filter {
	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 && query.PageSize <= 100 {
		filter.PageSize = query.PageSize
	}
	if query.Status != "" {
		filter.Filters["status"] = query.Status
	}
	filter.OrderBy = "order_date"
	return filter
}

func paginate(orders []order.Order, total int64, filter shared.Filter) *shared.Paginated[SummaryResponse] {
	items := make([]SummaryResponse, len(orders))
	for i := range orders {
		items[i] = ToSummaryResponse(&orders[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page
}
