package order

import (
	"fmt"
	"time"

	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/buildmart/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusWaitingPayment Status = "waiting_payment"
	StatusPending        Status = "pending"
	StatusPreparing      Status = "preparing"
	StatusShipped        Status = "shipped"
	StatusDelivered      Status = "delivered"
	StatusReqCancel      Status = "req_cancel"
	StatusRefunding      Status = "refunding"
	StatusRefunded       Status = "refunded"
	StatusCancelled      Status = "cancelled"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusWaitingPayment, StatusPending, StatusPreparing, StatusShipped,
		StatusDelivered, StatusReqCancel, StatusRefunding, StatusRefunded, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusRefunded || s == StatusCancelled
}

// InCancellationBranch reports whether the order has already entered
// the cancellation flow. Stock is released exactly once, on entry.
func (s Status) InCancellationBranch() bool {
	return s == StatusReqCancel || s == StatusRefunding || s == StatusRefunded || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	// Any non-terminal state may enter the cancellation branch; the
	// concrete target is picked by CancellationTarget.
	if !s.InCancellationBranch() &&
		(target == StatusCancelled || target == StatusRefunding || target == StatusReqCancel) {
		return true
	}
	switch s {
	case StatusWaitingPayment:
		return target == StatusPending
	case StatusPending:
		return target == StatusPreparing
	case StatusPreparing:
		return target == StatusShipped
	case StatusShipped:
		return target == StatusDelivered
	case StatusReqCancel:
		return target == StatusCancelled || target == StatusRefunding
	case StatusRefunding:
		return target == StatusRefunded
	}
	return false
}

// PaymentType is how the customer pays for an order
type PaymentType string

const (
	PaymentBankTransfer   PaymentType = "bank_transfer"
	PaymentCashOnDelivery PaymentType = "cod"
)

// IsValid checks if the payment type is known
func (p PaymentType) IsValid() bool {
	return p == PaymentBankTransfer || p == PaymentCashOnDelivery
}

// InitialStatus returns the status a freshly placed order starts in
func (p PaymentType) InitialStatus() Status {
	if p == PaymentBankTransfer {
		return StatusWaitingPayment
	}
	return StatusPending
}

// ReviewStatus is the admin review state of an uploaded transfer slip
type ReviewStatus string

const (
	ReviewNone     ReviewStatus = ""
	ReviewPending  ReviewStatus = "pending_review"
	ReviewAccepted ReviewStatus = "accepted"
	ReviewRejected ReviewStatus = "rejected"
)

// CancellationTarget picks the state a cancellation lands in. It is a
// pure function of the payment evidence at the moment of cancellation:
// a verified payment needs a refund, an unverified slip needs a human
// decision, and anything else cancels outright.
//
// A checked payment is routed to refunding even without a slip on
// record. AcceptPayment requires a slip, so the combination cannot
// occur today, but money confirmed received must never cancel outright.
func CancellationTarget(slipRef string, paymentChecked bool, review ReviewStatus) Status {
	if paymentChecked {
		return StatusRefunding
	}
	if slipRef != "" && review != ReviewRejected {
		return StatusReqCancel
	}
	return StatusCancelled
}

// Line is an immutable snapshot of a product at checkout time.
// Later catalog edits never change what the customer bought.
type Line struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ProductID       uuid.UUID
	ProductName     string
	Brand           string
	Unit            string
	Quantity        int64
	UnitPrice       decimal.Decimal // list price per unit at checkout
	DiscountPercent decimal.Decimal
	Subtotal        decimal.Decimal // quantity * discounted unit price
	ImageURL        string
	CreatedAt       time.Time
}

// NewLine snapshots a product into an order line
func NewLine(orderID, productID uuid.UUID, name, brand, unit, imageURL string, quantity int64, unitPrice valueobject.Money, discountPercent decimal.Decimal) (*Line, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	effective := unitPrice.ApplyDiscount(discountPercent)
	subtotal := effective.MultiplyByInt(quantity).Round(2)

	return &Line{
		ID:              uuid.New(),
		OrderID:         orderID,
		ProductID:       productID,
		ProductName:     name,
		Brand:           brand,
		Unit:            unit,
		Quantity:        quantity,
		UnitPrice:       unitPrice.Amount(),
		DiscountPercent: discountPercent,
		Subtotal:        subtotal.Amount(),
		ImageURL:        imageURL,
		CreatedAt:       time.Now(),
	}, nil
}

// SubtotalMoney returns the line subtotal as Money
func (l *Line) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyTHB(l.Subtotal)
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "order_lines"
}

// Order is the aggregate root for a placed order. It owns the line
// snapshots and the status state machine.
type Order struct {
	shared.BaseAggregateRoot
	InvoiceNumber   string    `gorm:"uniqueIndex:uq_orders_invoice_number"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderDate       time.Time
	Status          Status
	PaymentType     PaymentType
	TotalAmount     decimal.Decimal
	ShippingAddress valueobject.Address `gorm:"type:jsonb"`
	TransferSlipRef string
	PaymentChecked  bool
	ReviewStatus    ReviewStatus
	ShippingCarrier string
	TrackingNumber  string
	CancelReason    string
	PaymentDueAt    *time.Time // advisory display deadline, never enforced
	DeliveredAt     *time.Time
	Lines           []Line `gorm:"foreignKey:OrderID"`
}

// NewOrder creates an order in the initial status for its payment type
func NewOrder(userID uuid.UUID, invoiceNumber string, paymentType PaymentType, shipping valueobject.Address) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", fmt.Sprintf("Unknown payment type %q", paymentType))
	}
	if shipping.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address cannot be empty")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		UserID:            userID,
		OrderDate:         time.Now(),
		Status:            paymentType.InitialStatus(),
		PaymentType:       paymentType,
		TotalAmount:       decimal.Zero,
		ShippingAddress:   shipping,
		Lines:             make([]Line, 0),
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// AddLine appends a snapshot line and recalculates the total.
// Lines are only attached while the order is being assembled at checkout.
func (o *Order) AddLine(line Line) {
	line.OrderID = o.ID
	o.Lines = append(o.Lines, line)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
}

// SetPaymentDue records the advisory bank-transfer deadline
func (o *Order) SetPaymentDue(due time.Time) {
	o.PaymentDueAt = &due
}

// AttachTransferSlip records an uploaded payment slip reference.
// The status does not change; the slip waits for admin review.
// Re-uploading replaces the previous slip and resets the review.
func (o *Order) AttachTransferSlip(slipRef string) error {
	if o.Status != StatusWaitingPayment {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot attach a payment slip to an order in %s status", o.Status))
	}
	if slipRef == "" {
		return shared.NewDomainError("INVALID_INPUT", "Slip reference cannot be empty")
	}

	o.TransferSlipRef = slipRef
	o.ReviewStatus = ReviewPending
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewPaymentSlipAttachedEvent(o))

	return nil
}

// AcceptPayment confirms the transfer slip and releases the order for fulfilment
func (o *Order) AcceptPayment() error {
	if !o.Status.CanTransitionTo(StatusPending) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot accept payment for an order in %s status", o.Status))
	}
	if o.TransferSlipRef == "" {
		return shared.NewDomainError("INVALID_TRANSITION", "No payment slip to accept")
	}

	o.Status = StatusPending
	o.PaymentChecked = true
	o.ReviewStatus = ReviewAccepted
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewPaymentAcceptedEvent(o))

	return nil
}

// RejectPayment marks the slip as rejected. The order stays in
// waiting_payment so the customer can upload a corrected slip.
func (o *Order) RejectPayment() error {
	if o.Status != StatusWaitingPayment {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot reject payment for an order in %s status", o.Status))
	}
	if o.TransferSlipRef == "" {
		return shared.NewDomainError("INVALID_TRANSITION", "No payment slip to reject")
	}

	o.ReviewStatus = ReviewRejected
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewPaymentRejectedEvent(o))

	return nil
}

// StartPreparing begins fulfilment
func (o *Order) StartPreparing() error {
	return o.transitionTo(StatusPreparing)
}

// Ship records the carrier handoff
func (o *Order) Ship(carrier, trackingNumber string) error {
	if carrier == "" || trackingNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Carrier and tracking number are required")
	}
	if err := o.transitionTo(StatusShipped); err != nil {
		return err
	}
	o.ShippingCarrier = carrier
	o.TrackingNumber = trackingNumber
	return nil
}

// MarkDelivered completes the order
func (o *Order) MarkDelivered() error {
	if err := o.transitionTo(StatusDelivered); err != nil {
		return err
	}
	now := time.Now()
	o.DeliveredAt = &now
	return nil
}

// RequestCancel moves the order into the cancellation branch. The
// target state depends on the payment evidence, see CancellationTarget.
// Returns the target so the caller can release reserved stock; entry
// into the branch happens at most once per order.
func (o *Order) RequestCancel(reason string) (Status, error) {
	if reason == "" {
		return "", shared.NewDomainError("MISSING_CANCELLATION_REASON", "Cancellation reason is required")
	}
	if o.Status.IsTerminal() || o.Status.InCancellationBranch() {
		return "", shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot cancel an order in %s status", o.Status))
	}

	target := CancellationTarget(o.TransferSlipRef, o.PaymentChecked, o.ReviewStatus)
	from := o.Status
	o.Status = target
	o.CancelReason = reason
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderCancelRequestedEvent(o, from, target))

	return target, nil
}

// ConfirmRefund finishes the refund flow
func (o *Order) ConfirmRefund() error {
	return o.transitionTo(StatusRefunded)
}

// ResolveCancelRequest settles a pending cancellation request. When
// refund is true the order moves to refunding, otherwise it cancels.
func (o *Order) ResolveCancelRequest(refund bool) error {
	if o.Status != StatusReqCancel {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("No cancellation request to resolve in %s status", o.Status))
	}
	if refund {
		return o.transitionTo(StatusRefunding)
	}
	return o.transitionTo(StatusCancelled)
}

// transitionTo applies a guarded status change and raises the
// status-changed event.
func (o *Order) transitionTo(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	from := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))

	return nil
}

// recalculateTotal sums the line subtotals. The total is always
// derived server-side, never taken from the client.
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal)
	}
	o.TotalAmount = total
}

// TotalAmountMoney returns the order total as Money
func (o *Order) TotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyTHB(o.TotalAmount)
}

// IsTerminal reports whether the order is in a terminal state
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// LineCount returns the number of lines on the order
func (o *Order) LineCount() int {
	return len(o.Lines)
}
