package order

import (
	"testing"

	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/buildmart/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShippingAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress(
		"99/1 Rama IX Rd", "Huai Khwang", "Huai Khwang", "Bangkok", "10310",
		valueobject.WithPhone("0812345678"),
	)
	require.NoError(t, err)
	return addr
}

func createTestOrder(t *testing.T, paymentType PaymentType) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), "INV-20260101-0001", paymentType, testShippingAddress(t))
	require.NoError(t, err)
	return o
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestNewOrder(t *testing.T) {
	t.Run("bank transfer starts in waiting_payment", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)

		assert.Equal(t, StatusWaitingPayment, o.Status)
		assert.NotEqual(t, uuid.Nil, o.ID)
		assert.True(t, o.TotalAmount.IsZero())
		assert.Empty(t, o.Lines)
	})

	t.Run("cash on delivery starts in pending", func(t *testing.T) {
		o := createTestOrder(t, PaymentCashOnDelivery)

		assert.Equal(t, StatusPending, o.Status)
	})

	t.Run("raises order placed event", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("fails with nil user ID", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, "INV-1", PaymentBankTransfer, testShippingAddress(t))

		assertDomainErrorCode(t, err, "INVALID_USER")
	})

	t.Run("fails with empty invoice number", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "", PaymentBankTransfer, testShippingAddress(t))

		assertDomainErrorCode(t, err, "INVALID_INVOICE_NUMBER")
	})

	t.Run("fails with unknown payment type", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "INV-1", PaymentType("credit_card"), testShippingAddress(t))

		assertDomainErrorCode(t, err, "INVALID_PAYMENT_TYPE")
	})

	t.Run("fails with empty shipping address", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "INV-1", PaymentBankTransfer, valueobject.EmptyAddress())

		assertDomainErrorCode(t, err, "INVALID_ADDRESS")
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"waiting_payment to pending", StatusWaitingPayment, StatusPending, true},
		{"waiting_payment to preparing", StatusWaitingPayment, StatusPreparing, false},
		{"waiting_payment to cancelled", StatusWaitingPayment, StatusCancelled, true},
		{"pending to preparing", StatusPending, StatusPreparing, true},
		{"pending to shipped", StatusPending, StatusShipped, false},
		{"pending to refunding", StatusPending, StatusRefunding, true},
		{"preparing to shipped", StatusPreparing, StatusShipped, true},
		{"preparing to delivered", StatusPreparing, StatusDelivered, false},
		{"preparing to req_cancel", StatusPreparing, StatusReqCancel, true},
		{"shipped to delivered", StatusShipped, StatusDelivered, true},
		{"shipped to pending", StatusShipped, StatusPending, false},
		{"req_cancel to cancelled", StatusReqCancel, StatusCancelled, true},
		{"req_cancel to refunding", StatusReqCancel, StatusRefunding, true},
		{"req_cancel to pending", StatusReqCancel, StatusPending, false},
		{"refunding to refunded", StatusRefunding, StatusRefunded, true},
		{"refunding to cancelled", StatusRefunding, StatusCancelled, false},
		{"delivered is terminal", StatusDelivered, StatusRefunding, false},
		{"refunded is terminal", StatusRefunded, StatusRefunding, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	for _, s := range []Status{
		StatusWaitingPayment, StatusPending, StatusPreparing,
		StatusShipped, StatusReqCancel, StatusRefunding,
	} {
		assert.False(t, s.IsTerminal(), "status %s", s)
	}
}

func TestCancellationTarget(t *testing.T) {
	tests := []struct {
		name           string
		slipRef        string
		paymentChecked bool
		review         ReviewStatus
		want           Status
	}{
		{"verified payment refunds", "slip-1", true, ReviewAccepted, StatusRefunding},
		{"verified payment refunds even without slip", "", true, ReviewNone, StatusRefunding},
		{"unverified slip needs review", "slip-1", false, ReviewPending, StatusReqCancel},
		{"slip without review state needs review", "slip-1", false, ReviewNone, StatusReqCancel},
		{"rejected slip cancels outright", "slip-1", false, ReviewRejected, StatusCancelled},
		{"no payment evidence cancels outright", "", false, ReviewNone, StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CancellationTarget(tt.slipRef, tt.paymentChecked, tt.review))
		})
	}
}

func TestNewLine(t *testing.T) {
	orderID := uuid.New()
	productID := uuid.New()

	t.Run("snapshots product data and computes discounted subtotal", func(t *testing.T) {
		price := valueobject.NewMoneyTHBFromFloat(100.00)

		line, err := NewLine(orderID, productID, "Portland Cement 50kg", "TPI", "bag",
			"https://cdn.example.com/cement.jpg", 3, price, decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.Equal(t, "Portland Cement 50kg", line.ProductName)
		assert.Equal(t, "TPI", line.Brand)
		assert.Equal(t, "bag", line.Unit)
		assert.Equal(t, int64(3), line.Quantity)
		// 100 * 0.9 * 3 = 270.00
		assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(270)), "got %s", line.Subtotal)
	})

	t.Run("zero discount keeps full price", func(t *testing.T) {
		price := valueobject.NewMoneyTHBFromFloat(45.50)

		line, err := NewLine(orderID, productID, "Rebar 12mm", "SYS", "pc", "", 4, price, decimal.Zero)

		require.NoError(t, err)
		assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(182)), "got %s", line.Subtotal)
	})

	t.Run("fails with quantity below one", func(t *testing.T) {
		_, err := NewLine(orderID, productID, "Rebar 12mm", "SYS", "pc", "", 0,
			valueobject.NewMoneyTHBFromFloat(45.50), decimal.Zero)

		assertDomainErrorCode(t, err, "INVALID_QUANTITY")
	})

	t.Run("fails with nil product ID", func(t *testing.T) {
		_, err := NewLine(orderID, uuid.Nil, "Rebar 12mm", "SYS", "pc", "", 1,
			valueobject.NewMoneyTHBFromFloat(45.50), decimal.Zero)

		assertDomainErrorCode(t, err, "INVALID_PRODUCT")
	})

	t.Run("fails with empty product name", func(t *testing.T) {
		_, err := NewLine(orderID, productID, "", "SYS", "pc", "", 1,
			valueobject.NewMoneyTHBFromFloat(45.50), decimal.Zero)

		assertDomainErrorCode(t, err, "INVALID_PRODUCT_NAME")
	})
}

func TestOrder_AddLine(t *testing.T) {
	o := createTestOrder(t, PaymentBankTransfer)

	line1, err := NewLine(o.ID, uuid.New(), "Cement", "TPI", "bag", "", 2,
		valueobject.NewMoneyTHBFromFloat(150.00), decimal.Zero)
	require.NoError(t, err)
	line2, err := NewLine(o.ID, uuid.New(), "Sand", "Local", "m3", "", 1,
		valueobject.NewMoneyTHBFromFloat(480.00), decimal.NewFromInt(5))
	require.NoError(t, err)

	o.AddLine(*line1)
	o.AddLine(*line2)

	assert.Equal(t, 2, o.LineCount())
	// 300 + 456 = 756
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(756)), "got %s", o.TotalAmount)
	for _, line := range o.Lines {
		assert.Equal(t, o.ID, line.OrderID)
	}
}

func TestOrder_AttachTransferSlip(t *testing.T) {
	t.Run("records the slip and marks review pending without changing status", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)

		err := o.AttachTransferSlip("slips/abc123.jpg")

		require.NoError(t, err)
		assert.Equal(t, StatusWaitingPayment, o.Status)
		assert.Equal(t, "slips/abc123.jpg", o.TransferSlipRef)
		assert.Equal(t, ReviewPending, o.ReviewStatus)
	})

	t.Run("re-upload replaces the slip and resets a rejected review", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)
		require.NoError(t, o.AttachTransferSlip("slips/first.jpg"))
		require.NoError(t, o.RejectPayment())

		err := o.AttachTransferSlip("slips/second.jpg")

		require.NoError(t, err)
		assert.Equal(t, "slips/second.jpg", o.TransferSlipRef)
		assert.Equal(t, ReviewPending, o.ReviewStatus)
	})

	t.Run("fails outside waiting_payment", func(t *testing.T) {
		o := createTestOrder(t, PaymentCashOnDelivery)

		err := o.AttachTransferSlip("slips/abc123.jpg")

		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})

	t.Run("fails with empty slip reference", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)

		err := o.AttachTransferSlip("")

		assertDomainErrorCode(t, err, "INVALID_INPUT")
	})
}

func TestOrder_AcceptPayment(t *testing.T) {
	t.Run("moves to pending and marks payment checked", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)
		require.NoError(t, o.AttachTransferSlip("slips/abc.jpg"))

		err := o.AcceptPayment()

		require.NoError(t, err)
		assert.Equal(t, StatusPending, o.Status)
		assert.True(t, o.PaymentChecked)
		assert.Equal(t, ReviewAccepted, o.ReviewStatus)
	})

	t.Run("fails without an uploaded slip", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)

		err := o.AcceptPayment()

		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})

	t.Run("fails when order is already pending", func(t *testing.T) {
		o := createTestOrder(t, PaymentCashOnDelivery)

		err := o.AcceptPayment()

		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})
}

func TestOrder_RejectPayment(t *testing.T) {
	t.Run("marks review rejected and stays in waiting_payment", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)
		require.NoError(t, o.AttachTransferSlip("slips/abc.jpg"))

		err := o.RejectPayment()

		require.NoError(t, err)
		assert.Equal(t, StatusWaitingPayment, o.Status)
		assert.Equal(t, ReviewRejected, o.ReviewStatus)
		assert.False(t, o.PaymentChecked)
	})

	t.Run("fails without an uploaded slip", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)

		err := o.RejectPayment()

		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})
}

func TestOrder_FulfilmentFlow(t *testing.T) {
	t.Run("pending through delivered", func(t *testing.T) {
		o := createTestOrder(t, PaymentCashOnDelivery)

		require.NoError(t, o.StartPreparing())
		assert.Equal(t, StatusPreparing, o.Status)

		require.NoError(t, o.Ship("Kerry Express", "KEX123456789"))
		assert.Equal(t, StatusShipped, o.Status)
		assert.Equal(t, "Kerry Express", o.ShippingCarrier)
		assert.Equal(t, "KEX123456789", o.TrackingNumber)

		require.NoError(t, o.MarkDelivered())
		assert.Equal(t, StatusDelivered, o.Status)
		require.NotNil(t, o.DeliveredAt)
		assert.True(t, o.IsTerminal())
	})

	t.Run("ship requires carrier and tracking number", func(t *testing.T) {
		o := createTestOrder(t, PaymentCashOnDelivery)
		require.NoError(t, o.StartPreparing())

		err := o.Ship("", "KEX123456789")
		assertDomainErrorCode(t, err, "INVALID_INPUT")

		err = o.Ship("Kerry Express", "")
		assertDomainErrorCode(t, err, "INVALID_INPUT")

		// Failed validation must not advance the status
		assert.Equal(t, StatusPreparing, o.Status)
	})

	t.Run("cannot prepare before payment", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)

		err := o.StartPreparing()

		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})

	t.Run("terminal order rejects further transitions", func(t *testing.T) {
		o := createTestOrder(t, PaymentCashOnDelivery)
		require.NoError(t, o.StartPreparing())
		require.NoError(t, o.Ship("Kerry Express", "KEX1"))
		require.NoError(t, o.MarkDelivered())

		assertDomainErrorCode(t, o.StartPreparing(), "INVALID_TRANSITION")
		_, err := o.RequestCancel("changed my mind")
		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})
}

func TestOrder_RequestCancel(t *testing.T) {
	t.Run("no payment evidence cancels outright", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)

		target, err := o.RequestCancel("ordered the wrong size")

		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, target)
		assert.Equal(t, StatusCancelled, o.Status)
		assert.Equal(t, "ordered the wrong size", o.CancelReason)
	})

	t.Run("pending slip parks the order in req_cancel", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)
		require.NoError(t, o.AttachTransferSlip("slips/abc.jpg"))

		target, err := o.RequestCancel("found a better price")

		require.NoError(t, err)
		assert.Equal(t, StatusReqCancel, target)
		assert.Equal(t, StatusReqCancel, o.Status)
	})

	t.Run("rejected slip cancels outright", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)
		require.NoError(t, o.AttachTransferSlip("slips/abc.jpg"))
		require.NoError(t, o.RejectPayment())

		target, err := o.RequestCancel("no longer needed")

		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, target)
	})

	t.Run("checked payment moves to refunding", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)
		require.NoError(t, o.AttachTransferSlip("slips/abc.jpg"))
		require.NoError(t, o.AcceptPayment())

		target, err := o.RequestCancel("project postponed")

		require.NoError(t, err)
		assert.Equal(t, StatusRefunding, target)
		assert.Equal(t, StatusRefunding, o.Status)
	})

	t.Run("requires a reason", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)

		_, err := o.RequestCancel("")

		assertDomainErrorCode(t, err, "MISSING_CANCELLATION_REASON")
		assert.Equal(t, StatusWaitingPayment, o.Status)
	})

	t.Run("cannot re-enter the cancellation branch", func(t *testing.T) {
		o := createTestOrder(t, PaymentBankTransfer)
		require.NoError(t, o.AttachTransferSlip("slips/abc.jpg"))
		_, err := o.RequestCancel("first request")
		require.NoError(t, err)

		_, err = o.RequestCancel("second request")

		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})
}

func TestOrder_ResolveCancelRequest(t *testing.T) {
	newReqCancelOrder := func(t *testing.T) *Order {
		o := createTestOrder(t, PaymentBankTransfer)
		require.NoError(t, o.AttachTransferSlip("slips/abc.jpg"))
		_, err := o.RequestCancel("changed my mind")
		require.NoError(t, err)
		require.Equal(t, StatusReqCancel, o.Status)
		return o
	}

	t.Run("without refund moves to cancelled", func(t *testing.T) {
		o := newReqCancelOrder(t)

		require.NoError(t, o.ResolveCancelRequest(false))

		assert.Equal(t, StatusCancelled, o.Status)
	})

	t.Run("with refund moves to refunding then refunded", func(t *testing.T) {
		o := newReqCancelOrder(t)

		require.NoError(t, o.ResolveCancelRequest(true))
		assert.Equal(t, StatusRefunding, o.Status)

		require.NoError(t, o.ConfirmRefund())
		assert.Equal(t, StatusRefunded, o.Status)
		assert.True(t, o.IsTerminal())
	})

	t.Run("fails outside req_cancel", func(t *testing.T) {
		o := createTestOrder(t, PaymentCashOnDelivery)

		err := o.ResolveCancelRequest(false)

		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})
}

func TestOrder_ConfirmRefund(t *testing.T) {
	t.Run("fails outside refunding", func(t *testing.T) {
		o := createTestOrder(t, PaymentCashOnDelivery)

		err := o.ConfirmRefund()

		assertDomainErrorCode(t, err, "INVALID_TRANSITION")
	})
}

func TestNewAuditEntry(t *testing.T) {
	orderID := uuid.New()
	actorID := uuid.New()

	entry := NewAuditEntry(orderID, StatusPending, actorID, "admin")

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, orderID, entry.OrderID)
	assert.Equal(t, StatusPending, entry.Status)
	assert.Equal(t, actorID, entry.ActorID)
	assert.Equal(t, "admin", entry.ActorRole)
	assert.False(t, entry.CreatedAt.IsZero())
}
