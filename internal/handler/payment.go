package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusgate/student-portal/internal/model"
	"github.com/campusgate/student-portal/internal/queue"
	"github.com/campusgate/student-portal/internal/repository"
	queue_publisher "github.com/campusgate/student-portal/internal/service"
	"github.com/campusgate/student-portal/internal/utils"
)

// PaymentHandler owns the payment endpoints: the fees-and-history listing
// and the processing endpoint, which dispatches on payment type between
// scratch-card redemption and a manual school-fees payment.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
	Cards    *repository.ScratchCardRepo
	Fees     *repository.SchoolFeeRepo
}

func NewPaymentHandler(payments *repository.PaymentRepo, cards *repository.ScratchCardRepo, fees *repository.SchoolFeeRepo) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Cards: cards, Fees: fees}
}

type processPaymentRequest struct {
	Amount            float64 `json:"amount"`
	PaymentType       string  `json:"paymentType"`
	Description       string  `json:"description"`
	SchoolFeeID       *uint64 `json:"schoolFeeId"`
	ScratchCardNumber string  `json:"scratchCardNumber"`
	ScratchCardPin    string  `json:"scratchCardPin"`
}

// List returns the student's fee schedule together with the most recent
// payments, each joined with the description of the fee it settles.
func (h *PaymentHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fees, err := h.Fees.ListByStudent(ctx, userID)
	if err != nil {
		c.Logger().Errorf("payments: list fees: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load payments"})
	}
	history, err := h.Payments.HistoryByStudent(ctx, userID, 20)
	if err != nil {
		c.Logger().Errorf("payments: list history: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load payments"})
	}

	feeItems := make([]echo.Map, 0, len(fees))
	for _, f := range fees {
		feeItems = append(feeItems, echo.Map{
			"id":          f.ID,
			"description": f.Description,
			"amount":      f.Amount,
			"due_date":    f.DueDate,
			"status":      f.Status,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"fees":           feeItems,
		"paymentHistory": history,
	})
}

// Process handles POST /v1/payments/process.  The scratch_card type runs
// the whole redemption in one transaction so a card can never fund two
// payments; school_fees records a pending manual payment with no balance
// checks.
func (h *PaymentHandler) Process(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	var req processPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.Amount <= 0 || req.PaymentType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Amount and payment type are required"})
	}

	switch req.PaymentType {
	case "scratch_card":
		return h.processScratchCard(c, userID, req)
	case "school_fees":
		return h.processSchoolFees(c, userID, req)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid payment type"})
	}
}

func (h *PaymentHandler) processScratchCard(c echo.Context, userID uint64, req processPaymentRequest) error {
	if req.ScratchCardNumber == "" || req.ScratchCardPin == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Scratch card number and PIN are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Payments.DB.BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("payment: begin tx: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Payment failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	card, err := h.Cards.FindByNumberAndPINTx(ctx, tx, req.ScratchCardNumber, req.ScratchCardPin)
	if err != nil {
		if err == repository.ErrInvalidCard {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid scratch card details"})
		}
		c.Logger().Errorf("payment: find card: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Payment failed"})
	}
	if card.IsUsed {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Scratch card has already been used"})
	}

	now := time.Now().UTC()
	if err := h.Cards.MarkUsedTx(ctx, tx, card.ID, userID, now); err != nil {
		if err == repository.ErrCardUsed {
			// Lost the race to a concurrent redemption of the same card.
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Scratch card has already been used"})
		}
		c.Logger().Errorf("payment: mark card used: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Payment failed"})
	}

	payment := model.Payment{
		StudentID:     userID,
		SchoolFeeID:   req.SchoolFeeID,
		Amount:        card.Denomination,
		PaymentType:   "scratch_card",
		Description:   req.Description,
		PaymentMethod: "scratch_card",
		Status:        "completed",
	}
	if payment.Description == "" {
		payment.Description = "Scratch card payment"
	}
	if err := insertWithReference(ctx, func(ref string) error {
		payment.ReferenceNumber = ref
		return h.Payments.InsertTx(ctx, tx, &payment)
	}); err != nil {
		c.Logger().Errorf("payment: insert ledger row: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Payment failed"})
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("payment: commit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Payment failed"})
	}
	committed = true

	// Best effort: the payment is already durable, a broker outage must
	// not fail the response.
	_ = queue_publisher.PublishPaymentCompleted(ctx, queue.PaymentCompletedEvent{
		PaymentID:       payment.ID,
		StudentID:       userID,
		Amount:          payment.Amount,
		PaymentType:     payment.PaymentType,
		ReferenceNumber: payment.ReferenceNumber,
		CardNumber:      card.CardNumber,
		CompletedAt:     now.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success":         true,
		"message":         "Payment processed successfully",
		"referenceNumber": payment.ReferenceNumber,
		"amount":          payment.Amount,
	})
}

func (h *PaymentHandler) processSchoolFees(c echo.Context, userID uint64, req processPaymentRequest) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payment := model.Payment{
		StudentID:     userID,
		SchoolFeeID:   req.SchoolFeeID,
		Amount:        req.Amount,
		PaymentType:   "school_fees",
		Description:   req.Description,
		PaymentMethod: "manual",
		Status:        "pending",
	}
	if payment.Description == "" {
		payment.Description = "School fees payment"
	}
	if err := insertWithReference(ctx, func(ref string) error {
		payment.ReferenceNumber = ref
		return h.Payments.Insert(ctx, &payment)
	}); err != nil {
		c.Logger().Errorf("payment: insert ledger row: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Payment failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":         true,
		"message":         "Payment processed successfully",
		"referenceNumber": payment.ReferenceNumber,
		"amount":          payment.Amount,
	})
}

// insertWithReference runs the insert with a freshly generated reference,
// regenerating on the unlikely unique-collision up to three times.
func insertWithReference(ctx context.Context, insert func(ref string) error) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		ref, genErr := utils.NewReferenceNumber()
		if genErr != nil {
			return genErr
		}
		err = insert(ref)
		if err != repository.ErrDuplicateReference {
			return err
		}
	}
	return err
}
