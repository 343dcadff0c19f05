package api

import (
	"io"
	"net/http"

	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	maxWebhookBody     = 64 << 10
	stripeSignatureHdr = "Stripe-Signature"
)

type WebhookHandler struct {
	intake commands.PaymentEventIntake
}

func NewWebhookHandler(intake commands.PaymentEventIntake) *WebhookHandler {
	return &WebhookHandler{intake: intake}
}

// @Summary Stripe webhook
// @Description Verifies the signature and reconciles the event. Non-2xx makes Stripe redeliver.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} resdto.WebhookAckResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) Stripe(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable payload", nil)
		return
	}

	if _, err := h.intake.Accept(c.Request.Context(), payload, c.GetHeader(stripeSignatureHdr)); err != nil {
		if errs.Is(err, errs.ErrInvalidPaymentEvent) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid webhook payload", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Webhook processing failed", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.WebhookAckResponse{Received: true})
}
