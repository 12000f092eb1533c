package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/services"
	"github.com/tenacity/erp/internal/middleware"
)

// FeeController handles fee payments
type FeeController struct {
	feeService services.FeeService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService services.FeeService) *FeeController {
	return &FeeController{
		feeService: feeService,
	}
}

// GetLedger lists recorded payments
// @Summary Fee ledger
// @Description Lists payments newest first with the total collected
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Only payments of this student"
// @Success 200 {object} dto.APIResponse{data=dto.FeeLedgerResponse} "Ledger"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Router /fees [get]
func (c *FeeController) GetLedger(ctx *gin.Context) {
	res, err := c.feeService.Ledger(ctx, viewerFrom(ctx), ctx.Query("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, res)
}

// RecordPayment appends a payment and archives its receipt
// @Summary Record payment
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PaymentRequest true "Payment"
// @Success 201 {object} dto.APIResponse{data=dto.PaymentResponse} "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid amount, fee type or date"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "Unknown student"
// @Router /fees [post]
func (c *FeeController) RecordPayment(ctx *gin.Context) {
	var req dto.PaymentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res, warnings, err := c.feeService.RecordPayment(ctx, viewerFrom(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, res, warnings...)
}

// GetReceipt downloads the receipt of a payment
// @Summary Download receipt
// @Tags fees
// @Produce application/pdf
// @Security BearerAuth
// @Param receiptId path string true "Receipt ID"
// @Success 200 {file} file "Receipt PDF"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Router /fees/{receiptId}/receipt.pdf [get]
func (c *FeeController) GetReceipt(ctx *gin.Context) {
	viewer := viewerFrom(ctx)
	receiptID := ctx.Param("receiptId")
	sendDocument(ctx, contentTypePDF, func(buf *bytes.Buffer) (string, error) {
		return c.feeService.WriteReceipt(ctx, viewer, receiptID, buf)
	})
}
