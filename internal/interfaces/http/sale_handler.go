package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/application/dto"
)

// SaleHandler emisión y consulta de facturas.
type SaleHandler struct {
	create *billing.CreateSaleUseCase
	query  *billing.SaleQueryUseCase
	pdf    *billing.PDFUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *billing.CreateSaleUseCase, query *billing.SaleQueryUseCase, pdf *billing.PDFUseCase) *SaleHandler {
	return &SaleHandler{create: create, query: query, pdf: pdf}
}

// Create godoc
// @Summary      Emitir factura
// @Description  Valida el carrito, liquida IVA 10% (0 en régimen turismo), verifica el timbrado,
// @Description  asigna el siguiente número EEE-PPP-NNNNNNN y persiste todo en una transacción.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSaleRequest  true  "carrito"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	sale, err := h.create.CreateSale(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List GET /api/sales?limit=20&offset=0
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := bindQuery(c, &page); !ok {
		return err
	}
	list, err := h.query.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.query.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sale)
}

// Print GET /api/sales/:id/print devuelve factura, cliente y empresa para el ticket.
func (h *SaleHandler) Print(c *fiber.Ctx) error {
	out, err := h.query.Print(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF GET /api/sales/:id/pdf
func (h *SaleHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadSalePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
