package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercadito/marketplace-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/products. Anonymous callers only see active
// products; authenticated callers see everything.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search    query     string  false  "Substring match over name, code and description"
// @Param        ordering  query     string  false  "created_at, price or name, optionally prefixed with -"
// @Success      200       {array}   productResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context(), ports.ListProductsInput{
		Authenticated: ctxAuthenticated(c),
		Search:        c.QueryParam("search"),
		Ordering:      c.QueryParam("ordering"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// MyProducts handles GET /api/products/my_products — the requester's
// own listings.
//
// @Summary      List the requester's own products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   productResponse
// @Failure      401  {object}  map[string]string
// @Router       /products/my_products [get]
func (h *ProductHandler) MyProducts(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	products, err := h.service.MyProducts(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// Get handles GET /api/products/:slugOrID. Lookup is by slug first,
// then by id; direct retrieval ignores the active-only filter.
//
// @Summary      Get a product by slug or id
// @Tags         products
// @Produce      json
// @Param        slugOrID  path      string  true  "Product slug (preferred) or id"
// @Success      200       {object}  productResponse
// @Failure      404       {object}  map[string]string
// @Router       /products/{slugOrID} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("slugOrID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

// Create handles POST /api/products. Vendors and staff only; the
// requester becomes the owner.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), actor, toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(p))
}

// Update handles PUT /api/products/:slugOrID — a full update.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slugOrID  path      string                true  "Product slug or id"
// @Param        body      body      createProductRequest  true  "Replacement field values"
// @Success      200       {object}  productResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /products/{slugOrID} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), actor, c.Param("slugOrID"), toFullUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

// PartialUpdate handles PATCH /api/products/:slugOrID — only the
// provided fields change.
//
// @Summary      Partially update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slugOrID  path      string               true  "Product slug or id"
// @Param        body      body      patchProductRequest  true  "Fields to change"
// @Success      200       {object}  productResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /products/{slugOrID} [patch]
func (h *ProductHandler) PartialUpdate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req patchProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), actor, c.Param("slugOrID"), toPartialUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

// Delete handles DELETE /api/products/:slugOrID — a permanent removal.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        slugOrID  path  string  true  "Product slug or id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{slugOrID} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("slugOrID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
