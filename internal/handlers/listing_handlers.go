package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"esatalim/internal/common"
	"esatalim/internal/models"
	"esatalim/internal/services"

	"github.com/labstack/echo/v4"
)

// ListingHandlers handles HTTP requests for listings (products)
type ListingHandlers struct {
	listingService services.ListingService
}

func NewListingHandlers(listingService services.ListingService) *ListingHandlers {
	return &ListingHandlers{listingService: listingService}
}

// ListProducts godoc
// @Summary      Browse listings
// @Description  Active listings filtered, sorted and paginated by query parameters
// @Tags         Products
// @Produce      json
// @Param        search     query  string  false  "Substring of title, description or tags"
// @Param        category   query  string  false  "Category id"
// @Param        minPrice   query  number  false  "Inclusive lower price bound"
// @Param        maxPrice   query  number  false  "Inclusive upper price bound"
// @Param        condition  query  string  false  "new, like_new, good, fair or poor"
// @Param        city       query  string  false  "City"
// @Param        featured   query  bool    false  "Only featured listings"
// @Param        sortBy     query  string  false  "createdAt, price or views; field:direction accepted"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        page       query  int     false  "Page, default 1"
// @Param        limit      query  int     false  "Page size, default 20, max 100"
// @Success      200  {object}  models.ListingPage
// @Failure      400  {object}  common.ErrorResponse
// @Router       /products [get]
func (h *ListingHandlers) ListProducts(c echo.Context) error {
	filter, err := services.ParseListingFilter(c.QueryParams())
	if err != nil {
		return err
	}

	page, err := h.listingService.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetProduct godoc
// @Summary      Get a listing
// @Description  Returns the populated listing and counts one view
// @Tags         Products
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  models.Listing
// @Failure      404  {object}  common.ErrorResponse
// @Router       /products/{id} [get]
func (h *ListingHandlers) GetProduct(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	listing, err := h.listingService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// ListSellerProducts handles GET /products/user/:userId
func (h *ListingHandlers) ListSellerProducts(c echo.Context) error {
	sellerID, err := common.ParseID(c.Param("userId"), "userId")
	if err != nil {
		return err
	}

	listings, err := h.listingService.ListBySeller(c.Request().Context(), sellerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// CreateProduct godoc
// @Summary      Publish a listing
// @Tags         Products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        title           formData  string  true   "Title"
// @Param        description     formData  string  true   "Description"
// @Param        price           formData  number  true   "Price"
// @Param        category        formData  string  true   "Category id"
// @Param        subcategory     formData  string  false  "Subcategory"
// @Param        condition       formData  string  true   "Condition"
// @Param        location        formData  string  true   "JSON object {city, district}"
// @Param        tags            formData  string  false  "JSON array of tags"
// @Param        specifications  formData  string  false  "JSON object of specifications"
// @Param        images          formData  file    true   "Up to 10 images"
// @Success      201  {object}  models.Listing
// @Failure      400  {object}  common.ErrorResponse
// @Failure      401  {object}  common.ErrorResponse
// @Router       /products [post]
func (h *ListingHandlers) CreateProduct(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	input, err := parseListingForm(c)
	if err != nil {
		return err
	}

	listing, err := h.listingService.Create(c.Request().Context(), caller, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, listing)
}

// UpdateProduct handles PUT /products/:id
func (h *ListingHandlers) UpdateProduct(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var update models.ListingUpdate
	if err := bindJSON(c, &update); err != nil {
		return err
	}

	listing, err := h.listingService.Update(c.Request().Context(), caller, id, &update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// SetFeatured handles PATCH /products/:id/featured (admin)
func (h *ListingHandlers) SetFeatured(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req struct {
		IsFeatured *bool `json:"isFeatured"`
	}
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.IsFeatured == nil {
		return common.NewValidationError("isFeatured", "isFeatured is required", nil)
	}

	listing, err := h.listingService.SetFeatured(c.Request().Context(), id, *req.IsFeatured)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// DeleteProduct handles DELETE /products/:id
func (h *ListingHandlers) DeleteProduct(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	if err := h.listingService.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// parseListingForm reads the multipart listing form. Structured fields
// arrive as JSON strings.
func parseListingForm(c echo.Context) (*models.ListingInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, common.NewValidationError("body", "Request must be multipart/form-data", nil)
	}

	input := &models.ListingInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Category:    strings.TrimSpace(c.FormValue("category")),
		Subcategory: c.FormValue("subcategory"),
		Condition:   models.Condition(strings.TrimSpace(c.FormValue("condition"))),
	}

	verr := &common.ValidationError{}
	decodeFormJSON(verr, c.FormValue("location"), "location", "Location must be a JSON object", &input.Location)
	decodeFormJSON(verr, c.FormValue("tags"), "tags", "Tags must be a JSON array of strings", &input.Tags)
	decodeFormJSON(verr, c.FormValue("specifications"), "specifications",
		"Specifications must be a JSON object of strings", &input.Specifications)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	for _, fh := range form.File["images"] {
		fh := fh // per-iteration copy for the Open closure (go < 1.22 loop semantics)
		input.Images = append(input.Images, models.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return input, nil
}

func decodeFormJSON(verr *common.ValidationError, raw, field, message string, dst interface{}) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		verr.Add(field, message, raw)
	}
}
