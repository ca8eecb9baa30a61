package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"profilo-crm/internal/domain"
	"profilo-crm/internal/importer"
	custrepo "profilo-crm/internal/repository/customer"
	customersvc "profilo-crm/internal/service/customer"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type customerHandler struct {
	svc       CustomerService
	logger    *log.Logger
	maxUpload int64
}

type customerRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
}

func (r customerRequest) toInput() customersvc.Input {
	return customersvc.Input{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Phone:         r.Phone,
		StreetAddress: r.StreetAddress,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
	}
}

type listResponse struct {
	Data       []domain.Customer `json:"data"`
	Pagination domain.PageResult `json:"pagination"`
}

// Error codes carried alongside human-readable messages so callers can
// react without parsing text.
// statusClientClosedRequest is nginx's non-standard code for a request the
// client abandoned; there is no stdlib equivalent.
const statusClientClosedRequest = 499

const (
	codeValidation = "validation_error"
	codeConflict   = "conflict"
	codeNotFound   = "not_found"
	codeBadUpload  = "bad_upload"
	codeInternal   = "internal_error"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"code": code, "error": message})
}

func (h *customerHandler) respondServiceError(c *gin.Context, op string, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusBadRequest, codeValidation, vErr.Error())
	case errors.Is(err, domain.ErrEmailExists):
		respondError(c, http.StatusConflict, codeConflict, "email already exists")
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, codeNotFound, "customer not found")
	default:
		h.logger.Printf("customers: %s error=%v", op, err)
		respondError(c, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

func (h *customerHandler) list(c *gin.Context) {
	token := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	rows, pageInfo, err := h.svc.List(c.Request.Context(), token, page, pageSize)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, codeNotFound, "no matching customers found")
			return
		}
		h.respondServiceError(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, listResponse{Data: rows, Pagination: pageInfo})
}

func (h *customerHandler) search(c *gin.Context) {
	filter := custrepo.Filter{
		Phone: c.Query("phone"),
		Name:  c.Query("name"),
		Email: c.Query("email"),
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	rows, err := h.svc.Search(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, codeNotFound, "no customers found")
			return
		}
		h.respondServiceError(c, "search", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h *customerHandler) get(c *gin.Context) {
	id, ok := h.customerID(c)
	if !ok {
		return
	}
	customer, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *customerHandler) create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, "all required fields must be provided")
		return
	}
	customer, err := h.svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.respondServiceError(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *customerHandler) update(c *gin.Context) {
	id, ok := h.customerID(c)
	if !ok {
		return
	}
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, "all required fields must be provided")
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req.toInput()); err != nil {
		h.respondServiceError(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer updated"})
}

func (h *customerHandler) delete(c *gin.Context) {
	id, ok := h.customerID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.respondServiceError(c, "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// importCSV accepts a multipart upload under the "file" field and runs the
// bulk-import pipeline over it. The multipart spool is released on every
// exit path; a release failure is logged but never masks the import outcome.
func (h *customerHandler) importCSV(c *gin.Context) {
	importID := uuid.NewString()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, codeBadUpload, "missing or malformed file upload")
		return
	}
	defer file.Close()
	defer func() {
		if form := c.Request.MultipartForm; form != nil {
			if err := form.RemoveAll(); err != nil {
				h.logger.Printf("customers: import id=%s spool cleanup error=%v", importID, err)
			}
		}
	}()

	h.logger.Printf("customers: import id=%s file=%s size=%d", importID, header.Filename, header.Size)

	result, err := h.svc.Import(c.Request.Context(), file)
	if err != nil {
		h.respondImportError(c, importID, err)
		return
	}

	h.logger.Printf("customers: import id=%s inserted=%d", importID, result.Inserted)
	c.JSON(http.StatusOK, result)
}

func (h *customerHandler) respondImportError(c *gin.Context, importID string, err error) {
	var (
		rejected *domain.ImportRejectedError
		columns  *importer.MissingColumnsError
		format   *importer.FormatError
	)
	switch {
	case errors.As(err, &rejected):
		h.logger.Printf("customers: import id=%s rejected rows=%d", importID, len(rejected.Rows))
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   codeValidation,
			"error":  rejected.Error(),
			"errors": rejected.Rows,
		})
	case errors.As(err, &columns):
		respondError(c, http.StatusBadRequest, codeBadUpload, columns.Error())
	case errors.As(err, &format):
		respondError(c, http.StatusBadRequest, codeBadUpload, format.Error())
	case errors.Is(err, domain.ErrEmailExists):
		respondError(c, http.StatusConflict, codeConflict, "import contains an email that already exists")
	case c.Request.Context().Err() != nil:
		// Client went away mid-stream; nothing was persisted and there is
		// no one left to answer, but the access log should not record a
		// success.
		h.logger.Printf("customers: import id=%s aborted: %v", importID, err)
		c.AbortWithStatus(statusClientClosedRequest)
	default:
		h.logger.Printf("customers: import id=%s error=%v", importID, err)
		respondError(c, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

func (h *customerHandler) customerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, http.StatusBadRequest, codeValidation, "invalid customer id")
		return 0, false
	}
	return id, true
}
