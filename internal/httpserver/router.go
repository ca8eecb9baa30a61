package httpserver

import (
	"context"
	"io"
	"log"

	"profilo-crm/internal/domain"
	"profilo-crm/internal/importer"
	custrepo "profilo-crm/internal/repository/customer"
	customersvc "profilo-crm/internal/service/customer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerService is the slice of the customer service the transport needs.
type CustomerService interface {
	List(ctx context.Context, token string, page, pageSize int) ([]domain.Customer, domain.PageResult, error)
	Search(ctx context.Context, f custrepo.Filter, page, pageSize int) ([]domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, in customersvc.Input) (*domain.Customer, error)
	Update(ctx context.Context, id int64, in customersvc.Input) error
	Delete(ctx context.Context, id int64) error
	Import(ctx context.Context, r io.Reader) (*importer.Result, error)
}

// Deps lists the services the router depends on.
type Deps struct {
	CustomerSvc CustomerService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, maxUploadBytes int64) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/", welcomeHandler)
	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &customerHandler{
		svc:       deps.CustomerSvc,
		logger:    logger,
		maxUpload: maxUploadBytes,
	}
	router.GET("/customers", h.list)
	router.GET("/customers/search", h.search)
	router.GET("/customers/:id", h.get)
	router.POST("/customers", h.create)
	router.PUT("/customers/:id", h.update)
	router.DELETE("/customers/:id", h.delete)
	router.POST("/customers/import", h.importCSV)

	return router
}
