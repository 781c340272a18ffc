package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	app "github.com/murkotick/catalog-purchase-service/internal/app/catalog"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/queries/list_products"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/purchase_product"
	"github.com/murkotick/catalog-purchase-service/internal/transport/payload"
)

// Server is a thin gin adapter over the catalog handlers.
type Server struct {
	engine   *gin.Engine
	commands app.Commands
	queries  app.Queries
	logger   *slog.Logger
}

func NewServer(cmd app.Commands, qry app.Queries, logger *slog.Logger) *Server {
	r := gin.New()
	r.Use(gin.Recovery(), WithRequestID(), WithLogging(logger))
	s := &Server{engine: r, commands: cmd, queries: qry, logger: logger}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.POST("", s.createProduct)
		products.GET("", s.listProducts)
		products.POST("/buy", s.purchaseProduct)
		products.GET("/:id", s.getProduct)
		products.PUT("/:id", s.updateProduct)
		products.DELETE("/:id", s.deleteProduct)
		products.POST("/:id/restock", s.restockProduct)
	}
}

func (s *Server) createProduct(c *gin.Context) {
	body, ok := s.bindBody(c)
	if !ok {
		return
	}
	req, err := payload.Create(body)
	if err != nil {
		s.fail(c, err, "creating product", "")
		return
	}
	out, err := s.commands.Create.Execute(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err, "creating product", "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": payload.MsgCreated, "product": out})
}

func (s *Server) getProduct(c *gin.Context) {
	id := c.Param("id")
	out, err := s.queries.Get.Execute(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "getting product", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": payload.MsgFound(id), "product": out})
}

func (s *Server) listProducts(c *gin.Context) {
	var q list_products.Query
	if v, ok := c.GetQuery("category"); ok && v != "" {
		q.Category = &v
	}
	var err error
	if q.Limit, err = queryInt(c, "limit"); err != nil {
		s.fail(c, err, "listing products", "")
		return
	}
	if q.Offset, err = queryInt(c, "offset"); err != nil {
		s.fail(c, err, "listing products", "")
		return
	}

	items, err := s.queries.List.Execute(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err, "listing products", "")
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": payload.MsgNoProducts})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": items})
}

func (s *Server) updateProduct(c *gin.Context) {
	id := c.Param("id")
	body, ok := s.bindBody(c)
	if !ok {
		return
	}
	req, err := payload.Update(id, body)
	if err != nil {
		s.fail(c, err, "updating the product", id)
		return
	}
	if err := s.commands.Update.Execute(c.Request.Context(), req); err != nil {
		s.fail(c, err, "updating the product", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": payload.MsgUpdated(id)})
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := s.commands.Delete.Execute(c.Request.Context(), id); err != nil {
		s.fail(c, err, "deleting product", id)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) purchaseProduct(c *gin.Context) {
	body, ok := s.bindBody(c)
	if !ok {
		return
	}
	req, err := payload.Purchase(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.commands.Purchase.Execute(c.Request.Context(), req)
	switch {
	case err == nil:
	case domain.KindOf(err) == domain.KindNotFound:
		c.JSON(http.StatusBadRequest, gin.H{"error": payload.MsgNotFound(req.ProductID)})
		return
	case domain.KindOf(err) == domain.KindDownstream:
		s.logger.Error("purchase failed", "product_id", req.ProductID, "error", err,
			"request_id", RequestIDFromContext(c.Request.Context()))
		c.JSON(statusFor(err), gin.H{"error": payload.MsgPurchaseFailed})
		return
	default:
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("purchase", "product_id", req.ProductID, "user_quantity", req.Quantity,
		"outcome", res.Outcome.String(), "request_id", RequestIDFromContext(c.Request.Context()))

	if res.Outcome == purchase_product.Backordered {
		c.JSON(http.StatusOK, gin.H{"message": payload.MsgBackordered, "notice": res.Notice})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": payload.MsgPurchased, "receipt": res.Receipt})
}

func (s *Server) restockProduct(c *gin.Context) {
	id := c.Param("id")
	out, err := s.commands.Restock.Execute(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "restocking product", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": payload.MsgRestocked, "product": out})
}

// bindBody decodes a JSON object body, answering 400 itself on failure.
func (s *Server) bindBody(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return nil, false
	}
	return body, true
}

// fail writes the error response for err. Downstream causes are logged and
// replaced by a generic message naming op.
func (s *Server) fail(c *gin.Context, err error, op, id string) {
	status := statusFor(err)
	switch status {
	case http.StatusNotFound:
		c.JSON(status, gin.H{"error": payload.MsgNotFound(id)})
	case http.StatusBadRequest, http.StatusConflict:
		c.JSON(status, gin.H{"error": err.Error()})
	default:
		s.logger.Error(op+" failed", "product_id", id, "error", err,
			"request_id", RequestIDFromContext(c.Request.Context()))
		c.JSON(status, gin.H{"error": payload.MsgFailed(op)})
	}
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.Invalid("%s must be an integer", key)
	}
	return n, nil
}
