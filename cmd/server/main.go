package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/grpc"

	app "github.com/murkotick/catalog-purchase-service/internal/app/catalog"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/backorders"
	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/queries/get_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/queries/list_products"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/receipts"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/repo"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/create_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/delete_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/purchase_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/restock_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/update_product"
	"github.com/murkotick/catalog-purchase-service/internal/config"
	"github.com/murkotick/catalog-purchase-service/internal/obs"
	"github.com/murkotick/catalog-purchase-service/internal/pkg/clock"
	committer "github.com/murkotick/catalog-purchase-service/internal/pkg/committer"
	grpccatalog "github.com/murkotick/catalog-purchase-service/internal/transport/grpc/catalog"
	httpcatalog "github.com/murkotick/catalog-purchase-service/internal/transport/http/catalog"
)

// leaves holds the three external dependencies and how to release them.
type leaves struct {
	store   contracts.ProductStore
	sink    contracts.ReceiptSink
	queue   contracts.BackorderQueue
	closers []func()
}

func (l *leaves) close() {
	for i := len(l.closers) - 1; i >= 0; i-- {
		l.closers[i]()
	}
}

func main() {
	cfg := config.Load()
	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l, err := connect(ctx, cfg)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer l.close()

	clk := clock.RealClock{}
	cmds := app.Commands{
		Create:   create_product.NewInteractor(l.store, clk),
		Update:   update_product.NewInteractor(l.store, clk),
		Delete:   delete_product.NewInteractor(l.store, clk),
		Purchase: purchase_product.NewInteractor(l.store, l.sink, l.queue, clk, cfg.BackorderDelay, cfg.BackorderAuthor),
		Restock:  restock_product.NewInteractor(l.store, clk, cfg.RestockQuantity),
	}
	qrys := app.Queries{
		Get:  get_product.NewHandler(l.store),
		List: list_products.NewHandler(l.store),
	}

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpcatalog.NewServer(cmds, qrys, logger).Engine(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr, "store", cfg.StoreBackend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	var grpcServer *grpc.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Error("grpc listen", "addr", cfg.GRPCAddr, "error", err)
			os.Exit(1)
		}
		grpcServer = grpc.NewServer()
		grpccatalog.RegisterCatalogServiceServer(grpcServer, grpccatalog.NewHandler(cmds, qrys, logger))
		go func() {
			logger.Info("grpc server listening", "addr", cfg.GRPCAddr)
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("grpc serve", "error", err)
				stop()
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}

	if grpcServer != nil {
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
		}
	}

	logger.Info("server stopped")
}

// connect builds the leaves for the configured backend. Memory mode needs no
// external services.
func connect(ctx context.Context, cfg config.Config) (*leaves, error) {
	if cfg.StoreBackend == config.BackendMemory {
		return &leaves{
			store: repo.NewMemoryStore(),
			sink:  receipts.NewMemorySink(),
			queue: backorders.NewMemoryQueue(),
		}, nil
	}

	l := &leaves{}
	ok := false
	defer func() {
		if !ok {
			l.close()
		}
	}()

	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return nil, err
	}
	l.closers = append(l.closers, spannerClient.Close)
	l.store = repo.NewSpannerStore(spannerClient, committer.NewAdapter(spannerClient))

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	l.closers = append(l.closers, func() { _ = mongoClient.Disconnect(context.Background()) })
	l.sink = receipts.NewGridFSSink(mongoClient.Database(cfg.MongoDatabase))

	conn, err := amqp.Dial(cfg.RabbitMQURI)
	if err != nil {
		return nil, err
	}
	l.closers = append(l.closers, func() { _ = conn.Close() })
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	l.closers = append(l.closers, func() { _ = ch.Close() })
	if err := backorders.Declare(ch, cfg.BackorderQueue); err != nil {
		return nil, err
	}
	l.queue = backorders.NewRabbitMQQueue(ch, cfg.BackorderQueue)

	ok = true
	return l, nil
}
