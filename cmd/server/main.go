package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/postlaunch"
	"github.com/murkotick/product-launch-service/internal/app/product/queries"
	"github.com/murkotick/product-launch-service/internal/app/product/queries/get_product"
	"github.com/murkotick/product-launch-service/internal/app/product/queries/list_products"
	"github.com/murkotick/product-launch-service/internal/app/product/repo"
	"github.com/murkotick/product-launch-service/internal/app/product/repo/memory"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/launch_product"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/update_stock"
	"github.com/murkotick/product-launch-service/internal/config"
	"github.com/murkotick/product-launch-service/internal/pkg/clock"
	"github.com/murkotick/product-launch-service/internal/pkg/committer"
	"github.com/murkotick/product-launch-service/internal/pkg/logging"
	grpcproduct "github.com/murkotick/product-launch-service/internal/transport/grpc/product"
)

func main() {
	app := &cli.App{
		Name:  "launch-server",
		Usage: "serve the product launch gRPC API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "gRPC listen address (overrides LAUNCH_GRPC_ADDR)"},
			&cli.StringFlag{Name: "store", Usage: "storage backend: spanner or memory (overrides LAUNCH_STORE)"},
			&cli.StringFlag{Name: "spanner-database", Usage: "Spanner database path (overrides LAUNCH_SPANNER_DATABASE)"},
			&cli.StringFlag{Name: "redis-addr", Usage: "Redis address for launch notifications (overrides LAUNCH_REDIS_ADDR)"},
			&cli.StringFlag{Name: "log-level", Usage: "log level (overrides LAUNCH_LOG_LEVEL)"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("server failed")
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if c.IsSet("addr") {
		cfg.GRPCAddr = c.String("addr")
	}
	if c.IsSet("store") {
		cfg.Store = c.String("store")
	}
	if c.IsSet("spanner-database") {
		cfg.SpannerDatabase = c.String("spanner-database")
	}
	if c.IsSet("redis-addr") {
		cfg.RedisAddr = c.String("redis-addr")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, cfg.Validate()
}

// backend is the storage side selected by configuration.
type backend struct {
	uow       contracts.UnitOfWorkFactory
	readModel contracts.ReadModel
	close     func()
}

func openBackend(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*backend, error) {
	if cfg.Store == config.StoreMemory {
		store := memory.NewStore()
		// a demo owner so launches work out of the box
		owner, err := domain.NewUser(1, "Demo", "Owner", "owner@example.com", time.Now().UTC())
		if err != nil {
			return nil, err
		}
		store.AddUser(owner)
		log.Warn("using in-memory store; data is lost on restart")
		return &backend{uow: store, readModel: memory.NewReadModel(store), close: func() {}}, nil
	}

	client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return nil, errors.Wrap(err, "spanner client")
	}
	return &backend{
		uow:       repo.NewUnitOfWorkFactory(committer.NewAdapter(client)),
		readModel: queries.NewSpannerReadModel(client),
		close:     client.Close,
	}, nil
}

func notifier(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (launch_product.PostCommitAction, func()) {
	if cfg.RedisAddr == "" {
		return postlaunch.LogNotifier{Logger: log}, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis not reachable; notifications may fail")
	}
	return postlaunch.NewRedisNotifier(client, cfg.RedisChannel, log), func() { _ = client.Close() }
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	notify, closeNotify := notifier(ctx, cfg, log)
	defer closeNotify()

	clk := clock.RealClock{}
	launch := launch_product.NewInteractor(be.uow, clk, log,
		launch_product.WithPostCommitActions(
			postlaunch.NewPublishProcedure(be.uow, clk, log),
			notify,
		),
		launch_product.WithPostCommitTimeout(cfg.PostCommitTimeout),
	)

	// CQRS wiring
	cmds := grpcproduct.Commands{
		Launch:      launch,
		Create:      create_product.NewInteractor(be.uow, clk),
		UpdateStock: update_stock.NewInteractor(be.uow, clk),
	}
	qrys := grpcproduct.Queries{
		Get:  get_product.NewHandler(be.readModel),
		List: list_products.NewHandler(be.readModel),
	}
	h := grpcproduct.NewHandler(cmds, qrys, log)

	srv := grpc.NewServer(grpc.UnaryInterceptor(grpcproduct.UnaryLoggingInterceptor(log)))
	grpcproduct.RegisterProductLaunchServiceServer(srv, h)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", cfg.GRPCAddr)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(logrus.Fields{"addr": cfg.GRPCAddr, "store": cfg.Store}).Info("gRPC server listening")
		return srv.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		gracefulStop(srv, cfg.ShutdownTimeout)
		launch.Drain()
		return nil
	})

	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "grpc serve")
	}
	log.Info("server stopped")
	return nil
}

func gracefulStop(srv *grpc.Server, timeout time.Duration) {
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(timeout):
		srv.Stop()
	}
}
