package main

import (
	"net/http"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"crm/pkg/config"
	"crm/pkg/domain/service"
	"crm/pkg/infrastructure/event"
	"crm/pkg/infrastructure/mysql"
	"crm/pkg/transport/graph"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	app := &cli.App{
		Name:  "crmd",
		Usage: "CRM backend server",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply database migrations and exit",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					return runMigrations(cfg)
				},
			},
			{
				Name:  "serve",
				Usage: "apply migrations and serve the GraphQL API",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					return serve(cfg, log)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runMigrations(cfg *config.Config) error {
	m, err := migrate.New(cfg.MigrationsURL, "mysql://"+cfg.DatabaseDSN)
	if err != nil {
		return errors.Wrap(err, "open migrations")
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}

func serve(cfg *config.Config, log *logrus.Logger) error {
	if err := runMigrations(cfg); err != nil {
		return err
	}

	db, err := sqlx.Connect("mysql", cfg.DatabaseDSN)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer db.Close()

	dispatcher := event.NewLogDispatcher(log)
	customerRepo := mysql.NewCustomerRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)

	customers := service.NewCustomerService(customerRepo, dispatcher, service.DropInvalidPhone)
	products := service.NewProductService(productRepo, dispatcher)
	orders := service.NewOrderService(orderRepo, customerRepo, productRepo, dispatcher)

	schema, err := graph.NewSchema(graph.NewResolver(customers, products, orders))
	if err != nil {
		return errors.Wrap(err, "build schema")
	}

	log.WithField("addr", cfg.HTTPAddr).Info("serving GraphQL API")
	return http.ListenAndServe(cfg.HTTPAddr, graph.NewRouter(schema, log))
}
