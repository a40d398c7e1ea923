package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"crm/pkg/config"
	"crm/pkg/jobs"
)

// crmjobs is invoked by an external scheduler (cron). Every command is
// fire-and-forget: failures are logged, the process still exits zero.
func main() {
	log := logrus.New()

	app := &cli.App{
		Name:  "crmjobs",
		Usage: "CRM periodic job runner",
		Commands: []*cli.Command{
			{
				Name:  "heartbeat",
				Usage: "log a heartbeat line and ping the GraphQL endpoint",
				Action: func(c *cli.Context) error {
					cfg, runner, err := setup(log)
					if err != nil {
						return err
					}
					runner.Heartbeat(context.Background(), cfg.HeartbeatLog)
					return nil
				},
			},
			{
				Name:  "remind",
				Usage: "log reminders for orders placed in the recent window",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "size of the reminder window in days",
						Value: 7,
					},
				},
				Action: func(c *cli.Context) error {
					cfg, runner, err := setup(log)
					if err != nil {
						return err
					}
					// Window is computed here, at invocation time, never at
					// process start.
					since := time.Now().UTC().AddDate(0, 0, -c.Int("days"))
					runner.OrderReminders(context.Background(), cfg.ReminderLog, since)
					return nil
				},
			},
			{
				Name:  "report",
				Usage: "log aggregate customer, order and revenue numbers",
				Action: func(c *cli.Context) error {
					cfg, runner, err := setup(log)
					if err != nil {
						return err
					}
					runner.Report(context.Background(), cfg.ReportLog)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(log *logrus.Logger) (*config.Config, *jobs.Runner, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	client := jobs.NewGraphQLClient(cfg.GraphQLURL, cfg.RequestTimeout, cfg.RequestRetries, log)
	return cfg, jobs.NewRunner(client, log), nil
}
