package jobs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner implements the periodic jobs. Every job appends timestamped lines
// to an append-only text log and absorbs all errors: a failing job logs the
// failure and returns normally, it never propagates.
type Runner struct {
	client  *GraphQLClient
	log     *logrus.Logger
	nowFunc func() time.Time
}

func NewRunner(client *GraphQLClient, log *logrus.Logger) *Runner {
	return &Runner{
		client:  client,
		log:     log,
		nowFunc: time.Now,
	}
}

// Heartbeat records that the CRM is alive and pings the hello query.
func (r *Runner) Heartbeat(ctx context.Context, logPath string) {
	timestamp := r.nowFunc().Format("02/01/2006-15:04:05")
	r.appendLine(logPath, timestamp+" CRM is alive")

	var out struct {
		Hello string `json:"hello"`
	}
	if err := r.client.Query(ctx, `{ hello }`, nil, &out); err != nil {
		r.log.WithError(err).Warn("heartbeat hello query failed")
		r.appendLine(logPath, timestamp+" GraphQL hello FAILED")
		return
	}
	r.appendLine(logPath, timestamp+" GraphQL hello OK")
}

// OrderReminders logs one line per order placed on or after since. The
// window is always computed by the caller at invocation time.
func (r *Runner) OrderReminders(ctx context.Context, logPath string, since time.Time) {
	var out struct {
		Orders []struct {
			ID       string `json:"id"`
			Customer struct {
				Email string `json:"email"`
			} `json:"customer"`
		} `json:"orders"`
	}

	query := `query RecentOrders($since: DateTime!) {
		orders(orderDateGte: $since) {
			id
			customer { email }
		}
	}`
	variables := map[string]interface{}{"since": since.UTC().Format(time.RFC3339)}

	if err := r.client.Query(ctx, query, variables, &out); err != nil {
		r.log.WithError(err).Warn("order reminders query failed")
		return
	}

	timestamp := r.nowFunc().UTC().Format(time.RFC3339)
	for _, order := range out.Orders {
		r.appendLine(logPath, fmt.Sprintf("%s - Order ID: %s, Customer Email: %s",
			timestamp, order.ID, order.Customer.Email))
	}
	r.log.WithField("orders", len(out.Orders)).Info("order reminders processed")
}

// Report appends an aggregate line: customer count, order count, and total
// revenue across all orders.
func (r *Runner) Report(ctx context.Context, logPath string) {
	var out struct {
		Customers []struct {
			ID string `json:"id"`
		} `json:"customers"`
		Orders []struct {
			ID          string  `json:"id"`
			TotalAmount float64 `json:"totalAmount"`
		} `json:"orders"`
	}

	query := `{
		customers { id }
		orders { id totalAmount }
	}`

	if err := r.client.Query(ctx, query, nil, &out); err != nil {
		r.log.WithError(err).Warn("report query failed")
		return
	}

	var revenue float64
	for _, order := range out.Orders {
		revenue += order.TotalAmount
	}

	timestamp := r.nowFunc().Format("2006-01-02 15:04:05")
	r.appendLine(logPath, fmt.Sprintf("%s - Report: %d customers, %d orders, %.2f revenue",
		timestamp, len(out.Customers), len(out.Orders), revenue))
}

func (r *Runner) appendLine(path, line string) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		r.log.WithError(err).WithField("path", path).Error("open job log")
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		r.log.WithError(err).WithField("path", path).Error("append job log")
	}
}
