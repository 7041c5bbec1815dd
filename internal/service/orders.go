package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/order"
)

type OrderInput struct {
	// Branch empty means the preferred branch from settings.
	Branch  string
	Items   []model.RecurringItem
	Contact order.Contact
	Labels  order.Labels
}

func (a *App) orderLines(items []model.RecurringItem) ([]order.Line, error) {
	lines := make([]order.Line, 0, len(items))
	for _, it := range items {
		p := a.state.Product(it.ProductID)
		if p == nil {
			return nil, fmt.Errorf("product %q does not exist: %w", it.ProductID, engine.ErrInvalidInput)
		}
		lines = append(lines, order.LineFor(p, it.Qty))
	}
	return lines, nil
}

func (a *App) branchAndNumber(branch string) (string, string, error) {
	if strings.TrimSpace(branch) == "" {
		branch = a.state.Settings.Branch
	}
	b, err := order.NormalizeBranch(branch)
	if err != nil {
		return "", "", errors.Join(err, engine.ErrInvalidInput)
	}
	number := a.phones[b]
	if number == "" {
		return "", "", fmt.Errorf("no order number configured for %s: %w", b, engine.ErrResourceUnavailable)
	}
	return b, number, nil
}

// ComposeOrder renders an order without recording it.
func (a *App) ComposeOrder(in OrderInput) (order.Composed, error) {
	if !a.ProActive() {
		return order.Composed{}, ErrProRequired
	}
	composed, _, _, err := a.compose(in)
	return composed, err
}

func (a *App) compose(in OrderInput) (order.Composed, []order.Line, string, error) {
	branch, number, err := a.branchAndNumber(in.Branch)
	if err != nil {
		return order.Composed{}, nil, "", err
	}
	lines, err := a.orderLines(in.Items)
	if err != nil {
		return order.Composed{}, nil, "", err
	}
	composed, err := order.Compose(order.Request{
		Branch:  branch,
		Number:  number,
		Lines:   lines,
		Contact: in.Contact,
		Labels:  in.Labels,
	})
	if err != nil {
		return order.Composed{}, nil, "", errors.Join(err, engine.ErrInvalidInput)
	}
	return composed, lines, branch, nil
}

// SendOrder composes an order and records it in the order history. The
// returned link is what hands the message to WhatsApp.
func (a *App) SendOrder(ctx context.Context, in OrderInput) (order.Composed, model.Order, error) {
	if !a.ProActive() {
		return order.Composed{}, model.Order{}, ErrProRequired
	}
	return a.send(ctx, in, false)
}

func (a *App) send(ctx context.Context, in OrderInput, recurring bool) (order.Composed, model.Order, error) {
	composed, lines, branch, err := a.compose(in)
	if err != nil {
		return order.Composed{}, model.Order{}, err
	}
	entry := order.HistoryEntry(newID("order_"), a.clock.Now(), branch, lines, in.Contact, recurring)
	a.state.OrderHistory = append(a.state.OrderHistory, entry)
	a.save(ctx)
	a.logger.Info("order recorded", zap.String("order_id", entry.ID), zap.String("branch", branch), zap.Bool("recurring", recurring))
	return composed, entry, nil
}

func (a *App) OrderHistory() []model.Order { return a.state.OrderHistory }

type RecurringInput struct {
	Weekday string
	Time    string
	Items   []model.RecurringItem
	Address string
	Notes   string
}

func (a *App) AddRecurring(ctx context.Context, in RecurringInput) (model.RecurringOrder, error) {
	if !a.ProActive() {
		return model.RecurringOrder{}, ErrProRequired
	}
	day, err := order.ParseWeekday(in.Weekday)
	if err != nil {
		return model.RecurringOrder{}, errors.Join(err, engine.ErrInvalidInput)
	}
	clock, err := order.ParseClock(in.Time)
	if err != nil {
		return model.RecurringOrder{}, errors.Join(err, engine.ErrInvalidInput)
	}
	items := make([]model.RecurringItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Qty <= 0 {
			continue
		}
		if a.state.Product(it.ProductID) == nil {
			return model.RecurringOrder{}, fmt.Errorf("product %q does not exist: %w", it.ProductID, engine.ErrInvalidInput)
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return model.RecurringOrder{}, fmt.Errorf("a recurring order needs at least one item: %w", engine.ErrInvalidInput)
	}
	rec := model.RecurringOrder{
		ID:      newID("rec_"),
		Weekday: day,
		Time:    clock,
		Items:   items,
		Address: strings.TrimSpace(in.Address),
		Notes:   strings.TrimSpace(in.Notes),
	}
	a.state.RecurringOrders = append(a.state.RecurringOrders, rec)
	a.save(ctx)
	return rec, nil
}

func (a *App) RemoveRecurring(ctx context.Context, id string) error {
	for i, r := range a.state.RecurringOrders {
		if r.ID == id {
			a.state.RecurringOrders = append(a.state.RecurringOrders[:i], a.state.RecurringOrders[i+1:]...)
			a.save(ctx)
			return nil
		}
	}
	return fmt.Errorf("recurring order %q does not exist: %w", id, engine.ErrInvalidInput)
}

type Schedule struct {
	Order   model.RecurringOrder `json:"order"`
	NextRun time.Time            `json:"next_run"`
}

// RecurringSchedules lists stored schedules with their next occurrence.
func (a *App) RecurringSchedules() []Schedule {
	now := a.clock.Now()
	out := make([]Schedule, 0, len(a.state.RecurringOrders))
	for _, r := range a.state.RecurringOrders {
		next, err := order.NextRun(r, now)
		if err != nil {
			a.logger.Warn("skipping malformed schedule", zap.String("id", r.ID), zap.Error(err))
			continue
		}
		out = append(out, Schedule{Order: r, NextRun: next})
	}
	return out
}

// SendRecurring composes a stored schedule now. Contact fields left empty
// are filled from the schedule.
func (a *App) SendRecurring(ctx context.Context, id string, contact order.Contact, labels order.Labels) (order.Composed, model.Order, error) {
	if !a.ProActive() {
		return order.Composed{}, model.Order{}, ErrProRequired
	}
	for _, r := range a.state.RecurringOrders {
		if r.ID != id {
			continue
		}
		if contact.Address == "" {
			contact.Address = r.Address
		}
		if contact.Notes == "" {
			contact.Notes = r.Notes
		}
		return a.send(ctx, OrderInput{Items: r.Items, Contact: contact, Labels: labels}, true)
	}
	return order.Composed{}, model.Order{}, fmt.Errorf("recurring order %q does not exist: %w", id, engine.ErrInvalidInput)
}
