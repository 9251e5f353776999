package inventory

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/medidepot/medidepot/domain"
	"github.com/medidepot/medidepot/repository"
)

// DateLayout is the calendar format used for item dates entered by staff.
const DateLayout = "02.01.2006"

// Store is the persistence the controller orchestrates.
type Store interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id int64) (domain.Item, bool, error)
	InsertItem(ctx context.Context, item domain.Item) (int64, error)
	UpdateItem(ctx context.Context, id int64, changeSet repository.ItemChangeSet) (int64, error)
	DeleteItem(ctx context.Context, id int64) (int64, error)
}

// AddStockInput carries the form fields of a restocking entry.
type AddStockInput struct {
	Name      string
	Quantity  string
	Unit      string
	Location  string
	OwnerCode string
	Date      string
}

// ConsumeInput carries the form fields of a consumption entry.
type ConsumeInput struct {
	Name      string
	Quantity  string
	Unit      string
	OwnerCode string
	Date      string
}

// EditInput carries every editable field of an existing item.
type EditInput struct {
	ID           int64
	Name         string
	CurrentStock string
	MinStock     string
	Unit         string
	Location     string
	OwnerCode    string
	Date         string
}

// Controller validates input, drives the store and reports typed failures.
type Controller struct {
	store    Store
	logger   log.Logger
	now      func() time.Time
	firstRun bool
}

type Option func(*Controller)

// WithLogger sets the logger stock movements are recorded to.
func WithLogger(logger log.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithFirstRun marks the process as the first one after a fresh initialization.
func WithFirstRun(firstRun bool) Option {
	return func(c *Controller) { c.firstRun = firstRun }
}

func NewController(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		logger: log.NewNopLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = log.With(c.logger, "component", "inventory")
	return c
}

// FirstRun reports whether the store was created by this process.
func (c *Controller) FirstRun() bool {
	return c.firstRun
}

// Today is the current date in DateLayout, used to pre-fill date fields.
func (c *Controller) Today() string {
	return c.now().Format(DateLayout)
}

// ListItems returns all items in store order.
func (c *Controller) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := c.store.ListItems(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return items, nil
}

// Item returns the item with the given id.
func (c *Controller) Item(ctx context.Context, id int64) (domain.Item, error) {
	item, ok, err := c.store.GetItem(ctx, id)
	if err != nil {
		return domain.Item{}, &StorageError{Op: "get", Err: err}
	}
	if !ok {
		return domain.Item{}, &NotFoundError{ID: id}
	}
	return item, nil
}

// AddStock records a new stock entry with the default reorder threshold.
func (c *Controller) AddStock(ctx context.Context, in AddStockInput) (domain.Item, error) {
	if err := required(
		field{"name", in.Name},
		field{"quantity", in.Quantity},
		field{"unit", in.Unit},
		field{"location", in.Location},
		field{"owner code", in.OwnerCode},
		field{"date", in.Date},
	); err != nil {
		return domain.Item{}, err
	}
	quantity, err := parseInt("quantity", in.Quantity)
	if err != nil {
		return domain.Item{}, err
	}
	if quantity < 0 {
		return domain.Item{}, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}

	item := domain.Item{
		Name:         strings.TrimSpace(in.Name),
		CurrentStock: quantity,
		MinStock:     domain.DefaultMinStock,
		Unit:         strings.TrimSpace(in.Unit),
		Location:     strings.TrimSpace(in.Location),
		AddedDate:    strings.TrimSpace(in.Date),
		OwnerCode:    strings.TrimSpace(in.OwnerCode),
	}
	id, err := c.store.InsertItem(ctx, item)
	if err != nil {
		return domain.Item{}, &StorageError{Op: "add stock", Err: err}
	}
	item.ID = id

	level.Info(c.logger).Log("msg", "stock added", "id", id, "name", item.Name, "quantity", quantity,
		"unit", item.Unit, "owner", item.OwnerCode, "date", item.AddedDate)
	return item, nil
}

// ConsumeStock books a usage against the first item whose name matches
// case-insensitively. It never lets the stock drop below zero.
func (c *Controller) ConsumeStock(ctx context.Context, in ConsumeInput) (domain.Item, error) {
	if err := required(
		field{"name", in.Name},
		field{"quantity", in.Quantity},
		field{"unit", in.Unit},
		field{"owner code", in.OwnerCode},
		field{"date", in.Date},
	); err != nil {
		return domain.Item{}, err
	}
	quantity, err := parseInt("quantity", in.Quantity)
	if err != nil {
		return domain.Item{}, err
	}
	if quantity <= 0 {
		return domain.Item{}, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}

	items, err := c.ListItems(ctx)
	if err != nil {
		return domain.Item{}, err
	}
	name := strings.TrimSpace(in.Name)
	item, ok := findByName(items, name)
	if !ok {
		return domain.Item{}, &NotFoundError{Name: name}
	}
	if quantity > item.CurrentStock {
		return domain.Item{}, &InsufficientStockError{Name: item.Name, Available: item.CurrentStock, Requested: quantity}
	}

	newStock := item.CurrentStock - quantity
	n, err := c.store.UpdateItem(ctx, item.ID, repository.ItemChangeSet{CurrentStock: &newStock})
	if err != nil {
		return domain.Item{}, &StorageError{Op: "consume stock", Err: err}
	}
	if n == 0 {
		return domain.Item{}, &NotFoundError{ID: item.ID, Name: item.Name}
	}
	item.CurrentStock = newStock

	level.Info(c.logger).Log("msg", "stock consumed", "id", item.ID, "name", item.Name, "quantity", quantity,
		"unit", strings.TrimSpace(in.Unit), "owner", strings.TrimSpace(in.OwnerCode), "date", strings.TrimSpace(in.Date),
		"remaining", newStock)
	return item, nil
}

// EditItem overwrites every field of an item. Unlike ConsumeStock it does not
// enforce a stock floor, so a negative stock can be stored here.
func (c *Controller) EditItem(ctx context.Context, in EditInput) (domain.Item, error) {
	if err := required(
		field{"name", in.Name},
		field{"current stock", in.CurrentStock},
		field{"min stock", in.MinStock},
		field{"unit", in.Unit},
		field{"location", in.Location},
		field{"owner code", in.OwnerCode},
		field{"date", in.Date},
	); err != nil {
		return domain.Item{}, err
	}
	current, err := parseInt("current stock", in.CurrentStock)
	if err != nil {
		return domain.Item{}, err
	}
	minStock, err := parseInt("min stock", in.MinStock)
	if err != nil {
		return domain.Item{}, err
	}

	item := domain.Item{
		ID:           in.ID,
		Name:         strings.TrimSpace(in.Name),
		CurrentStock: current,
		MinStock:     minStock,
		Unit:         strings.TrimSpace(in.Unit),
		Location:     strings.TrimSpace(in.Location),
		AddedDate:    strings.TrimSpace(in.Date),
		OwnerCode:    strings.TrimSpace(in.OwnerCode),
	}
	n, err := c.store.UpdateItem(ctx, in.ID, repository.ItemChangeSet{
		Name:         &item.Name,
		CurrentStock: &item.CurrentStock,
		MinStock:     &item.MinStock,
		Unit:         &item.Unit,
		Location:     &item.Location,
		AddedDate:    &item.AddedDate,
		OwnerCode:    &item.OwnerCode,
	})
	if err != nil {
		return domain.Item{}, &StorageError{Op: "edit item", Err: err}
	}
	if n == 0 {
		return domain.Item{}, &NotFoundError{ID: in.ID}
	}

	if current < 0 {
		level.Warn(c.logger).Log("msg", "edit stored negative stock", "id", item.ID, "name", item.Name, "stock", current)
	}
	level.Info(c.logger).Log("msg", "item edited", "id", item.ID, "name", item.Name, "stock", current, "min", minStock)
	return item, nil
}

// DeleteItem removes an item once the caller has confirmed the deletion.
func (c *Controller) DeleteItem(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return &ValidationError{Field: "confirmation", Reason: "deletion was not confirmed"}
	}
	n, err := c.store.DeleteItem(ctx, id)
	if err != nil {
		return &StorageError{Op: "delete item", Err: err}
	}
	if n == 0 {
		return &NotFoundError{ID: id}
	}
	level.Info(c.logger).Log("msg", "item deleted", "id", id)
	return nil
}

// LowStockWarnings is the low-stock report to show the user, or nil on the
// first run after a fresh initialization.
func (c *Controller) LowStockWarnings(items []domain.Item) []LowStockEntry {
	if c.firstRun {
		return nil
	}
	return LowStockReport(items)
}

type field struct {
	name  string
	value string
}

func required(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "is required"}
		}
	}
	return nil
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &ValidationError{Field: name, Reason: "must be a whole number"}
	}
	return n, nil
}

func findByName(items []domain.Item, name string) (domain.Item, bool) {
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return domain.Item{}, false
}
