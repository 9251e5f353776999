// Package console is the line-oriented front end of MediDepot: a login screen
// followed by a command loop over the inventory.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/medidepot/medidepot/auth"
	"github.com/medidepot/medidepot/domain"
	"github.com/medidepot/medidepot/inventory"
)

const helpText = `Commands:
  list          show all items
  add           record new stock
  consume       book a usage against an item
  edit <id>     change every field of an item
  delete <id>   remove an item
  export        write the inventory to a CSV file
  low           show items at or below their minimum stock
  help          show this text
  quit          leave MediDepot
`

// Console drives one interactive session.
type Console struct {
	ctrl      *inventory.Controller
	verifier  auth.Verifier
	in        *bufio.Scanner
	out       io.Writer
	logger    log.Logger
	exportDir string
}

type Option func(*Console)

func WithLogger(logger log.Logger) Option {
	return func(c *Console) { c.logger = logger }
}

// WithExportDir sets the folder export files are written to.
func WithExportDir(dir string) Option {
	return func(c *Console) { c.exportDir = dir }
}

func New(ctrl *inventory.Controller, verifier auth.Verifier, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		ctrl:      ctrl,
		verifier:  verifier,
		in:        bufio.NewScanner(in),
		out:       out,
		logger:    log.NewNopLogger(),
		exportDir: ".",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = log.With(c.logger, "component", "console")
	return c
}

// Run blocks until the user quits or the input ends. Operation failures are
// shown to the user and never end the session.
func (c *Console) Run(ctx context.Context) error {
	user, err := c.login()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	level.Info(c.logger).Log("msg", "user logged in", "user", user)

	if c.ctrl.FirstRun() {
		c.printf("Welcome to MediDepot! A new inventory has been created with sample items.\n")
	}
	items, err := c.ctrl.ListItems(ctx)
	if err != nil {
		c.report(err)
	} else {
		c.printItems(items)
		c.printLowStock(c.ctrl.LowStockWarnings(items))
	}
	c.printf("Type help for a list of commands.\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := c.readLine("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		switch cmd {
		case "quit", "exit":
			c.printf("Goodbye.\n")
			return nil
		case "help":
			c.printf("%s", helpText)
		case "list":
			err = c.list(ctx)
		case "add":
			err = c.add(ctx)
		case "consume":
			err = c.consume(ctx)
		case "edit":
			err = c.edit(ctx, args)
		case "delete":
			err = c.deleteItem(ctx, args)
		case "export":
			err = c.export(ctx)
		case "low":
			err = c.low(ctx)
		default:
			c.printf("Unknown command %q. Type help for a list of commands.\n", cmd)
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			c.report(err)
		}
	}
}

func (c *Console) login() (string, error) {
	for {
		user, err := c.readLine("Username: ")
		if err != nil {
			return "", err
		}
		password, err := c.readLine("Password: ")
		if err != nil {
			return "", err
		}
		if c.verifier.Verify(user, password) {
			c.printf("Login successful.\n")
			return user, nil
		}
		level.Warn(c.logger).Log("msg", "login rejected", "user", user)
		c.printf("Invalid username or password.\n")
	}
}

func (c *Console) list(ctx context.Context) error {
	items, err := c.ctrl.ListItems(ctx)
	if err != nil {
		return err
	}
	c.printItems(items)
	return nil
}

func (c *Console) add(ctx context.Context) error {
	var in inventory.AddStockInput
	err := c.ask(
		question{"Name", "", &in.Name},
		question{"Quantity", "", &in.Quantity},
		question{"Unit", "", &in.Unit},
		question{"Location", "", &in.Location},
		question{"Owner code", "", &in.OwnerCode},
		question{"Date", c.ctrl.Today(), &in.Date},
	)
	if err != nil {
		return err
	}
	item, err := c.ctrl.AddStock(ctx, in)
	if err != nil {
		return err
	}
	c.printf("Added %d %s of %s as item %d.\n", item.CurrentStock, item.Unit, item.Name, item.ID)
	return c.list(ctx)
}

func (c *Console) consume(ctx context.Context) error {
	var in inventory.ConsumeInput
	err := c.ask(
		question{"Name", "", &in.Name},
		question{"Quantity", "", &in.Quantity},
		question{"Unit", "", &in.Unit},
		question{"Owner code", "", &in.OwnerCode},
		question{"Date", c.ctrl.Today(), &in.Date},
	)
	if err != nil {
		return err
	}
	item, err := c.ctrl.ConsumeStock(ctx, in)
	if err != nil {
		return err
	}
	c.printf("Booked usage of %s, %d %s left.\n", item.Name, item.CurrentStock, item.Unit)
	return c.list(ctx)
}

func (c *Console) edit(ctx context.Context, args []string) error {
	id, ok := c.parseID("edit", args)
	if !ok {
		return nil
	}
	item, err := c.ctrl.Item(ctx, id)
	if err != nil {
		return err
	}

	in := inventory.EditInput{ID: id}
	err = c.ask(
		question{"Name", item.Name, &in.Name},
		question{"Current stock", strconv.Itoa(item.CurrentStock), &in.CurrentStock},
		question{"Min stock", strconv.Itoa(item.MinStock), &in.MinStock},
		question{"Unit", item.Unit, &in.Unit},
		question{"Location", item.Location, &in.Location},
		question{"Owner code", item.OwnerCode, &in.OwnerCode},
		question{"Date", item.AddedDate, &in.Date},
	)
	if err != nil {
		return err
	}
	if _, err := c.ctrl.EditItem(ctx, in); err != nil {
		return err
	}
	c.printf("Item %d updated.\n", id)
	return c.list(ctx)
}

func (c *Console) deleteItem(ctx context.Context, args []string) error {
	id, ok := c.parseID("delete", args)
	if !ok {
		return nil
	}
	item, err := c.ctrl.Item(ctx, id)
	if err != nil {
		return err
	}
	answer, err := c.readLine(fmt.Sprintf("Really delete %q? [y/N]: ", item.Name))
	if err != nil {
		return err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "j", "ja":
		err = c.ctrl.DeleteItem(ctx, id, true)
	default:
		err = c.ctrl.DeleteItem(ctx, id, false)
	}

	var verr *inventory.ValidationError
	if errors.As(err, &verr) && verr.Field == "confirmation" {
		c.printf("Deletion cancelled.\n")
		return nil
	}
	if err != nil {
		return err
	}
	c.printf("Deleted %s.\n", item.Name)
	return c.list(ctx)
}

func (c *Console) export(ctx context.Context) error {
	path, err := c.ctrl.Export(ctx, c.exportDir)
	if err != nil {
		return err
	}
	c.printf("Inventory exported to %s\n", path)
	return nil
}

func (c *Console) low(ctx context.Context) error {
	items, err := c.ctrl.ListItems(ctx)
	if err != nil {
		return err
	}
	report := inventory.LowStockReport(items)
	if len(report) == 0 {
		c.printf("No items are low on stock.\n")
		return nil
	}
	c.printLowStock(report)
	return nil
}

func (c *Console) parseID(cmd string, args []string) (int64, bool) {
	if len(args) != 1 {
		c.printf("Usage: %s <id>\n", cmd)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		c.printf("%q is not an item id.\n", args[0])
		return 0, false
	}
	return id, true
}

// report turns an operation error into a message for the user.
func (c *Console) report(err error) {
	var (
		validation   *inventory.ValidationError
		notFound     *inventory.NotFoundError
		insufficient *inventory.InsufficientStockError
		storage      *inventory.StorageError
		ioErr        *inventory.IOError
	)
	switch {
	case errors.As(err, &validation):
		c.printf("Please check your input: %s %s.\n", validation.Field, validation.Reason)
	case errors.As(err, &notFound):
		c.printf("Not found: %s.\n", notFound.Error())
	case errors.As(err, &insufficient):
		c.printf("Not enough stock of %s: %d available, %d requested.\n",
			insufficient.Name, insufficient.Available, insufficient.Requested)
	case errors.As(err, &storage):
		level.Error(c.logger).Log("msg", "storage failure", "op", storage.Op, "err", storage.Err)
		c.printf("Database error: %v\n", storage.Err)
	case errors.As(err, &ioErr):
		level.Error(c.logger).Log("msg", "export failed", "path", ioErr.Path, "err", ioErr.Err)
		c.printf("Export failed: %v\n", ioErr.Err)
	default:
		level.Error(c.logger).Log("msg", "command failed", "err", err)
		c.printf("Error: %v\n", err)
	}
}

func (c *Console) printItems(items []domain.Item) {
	if len(items) == 0 {
		c.printf("The inventory is empty.\n")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tStock\tMin\tUnit\tLocation\tDate\tOwner\t")
	for _, item := range items {
		mark := ""
		if item.IsLow() {
			mark = "LOW"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n", item.ID, item.Name, item.CurrentStock,
			item.MinStock, item.Unit, item.Location, item.AddedDate, item.OwnerCode, mark)
	}
	tw.Flush()
}

func (c *Console) printLowStock(report []inventory.LowStockEntry) {
	if len(report) == 0 {
		return
	}
	c.printf("Low stock:\n")
	for _, e := range report {
		c.printf("  %s: %d left (minimum %d)\n", e.Name, e.Current, e.Min)
	}
}

type question struct {
	label  string
	def    string
	answer *string
}

// ask prompts for each question in turn. An empty answer takes the default.
func (c *Console) ask(questions ...question) error {
	for _, q := range questions {
		prompt := q.label + ": "
		if q.def != "" {
			prompt = fmt.Sprintf("%s [%s]: ", q.label, q.def)
		}
		line, err := c.readLine(prompt)
		if err != nil {
			return err
		}
		if line == "" {
			line = q.def
		}
		*q.answer = line
	}
	return nil
}

func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}
