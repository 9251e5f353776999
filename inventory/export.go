package inventory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-kit/log/level"
	"github.com/gofrs/uuid"

	"github.com/medidepot/medidepot/domain"
)

// ExportHeader is the fixed header row of an inventory export.
var ExportHeader = []string{"ID", "Name", "Stock", "MinStock", "Unit", "Location", "Date", "OwnerCode"}

const (
	exportDelimiter  = ';'
	exportFilePrefix = "MediDEPOT_Inventur_"
	exportTimeLayout = "20060102_1504"
)

// ExportFileName is the timestamped name of an export taken at the controller's current time.
func (c *Controller) ExportFileName() string {
	return exportFilePrefix + c.now().Format(exportTimeLayout) + ".csv"
}

// Export writes all items to a timestamped file in dir and returns its path.
func (c *Controller) Export(ctx context.Context, dir string) (string, error) {
	items, err := c.ListItems(ctx)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, c.ExportFileName())
	if err := ExportCSV(items, path); err != nil {
		return "", err
	}
	level.Info(c.logger).Log("msg", "inventory exported", "path", path, "items", len(items))
	return path, nil
}

// ExportCSV writes items to destinationPath as semicolon separated UTF-8 text.
// The file is written next to its destination first and renamed into place.
func ExportCSV(items []domain.Item, destinationPath string) error {
	tmpID, err := uuid.NewV4()
	if err != nil {
		return &IOError{Path: destinationPath, Err: err}
	}
	tmpPath := filepath.Join(filepath.Dir(destinationPath), ".export-"+tmpID.String()+".tmp")

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &IOError{Path: destinationPath, Err: err}
	}
	if err := writeCSV(f, items); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return &IOError{Path: destinationPath, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return &IOError{Path: destinationPath, Err: err}
	}
	if err := os.Rename(tmpPath, destinationPath); err != nil {
		os.Remove(tmpPath)
		return &IOError{Path: destinationPath, Err: err}
	}
	return nil
}

func writeCSV(w io.Writer, items []domain.Item) error {
	cw := csv.NewWriter(w)
	cw.Comma = exportDelimiter
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, item := range items {
		record := []string{
			strconv.FormatInt(item.ID, 10),
			item.Name,
			strconv.Itoa(item.CurrentStock),
			strconv.Itoa(item.MinStock),
			item.Unit,
			item.Location,
			item.AddedDate,
			item.OwnerCode,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an export produced by ExportCSV back into items.
func ReadCSV(r io.Reader) ([]domain.Item, error) {
	cr := csv.NewReader(r)
	cr.Comma = exportDelimiter
	cr.FieldsPerRecord = len(ExportHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, name := range ExportHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected column %q at position %d, want %q", header[i], i+1, name)
		}
	}

	items := []domain.Item{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			return items, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing id: %w", line, err)
		}
		stock, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing stock: %w", line, err)
		}
		minStock, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing min stock: %w", line, err)
		}
		items = append(items, domain.Item{
			ID:           id,
			Name:         record[1],
			CurrentStock: stock,
			MinStock:     minStock,
			Unit:         record[4],
			Location:     record[5],
			AddedDate:    record[6],
			OwnerCode:    record[7],
		})
	}
}
