package service

import (
	"context"
	"time"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/entity"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
	"github.com/kobayashi-mfg/kintone-printer/internal/invoice"
	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
	"github.com/kobayashi-mfg/kintone-printer/internal/report"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

type mockSource struct {
	records []record.Record
	err     error
	filters []string
}

func (m *mockSource) FetchAll(ctx context.Context, filter string) ([]record.Record, error) {
	m.filters = append(m.filters, filter)
	return m.records, m.err
}

type mockStorage struct {
	saved   map[string][]byte
	saveErr error
}

func newMockStorage() *mockStorage {
	return &mockStorage{saved: make(map[string][]byte)}
}

func (m *mockStorage) Save(ctx context.Context, path string, content []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[path] = content
	return nil
}

func (m *mockStorage) GetFullPath(relativePath string) string {
	return "/out/" + relativePath
}

type mockGenerationRepo struct {
	createFunc func(ctx context.Context, gen *entity.Generation) error
	created    []*entity.Generation
}

func (m *mockGenerationRepo) Create(ctx context.Context, gen *entity.Generation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, gen)
	}
	gen.ID = "gen-1"
	m.created = append(m.created, gen)
	return nil
}

func (m *mockGenerationRepo) GetByID(ctx context.Context, id string) (*entity.Generation, error) {
	for _, g := range m.created {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

func (m *mockGenerationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Generation, error) {
	return m.created, nil
}

type mockPrefStore struct {
	prefs   preferences.Preferences
	loadErr error
	saved   []preferences.Preferences
}

func (m *mockPrefStore) Load() (preferences.Preferences, error) {
	return m.prefs, m.loadErr
}

func (m *mockPrefStore) Save(prefs preferences.Preferences) error {
	m.saved = append(m.saved, prefs)
	return nil
}

type mockInvoiceRenderer struct {
	err  error
	docs []*invoice.Document
}

func (m *mockInvoiceRenderer) Render(doc *invoice.Document) ([]byte, error) {
	m.docs = append(m.docs, doc)
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF invoice " + doc.Number), nil
}

type mockReportRenderer struct {
	err  error
	docs []*report.Document
}

func (m *mockReportRenderer) Render(doc *report.Document) ([]byte, error) {
	m.docs = append(m.docs, doc)
	if m.err != nil {
		return nil, m.err
	}
	return []byte("report"), nil
}

type stubEncoder struct{}

func (stubEncoder) Encode(payload string) ([]byte, error) {
	return []byte("png:" + payload), nil
}

func invoiceRecord(number string, items ...record.Record) record.Record {
	r := record.New()
	r.Set("invoice_no", record.Text(number))
	r.Set("invoice_date", record.Date(time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC), "2019-05-01"))
	r.Set("customer", record.Text("ACME Corp"))
	r.Set("staff", record.Text("Sato"))
	r.Set("amount_sum", record.Integer(1000, "1000"))
	r.Set("vat", record.Integer(100, "100"))
	r.Set("total", record.Integer(1100, "1100"))
	r.Set("subdata", record.Table(items, "[]"))
	return r
}

func item(name string, price, qty, amount int64) record.Record {
	r := record.New()
	r.Set("name", record.Text(name))
	r.Set("price", record.Integer(price, ""))
	r.Set("qty", record.Integer(qty, ""))
	r.Set("amount", record.Integer(amount, ""))
	return r
}
