package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/entity"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
	"github.com/kobayashi-mfg/kintone-printer/internal/invoice"
)

func TestRecordService_ListRecords(t *testing.T) {
	source := &mockSource{records: []record.Record{invoiceRecord("INV-001"), invoiceRecord("INV-002")}}
	svc := NewRecordService(source, invoice.DefaultFields(), nopLogger{})

	got, err := svc.ListRecords(context.Background(), "")
	if err != nil {
		t.Fatalf("ListRecords() error = %v", err)
	}

	want := []entity.RecordSummary{
		{Number: "INV-001", Customer: "ACME Corp", Date: "2019-05-01"},
		{Number: "INV-002", Customer: "ACME Corp", Date: "2019-05-01"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListRecords() = %+v, want %+v", got, want)
	}
}

func TestRecordService_ListColumns(t *testing.T) {
	a := record.New()
	a.Set("code", record.Text("A"))
	a.Set("qty", record.Integer(1, "1"))
	b := record.New()
	b.Set("code", record.Text("B"))
	b.Set("memo", record.Text("x"))

	svc := NewRecordService(&mockSource{records: []record.Record{a, b}}, invoice.DefaultFields(), nopLogger{})
	got, err := svc.ListColumns(context.Background(), "")
	if err != nil {
		t.Fatalf("ListColumns() error = %v", err)
	}
	if want := []string{"code", "qty", "memo"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListColumns() = %v, want %v", got, want)
	}
}

func TestRecordService_RemoteError(t *testing.T) {
	source := &mockSource{err: &apperr.RemoteError{Payload: []byte("{}")}}
	svc := NewRecordService(source, invoice.DefaultFields(), nopLogger{})

	if _, err := svc.ListRecords(context.Background(), ""); !errors.Is(err, apperr.ErrRemote) {
		t.Errorf("error = %v, want RemoteError", err)
	}
}
