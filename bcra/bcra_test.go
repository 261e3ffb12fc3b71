package bcra

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

func testClient(base string) *Client {
	c := New()
	c.Fetcher.Pause = 0
	c.Base = base
	return c
}

// monetariasServer pages out records in the production envelope.
func monetariasServer(t *testing.T, records []string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, offset := 0, 0
		fmt.Sscan(r.URL.Query().Get("limit"), &limit)
		fmt.Sscan(r.URL.Query().Get("offset"), &offset)
		if limit <= 0 {
			t.Errorf("missing limit in %v", r.URL)
		}
		end := min(offset+limit, len(records))
		page := ""
		if offset < len(records) {
			for i, rec := range records[offset:end] {
				if i > 0 {
					page += ","
				}
				page += rec
			}
		}
		fmt.Fprintf(w, `{"results":[{"detalle":[%s]}],"metadata":{"resultset":{"count":%d}}}`, page, len(records))
	}))
}

func TestSeriesPaginates(t *testing.T) {
	var records []string
	on := date.New(2024, time.January, 1)
	for i := 0; i < 5; i++ {
		records = append(records, fmt.Sprintf(`{"fecha":"%s","valor":%d}`, on.Add(i), 1000+i))
	}
	srv := monetariasServer(t, records)
	defer srv.Close()

	c := testClient(srv.URL)
	s, err := c.Series(context.Background(), FXMayorista)
	if err != nil {
		t.Fatalf("Series() unexpected error = %v", err)
	}
	if s.Len() != 5 {
		t.Errorf("Series() len = %v want 5", s.Len())
	}
	if s.Frequency() != date.Daily {
		t.Errorf("Frequency() = %v want daily", s.Frequency())
	}
	if v, _ := s.Get(on.Add(4)); v != 1004 {
		t.Errorf("last value = %v want 1004", v)
	}
}

func TestSeriesMonthlyNormalizesDates(t *testing.T) {
	srv := monetariasServer(t, []string{
		`{"fecha":"2024-01-31","valor":20.6}`,
		`{"fecha":"2024-02-29","valor":13.2}`,
	})
	defer srv.Close()

	s, err := testClient(srv.URL).Series(context.Background(), IPCMensual)
	if err != nil {
		t.Fatalf("Series() unexpected error = %v", err)
	}
	if s.Frequency() != date.Monthly {
		t.Errorf("Frequency() = %v want monthly", s.Frequency())
	}
	if v, ok := s.Get(date.New(2024, time.February, 1)); !ok || v != 13.2 {
		t.Errorf("Get(2024-02-01) = %v, %v want 13.2, true", v, ok)
	}
}

func TestSeriesEmptyIsNoData(t *testing.T) {
	srv := monetariasServer(t, nil)
	defer srv.Close()

	_, err := testClient(srv.URL).Series(context.Background(), TasaAdelantos)
	if !errors.Is(err, monitor.ErrNoData) {
		t.Errorf("Series() error = %v want ErrNoData", err)
	}
}

func TestSeriesCachesByVariable(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"results":[{"detalle":[{"fecha":"2024-01-01","valor":1}]}],"metadata":{"resultset":{"count":1}}}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.Series(context.Background(), FXMayorista)
	c.Series(context.Background(), FXMayorista)
	if calls != 1 {
		t.Errorf("endpoint calls = %v want 1 (second read cached)", calls)
	}
	c.Series(context.Background(), TasaAdelantos)
	if calls != 2 {
		t.Errorf("endpoint calls = %v want 2 (distinct variable)", calls)
	}
}

func TestExpectedInflationDaily(t *testing.T) {
	srv := monetariasServer(t, []string{
		`{"fecha":"2025-01-01","valor":25.0}`,
		`{"fecha":"2025-02-01","valor":23.0}`,
	})
	defer srv.Close()

	horizon := date.New(2025, time.March, 10)
	d, err := testClient(srv.URL).ExpectedInflationDaily(context.Background(), horizon)
	if err != nil {
		t.Fatalf("ExpectedInflationDaily() unexpected error = %v", err)
	}
	if v, ok := d.Get(date.New(2025, time.January, 20)); !ok || v != 25.0 {
		t.Errorf("Get(2025-01-20) = %v, %v want 25, true", v, ok)
	}
	if v, ok := d.Get(horizon); !ok || v != 23.0 {
		t.Errorf("Get(horizon) = %v, %v want 23, true", v, ok)
	}
}

// sheetBytes builds a one sheet workbook row by row.
func sheetBytes(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func workbookClient(t *testing.T, payload []byte) (*Client, *httptest.Server) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	c := testClient(srv.URL)
	c.REMURL = srv.URL + "/rem.xlsx"
	c.ITCRMURL = srv.URL + "/itcrm.xlsx"
	c.EMBIURL = srv.URL + "/embi.xlsx"
	return c, srv
}

func TestREMKeepsLatestSurveyRound(t *testing.T) {
	rows := [][]any{
		{"REM"},
		{"Fecha de pronóstico", "Variable", "Referencia", "Período", "Mediana"},
		// An older round that must be ignored.
		{"2025-06-30", remVariable, remReference, "2025-07", "2,4"},
		// The newest round.
		{"2025-07-31", remVariable, remReference, "2025-08", "1,9"},
		{"2025-07-31", remVariable, remReference, "2025-09", "1,8"},
		// Same round, another variable.
		{"2025-07-31", "Tipo de cambio nominal", "var. % mensual", "2025-08", "3,0"},
	}
	c, _ := workbookClient(t, sheetBytes(t, remSheet, rows))

	s, err := c.REM(context.Background())
	if err != nil {
		t.Fatalf("REM() unexpected error = %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("REM() len = %v want 2", s.Len())
	}
	if _, ok := s.Get(date.New(2025, time.July, 1)); ok {
		t.Error("REM() kept a stale survey round")
	}
	if v, _ := s.Get(date.New(2025, time.September, 1)); v != 1.8 {
		t.Errorf("Get(2025-09) = %v want 1.8", v)
	}
}

func TestITCRMWideToLong(t *testing.T) {
	rows := [][]any{
		{"Índice de Tipo de Cambio Real"},
		{"Fecha", "ITCRM", "ITCRB Brasil"},
		{"02/01/2024", "95,3", "101,2"},
		{"03/01/2024", "95,8", "s/d"},
		{"Fuente: BCRA", "", ""},
	}
	c, _ := workbookClient(t, sheetBytes(t, itcrmSheet, rows))

	k, err := c.ITCRM(context.Background())
	if err != nil {
		t.Fatalf("ITCRM() unexpected error = %v", err)
	}
	itcrm, ok := k.Get("ITCRM")
	if !ok || itcrm.Len() != 2 {
		t.Fatalf("ITCRM series len = %v want 2", itcrm.Len())
	}
	// Day-first dates.
	if v, ok := itcrm.Get(date.New(2024, time.January, 3)); !ok || v != 95.8 {
		t.Errorf("Get(2024-01-03) = %v, %v want 95.8, true", v, ok)
	}
	brasil, _ := k.Get("ITCRB Brasil")
	if brasil.Len() != 1 {
		t.Errorf("bilateral len = %v want 1 (s/d dropped)", brasil.Len())
	}
}

func TestEMBIDiscoversDateColumn(t *testing.T) {
	rows := [][]any{
		{"Serie histórica del EMBI"},
		{"Región", "Fecha", "Argentina", "Brasil"},
		{"Latam", "2024-01-02", "1907", "220"},
		{"Latam", "2024-01-03", "1890", "221"},
	}
	c, _ := workbookClient(t, sheetBytes(t, "EMBI", rows))

	k, err := c.EMBI(context.Background())
	if err != nil {
		t.Fatalf("EMBI() unexpected error = %v", err)
	}
	arg, ok := k.Get("Argentina")
	if !ok || arg.Len() != 2 {
		t.Fatalf("Argentina len = %v want 2", arg.Len())
	}
	if v, _ := arg.Get(date.New(2024, time.January, 3)); v != 1890 {
		t.Errorf("Get(2024-01-03) = %v want 1890", v)
	}
}
