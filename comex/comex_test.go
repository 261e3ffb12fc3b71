package comex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

const icaCSV = "indice_tiempo,ica_expo_totales,ica_importaciones_totales,ica_saldo_comercial,columna_desconocida\n" +
	"2024-01-01,5384,4583,801,1\n" +
	"2024-02-01,5530,4141,1389,2\n" +
	"nota al pie,,,,\n"

func testClient(t *testing.T, payload string) *Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	c := New()
	c.Fetcher.Pause = 0
	c.URL = srv.URL
	return c
}

func TestICA(t *testing.T) {
	k, err := testClient(t, icaCSV).ICA(context.Background())
	if err != nil {
		t.Fatalf("ICA() unexpected error = %v", err)
	}
	saldo, ok := k.Get(Saldo)
	if !ok || saldo.Len() != 2 {
		t.Fatalf("saldo len = %v want 2 (footnote row dropped)", saldo.Len())
	}
	if v, _ := saldo.Get(date.New(2024, time.February, 1)); v != 1389 {
		t.Errorf("Get(2024-02) = %v want 1389", v)
	}
	if _, ok := k.Get("columna_desconocida"); ok {
		t.Error("unmapped column must be dropped")
	}
}

func TestICAEmpty(t *testing.T) {
	_, err := testClient(t, "indice_tiempo,ica_expo_totales\n").ICA(context.Background())
	if !errors.Is(err, monitor.ErrNoData) {
		t.Errorf("ICA() error = %v want ErrNoData", err)
	}
}
