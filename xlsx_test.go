package monitor

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, sheet string, cells map[string]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatal(err)
		}
	}
	for ref, v := range cells {
		if err := f.SetCellValue(sheet, ref, v); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestTableFromXLSX(t *testing.T) {
	raw := workbookBytes(t, "Datos", map[string]any{
		"A1": "Período", "B1": "Valor",
		"A2": "ene-24", "B2": "100,5",
	})

	tab, err := TableFromXLSX(raw, "Datos")
	if err != nil {
		t.Fatalf("TableFromXLSX() unexpected error = %v", err)
	}
	if got := tab.Cell(1, 1); got != "100,5" {
		t.Errorf("Cell(1,1) = %q want 100,5", got)
	}

	// Empty sheet name selects the first sheet.
	if _, err := TableFromXLSX(raw, ""); err != nil {
		t.Errorf("TableFromXLSX(first sheet) unexpected error = %v", err)
	}

	if _, err := TableFromXLSX(raw, "NoExiste"); err == nil {
		t.Error("TableFromXLSX(missing sheet) = nil error want failure")
	}

	if _, err := TableFromXLSX([]byte("not a workbook"), ""); err == nil {
		t.Error("TableFromXLSX(garbage) = nil error want failure")
	}
}
