package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook_ReadRows(t *testing.T) {
	data, err := WriteWorkbook(Sheet{
		Name:          "2024-03",
		Header:        []string{"Employee", "Net"},
		Rows:          [][]any{{"Amal", decimal.RequireFromString("1500.5")}},
		AmountColumns: []int{1},
	})
	require.NoError(t, err)

	rows, err := ReadRows("report.xlsx", data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Employee", "Net"}, rows[0])
	assert.Equal(t, "Amal", rows[1][0])

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "2024-03", f.GetSheetName(0))
	raw, err := f.GetCellValue("2024-03", "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1500.5", raw)
}

func TestWriteWorkbook_MultipleSheets(t *testing.T) {
	data, err := WriteWorkbook(
		Sheet{Name: "Payments", Header: []string{"a"}},
		Sheet{Name: "Totals", Header: []string{"b"}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Payments", "Totals"}, f.GetSheetList())
}

func TestWriteWorkbook_NoSheets(t *testing.T) {
	_, err := WriteWorkbook()
	assert.Error(t, err)
}

func TestReadRows_UnsupportedFormat(t *testing.T) {
	_, err := ReadRows("punches.csv", []byte("a,b"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadRows_CorruptXLSX(t *testing.T) {
	_, err := ReadRows("punches.xlsx", []byte("not a zip"))
	assert.Error(t, err)
}

func TestHeaderIndex(t *testing.T) {
	idx := HeaderIndex([]string{" Employee ID", "Date", "check-in", "", "Date"})
	assert.Equal(t, 0, idx["employee_id"])
	assert.Equal(t, 1, idx["date"])
	assert.Equal(t, 2, idx["check_in"])
	assert.Len(t, idx, 3)
}

func TestCell(t *testing.T) {
	row := []string{" a ", "b"}
	assert.Equal(t, "a", Cell(row, 0))
	assert.Equal(t, "", Cell(row, 5))
	assert.Equal(t, "", Cell(row, -1))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-05", "05/03/2024", "5/3/2024", "45356"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed as %v", in, got)
	}

	for _, in := range []string{"", "yesterday", "0.5"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string]string{
		"09:00":    "09:00",
		"9:05":     "09:05",
		"17:30:10": "17:30",
		"5:45 pm":  "17:45",
		"0.375":    "09:00",
		"45356.75": "18:00",
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "noon", "25:00"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}
