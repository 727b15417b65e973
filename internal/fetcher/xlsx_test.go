package fetcher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

// workbookBytes builds a workbook with the sheets added in the given order.
func workbookBytes(t *testing.T, names []string, sheets map[string][][]string) []byte {
	t.Helper()
	f := xlsx.NewFile()
	for _, name := range names {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range sheets[name] {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestReadXLSXBytes_FirstSheetByDefault(t *testing.T) {
	data := workbookBytes(t, []string{"면적", "메모"}, map[string][][]string{
		"면적": {
			{"서울시", "자치구", "면적"},
			{"서울시", "종로구", "23.91"},
			{"서울시", "중구", "9.96"},
		},
		"메모": {{"note"}},
	})

	rows, err := ReadXLSXBytes(data, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"서울시", "자치구", "면적"}, rows[0])
	assert.Equal(t, []string{"서울시", "종로구", "23.91"}, rows[1])
	assert.Equal(t, []string{"서울시", "중구", "9.96"}, rows[2])
}

func TestReadXLSXBytes_TrimSpace(t *testing.T) {
	data := workbookBytes(t, []string{"Sheet1"}, map[string][][]string{
		"Sheet1": {{" 종로구 ", " 1 "}},
	})

	rows, err := ReadXLSXBytes(data, XLSXOptions{TrimSpace: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"종로구", "1"}, rows[0])
}

func TestReadXLSXBytes_SheetName(t *testing.T) {
	data := workbookBytes(t, []string{"First", "Second"}, map[string][][]string{
		"First":  {{"a", "b"}},
		"Second": {{"x", "y"}, {"1", "2"}},
	})

	rows, err := ReadXLSXBytes(data, XLSXOptions{SheetName: "Second"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"x", "y"}, rows[0])
	assert.Equal(t, []string{"1", "2"}, rows[1])
}

func TestReadXLSXBytes_SheetNameNotFound(t *testing.T) {
	data := workbookBytes(t, []string{"Sheet1"}, map[string][][]string{
		"Sheet1": {{"a"}},
	})

	_, err := ReadXLSXBytes(data, XLSXOptions{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadXLSXBytes_Invalid(t *testing.T) {
	_, err := ReadXLSXBytes([]byte("not a zip"), XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx: open workbook")
}
