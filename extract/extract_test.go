package extract

import (
	"errors"
	"testing"

	"github.com/poiesic/docingest/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestText_UnsupportedFormat(t *testing.T) {
	e := New(nil)

	_, err := e.Text([]byte("anything"), core.FormatUnknown)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}

func TestText_CorruptPDF(t *testing.T) {
	e := New(nil)

	_, err := e.Text([]byte("this is not a pdf"), core.FormatPDF)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrCorruptDocument))
}

func TestText_CorruptXLSX(t *testing.T) {
	e := New(nil)

	_, err := e.Text([]byte("this is not a workbook"), core.FormatXLSX)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrCorruptDocument))
}

func TestText_XLSX_SheetAndRowOrder(t *testing.T) {
	// Sheet "A" has one row with a single non-empty cell, sheet "B" is empty.
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "A"))
	_, err := f.NewSheet("B")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("A", "A1", "x"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	e := New(nil)
	text, err := e.Text(buf.Bytes(), core.FormatXLSX)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--- Sheet: A ---",
		"x",
		"--- Sheet: B ---",
	}, Paragraphs(text))
}

func TestText_XLSX_CellsJoinedWithDelimiter(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	require.NoError(t, f.SetCellValue("Data", "A1", "alpha"))
	require.NoError(t, f.SetCellValue("Data", "C1", "gamma")) // B1 left empty
	require.NoError(t, f.SetCellValue("Data", "A3", "solo")) // row 2 left empty

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	e := New(nil)
	text, err := e.Text(buf.Bytes(), core.FormatXLSX)
	require.NoError(t, err)

	// Empty cells are dropped from the join, empty rows produce no line.
	assert.Equal(t, []string{
		"--- Sheet: Data ---",
		"alpha | gamma",
		"solo",
	}, Paragraphs(text))
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "blank lines discarded",
			text: "first\n\n\nsecond\n",
			want: []string{"first", "second"},
		},
		{
			name: "lines trimmed",
			text: "  padded  \n\tindented\t",
			want: []string{"padded", "indented"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: " \n \t \n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paragraphs(tt.text))
		})
	}
}

func TestRowLine(t *testing.T) {
	assert.Equal(t, "a | b", rowLine([]string{"a", "", "b"}))
	assert.Equal(t, "", rowLine([]string{"", "  ", ""}))
	assert.Equal(t, "", rowLine(nil))
}

type fakeNumberCell struct{ val float64 }

func (c fakeNumberCell) GetString() string   { return "" }
func (c fakeNumberCell) GetFloat64() float64 { return c.val }
func (c fakeNumberCell) GetInt64() int64     { return int64(c.val) }

type fakeBlankCell struct{}

func (fakeBlankCell) GetString() string   { return "" }
func (fakeBlankCell) GetFloat64() float64 { return 0 }
func (fakeBlankCell) GetInt64() int64     { return 0 }

type fakeLabelCell struct{ val string }

func (c fakeLabelCell) GetString() string   { return c.val }
func (c fakeLabelCell) GetFloat64() float64 { return 0 }
func (c fakeLabelCell) GetInt64() int64     { return 0 }

func TestXLSCellValue(t *testing.T) {
	tests := []struct {
		name string
		cell xlsCell
		want string
	}{
		{"text cell", fakeLabelCell{val: "alpha"}, "alpha"},
		{"blank cell stays empty", fakeBlankCell{}, ""},
		{"numeric zero is a real value", fakeNumberCell{val: 0}, "0"},
		{"whole number", fakeNumberCell{val: 3}, "3"},
		{"fractional number", fakeNumberCell{val: 2.5}, "2.5"},
		{"negative number", fakeNumberCell{val: -7}, "-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, xlsCellValue(tt.cell))
		})
	}
}

func TestXLSCellValue_ZeroSurvivesRow(t *testing.T) {
	cells := []string{
		xlsCellValue(fakeLabelCell{val: "count"}),
		xlsCellValue(fakeNumberCell{val: 0}),
		xlsCellValue(fakeBlankCell{}),
	}
	assert.Equal(t, "count | 0", rowLine(cells))
}
