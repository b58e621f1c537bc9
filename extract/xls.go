// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"
)

// extractXLS handles the legacy BIFF workbook format with the same output
// shape as extractXLSX: a delimiter line per sheet, one line per non-empty
// row, source order preserved.
func extractXLS(data []byte) (string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("xls open: %w", err)
	}

	var lines []string
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sheet, err := wb.GetSheet(i)
		if err != nil {
			return "", fmt.Errorf("xls sheet %d: %w", i, err)
		}

		lines = append(lines, sheetDelimiterLine(sheet.GetName()))
		for _, row := range sheet.GetRows() {
			if line := rowLine(xlsCellValues(row.GetCols())); line != "" {
				lines = append(lines, line)
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}

// xlsCell is the subset of the BIFF cell record surface the extractor reads.
type xlsCell interface {
	GetString() string
	GetFloat64() float64
	GetInt64() int64
}

// xlsCellValues renders BIFF cells as strings, falling back to the numeric
// representations for cells without a string value.
func xlsCellValues(cols []structure.CellData) []string {
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		out = append(out, xlsCellValue(col))
	}
	return out
}

// xlsCellValue renders one cell. Blank records and numeric zeros are
// indistinguishable through the value getters (both read back as "" / 0),
// so the concrete record type decides: a numeric record holding zero is a
// real value and renders as "0", a blank record stays empty.
func xlsCellValue(col xlsCell) string {
	if val := col.GetString(); val != "" {
		return val
	}
	if !xlsNumericCell(col) {
		return ""
	}
	num := col.GetFloat64()
	if in := col.GetInt64(); num == float64(in) {
		return strconv.FormatInt(in, 10)
	}
	return strconv.FormatFloat(num, 'f', -1, 64)
}

// xlsNumericCell reports whether the cell is a numeric BIFF record
// (Number, RK, or a multi-RK run).
func xlsNumericCell(col xlsCell) bool {
	name := strings.ToLower(fmt.Sprintf("%T", col))
	return strings.Contains(name, "number") || strings.Contains(name, "rk")
}
