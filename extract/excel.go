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
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellDelimiter joins the non-empty cells of one row.
const cellDelimiter = " | "

// sheetDelimiterLine marks the start of a sheet in the extracted text.
func sheetDelimiterLine(name string) string {
	return fmt.Sprintf("--- Sheet: %s ---", name)
}

// rowLine joins a row's non-empty cells, or returns "" for an empty row.
func rowLine(cells []string) string {
	var kept []string
	for _, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		kept = append(kept, cell)
	}
	return strings.Join(kept, cellDelimiter)
}

// extractXLSX emits, for every sheet in workbook order, a sheet-delimiter
// line followed by one line per non-empty row. Empty sheets still contribute
// their delimiter line.
func extractXLSX(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("xlsx open: %w", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	for _, sheet := range f.GetSheetList() {
		lines = append(lines, sheetDelimiterLine(sheet))

		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("xlsx rows %q: %w", sheet, err)
		}
		for _, row := range rows {
			if line := rowLine(row); line != "" {
				lines = append(lines, line)
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}
