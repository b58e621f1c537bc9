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

	"code.sajari.com/docconv/v2"
)

// extractDocx concatenates paragraph text in document order, one paragraph
// per logical line.
func extractDocx(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("docx convert: %w", err)
	}
	return text, nil
}

// extractDoc handles the legacy binary Word format through docconv's external
// converter path, which may shell out to wvText or antiword. The whole call
// is opaque: any failure means the document could not be decoded.
func extractDoc(data []byte) (string, error) {
	text, _, err := docconv.ConvertDoc(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("doc convert: %w", err)
	}
	return text, nil
}
