/*
 * Copyright 2026 the cudymon authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package devices

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cudymon/cudymon/pkg/models"
)

// Column layout of the devlist detail page. The page itself is a versioned
// external dependency; only this cell ordering is relied upon.
const (
	colHostname = iota
	colIP
	colMAC
	colConnection
	colSignal
	colUpSpeed
	colDownSpeed
	colOnline

	deviceRowCells = 8
)

var macPattern = regexp.MustCompile(`^(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)

// ExtractDevices parses the device-list page into raw records, one per
// table row. It operates purely on the supplied HTML string and never
// touches the network. Rows without a valid MAC are dropped; malformed
// numeric cells default to zero. An unparseable page yields nil.
func ExtractDevices(html string) []models.RawDevice {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var out []models.RawDevice

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < deviceRowCells {
			// Header rows and decorative rows.
			return
		}

		rec := models.RawDevice{
			Hostname:   cellText(cells, colHostname),
			IP:         cellText(cells, colIP),
			MAC:        cellText(cells, colMAC),
			Connection: cellText(cells, colConnection),
			Signal:     cellText(cells, colSignal),
			UpSpeed:    parseSpeed(cellText(cells, colUpSpeed)),
			DownSpeed:  parseSpeed(cellText(cells, colDownSpeed)),
			Online:     cellText(cells, colOnline),
		}

		if !macPattern.MatchString(rec.MAC) {
			// Without a MAC there is no reconciliation key.
			return
		}

		out = append(out, rec)
	})

	return out
}

func cellText(cells *goquery.Selection, idx int) string {
	text := cells.Eq(idx).Text()
	// The page pads cells with non-breaking spaces.
	text = strings.ReplaceAll(text, "\u00a0", " ")

	return strings.TrimSpace(text)
}

// parseSpeed converts a speed cell ("1.25 Mbps", "640Kbps", "12.5") to
// Mbps. A bare number is taken as Mbps, which is what the detail page
// renders when it omits the unit.
func parseSpeed(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" || text == models.SignalPlaceholder {
		return 0
	}

	factor := 1.0
	lower := strings.ToLower(text)

	switch {
	case strings.HasSuffix(lower, "gbps"):
		factor = 1000
		text = text[:len(text)-4]
	case strings.HasSuffix(lower, "mbps"):
		text = text[:len(text)-4]
	case strings.HasSuffix(lower, "kbps"):
		factor = 1.0 / 1000
		text = text[:len(text)-4]
	case strings.HasSuffix(lower, "bps"):
		factor = 1.0 / 1000000
		text = text[:len(text)-3]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}

	return value * factor
}
