package lineedit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// TestWrapAndLocateDataDriven exercises wrapText/locate/displayWidth against
// recorded scripts, following petermattis-prompt's own datadriven-test
// layout for its screen-wrapping logic.
func TestWrapAndLocateDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata/render", func(t *testing.T, path string) {
		datadriven.RunTest(t, path, func(t *testing.T, td *datadriven.TestData) string {
			switch td.Cmd {
			case "wrap":
				var width int
				td.ScanArgs(t, "width", &width)
				rows := wrapText(td.Input, width)
				var b strings.Builder
				for i, r := range rows {
					fmt.Fprintf(&b, "row %d (cols=%d): %q\n", i, r.cols, r.text)
				}
				return b.String()

			case "locate":
				var width, offset int
				td.ScanArgs(t, "width", &width)
				td.ScanArgs(t, "offset", &offset)
				rows := wrapText(td.Input, width)
				row, col := locate(rows, offset)
				return fmt.Sprintf("row=%d col=%d\n", row, col)

			case "width":
				total := 0
				for _, r := range td.Input {
					total += displayWidth(r)
				}
				return fmt.Sprintf("width=%d\n", total)
			}
			return fmt.Sprintf("unknown command %q\n", td.Cmd)
		})
	})
}
