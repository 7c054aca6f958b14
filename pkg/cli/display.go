package cli

import (
	"fmt"

	"github.com/typecheckhq/mycheck/pkg/console"
	"github.com/typecheckhq/mycheck/pkg/typecheck"
)

// displayResultsOverview renders a per-file breakdown of the check results.
func displayResultsOverview(results *typecheck.Results) {
	if len(results.Diagnostics) == 0 {
		fmt.Println(console.FormatSuccessMessage(results.FormatSummary()))
		return
	}

	type fileCounts struct {
		errors   int
		warnings int
	}
	counts := make(map[string]*fileCounts)
	var order []string
	for _, diagnostic := range results.Diagnostics {
		file := diagnostic.Location.File
		c, ok := counts[file]
		if !ok {
			c = &fileCounts{}
			counts[file] = c
			order = append(order, file)
		}
		switch diagnostic.Level {
		case typecheck.LevelError:
			c.errors++
		case typecheck.LevelWarning:
			c.warnings++
		}
	}

	var rows [][]string
	for _, file := range order {
		rows = append(rows, []string{
			console.ToRelativePath(file),
			fmt.Sprintf("%d", counts[file].errors),
			fmt.Sprintf("%d", counts[file].warnings),
		})
	}

	totalRow := []string{
		fmt.Sprintf("TOTAL (%d files checked)", results.FilesChecked),
		fmt.Sprintf("%d", results.ErrorCount()),
		fmt.Sprintf("%d", results.WarningCount()),
	}

	fmt.Print(console.RenderTable(console.TableConfig{
		Title:     "Type Check Overview",
		Headers:   []string{"File", "Errors", "Warnings"},
		Rows:      rows,
		ShowTotal: true,
		TotalRow:  totalRow,
	}))
}
