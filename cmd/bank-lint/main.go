package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/model"
)

// bank-lint validates a question bank file without starting the server.
// It exits non-zero when the file would be rejected, printing every
// issue so the whole file can be fixed in one pass.
func main() {
	path := flag.String("file", "./questions.json", "Path to the question bank file")
	flag.Parse()

	b, err := bank.LoadFile(*path)
	if err != nil {
		var loadErr *bank.LoadError
		if errors.As(err, &loadErr) {
			fmt.Fprintf(os.Stderr, "%s: %d issue(s)\n", *path, len(loadErr.Issues))
			for _, issue := range loadErr.Issues {
				if issue.QuestionID != "" {
					fmt.Fprintf(os.Stderr, "  %s: %s\n", issue.QuestionID, issue.Message)
				} else {
					fmt.Fprintf(os.Stderr, "  definition %d: %s\n", issue.Index, issue.Message)
				}
			}
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *path, err)
		os.Exit(1)
	}

	fmt.Printf("%s: OK, %d questions\n", *path, b.Len())
	counts := b.CountByCategory()
	for _, category := range model.CategoryPriority() {
		if n := counts[category]; n > 0 {
			fmt.Printf("  %-12s %d\n", category, n)
		}
	}
}
