package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/wlgs/fatigue-detection-system/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to a single fixture JSON")
	dirPath := flag.String("dir", "", "directory of *.json fixtures")
	flag.Parse()

	if (*fixturePath == "" && *dirPath == "") || (*fixturePath != "" && *dirPath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		fmt.Fprintln(os.Stderr, "       replay --dir path/to/fixtures/")
		os.Exit(2)
	}

	paths, err := collect(*fixturePath, *dirPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(2)
	}

	failed := 0
	for _, path := range paths {
		if !runOne(path) {
			failed++
		}
	}

	fmt.Printf("\n%d fixtures, %d failed\n", len(paths), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// #endregion main

// #region run-one

func runOne(path string) bool {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
		return false
	}
	report, err := replay.Run(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
		return false
	}
	if !report.Passed() {
		fmt.Printf("FAIL %s (%s)\n", path, f.Description)
		for _, m := range report.Mismatches {
			fmt.Printf("  - %s\n", m)
		}
		return false
	}
	fmt.Printf("PASS %s: ticks=%d rests=%d valid=%d missed=%d false=%d accuracy=%.3f\n",
		path, report.Stats.Ticks, report.Stats.Rests,
		report.Stats.Valid, report.Stats.Missed, report.Stats.False, report.Stats.Accuracy())
	return true
}

// #endregion run-one

// #region collect

func collect(fixture, dir string) ([]string, error) {
	if fixture != "" {
		return []string{fixture}, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no *.json fixtures in %s", dir)
	}
	sort.Strings(matches)
	return matches, nil
}

// #endregion collect
