package testreport

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gimlet-io/rocketchat-notifier/pkg/model"
)

type testSuites struct {
	XMLName    xml.Name    `xml:"testsuites"`
	TestSuites []testSuite `xml:"testsuite"`
}

type testSuite struct {
	Name      string     `xml:"name,attr"`
	Tests     int        `xml:"tests,attr"`
	Failures  int        `xml:"failures,attr"`
	Errors    int        `xml:"errors,attr"`
	Skipped   int        `xml:"skipped,attr"`
	TestCases []testCase `xml:"testcase"`
}

type testCase struct {
	Name    string    `xml:"name,attr"`
	Failure *struct{} `xml:"failure"`
	Error   *struct{} `xml:"error"`
	Skipped *struct{} `xml:"skipped"`
}

// ParseJUnit counts the tests of a JUnit XML report.
// Errors count as failures.
func ParseJUnit(data []byte) (*model.TestCounts, error) {
	var suites testSuites
	if err := xml.Unmarshal(data, &suites); err == nil && len(suites.TestSuites) > 0 {
		return count(suites.TestSuites), nil
	}

	var suite testSuite
	if err := xml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse JUnit XML: %w", err)
	}

	return count([]testSuite{suite}), nil
}

// ParseFiles sums the test counts of every report matching the given paths or glob patterns
func ParseFiles(patterns ...string) (*model.TestCounts, error) {
	total := &model.TestCounts{}
	found := 0
	for _, pattern := range patterns {
		paths, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid test report pattern %s: %w", pattern, err)
		}
		for _, path := range paths {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("cannot read test report %s: %w", path, err)
			}
			counts, err := ParseJUnit(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			total.Total += counts.Total
			total.Failed += counts.Failed
			total.Skipped += counts.Skipped
			found++
		}
	}

	if found == 0 {
		return nil, fmt.Errorf("no test reports matched %v", patterns)
	}

	return total, nil
}

func count(suites []testSuite) *model.TestCounts {
	counts := &model.TestCounts{}
	for _, suite := range suites {
		var failed, skipped int
		for _, c := range suite.TestCases {
			if c.Failure != nil || c.Error != nil {
				failed++
			} else if c.Skipped != nil {
				skipped++
			}
		}

		// reports without summary attributes only list their test cases
		counts.Total += max(suite.Tests, len(suite.TestCases))
		counts.Failed += max(suite.Failures+suite.Errors, failed)
		counts.Skipped += max(suite.Skipped, skipped)
	}
	return counts
}
