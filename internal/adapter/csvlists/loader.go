// Package csvlists loads the DNSBL zone and IP input lists. Files are plain
// CSV; only the first column of each row is used, blank lines and lines
// starting with '#' are skipped.
package csvlists

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	var values []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read list %s: %w", path, err)
		}
		if len(record) == 0 {
			continue
		}
		value := strings.TrimSpace(record[0])
		if value == "" {
			continue
		}
		values = append(values, value)
	}
	return values, nil
}
