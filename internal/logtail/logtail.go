// Package logtail reads the tail of the muse diagnostic log for the
// in-app log overlay. It never loads more than maxLines into memory.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path.
// A missing file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level classifies a muse log line by its level token so the overlay can
// color it. Lines without a recognizable level return "".
func Level(line string) string {
	for _, level := range []string{"ERRO", "ERROR", "WARN", "INFO", "DEBU", "DEBUG"} {
		if strings.Contains(line, " "+level+" ") {
			switch level {
			case "ERRO", "ERROR":
				return "error"
			case "WARN":
				return "warn"
			case "INFO":
				return "info"
			default:
				return "debug"
			}
		}
	}
	return ""
}
