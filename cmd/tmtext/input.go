package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLine bounds a single line read from stdin
const maxLine = 1 << 20

// inputLines returns args joined into a single line, or every line of r when
// there are no args
func inputLines(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}
