package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// readToken returns arg, or the first non-empty line of stdin when arg is "-"
func readToken(arg string, stdin io.Reader) (string, error) {
	if arg != "-" {
		return strings.TrimSpace(arg), nil
	}

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read token from stdin: %w", err)
	}
	return "", fmt.Errorf("no token on stdin")
}
