package tracker

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Source extensions the scanner looks at
var scanExtensions = map[string]bool{
	".go": true, ".ts": true, ".tsx": true, ".js": true,
	".py": true, ".sql": true, ".md": true,
}

var skipDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true, "dist": true,
}

// todoPattern matches "TODO: title" after a comment marker. The title
// may carry bracketed tags: [status:in-progress] [phase:2] [planning:ST-41]
var todoPattern = regexp.MustCompile(`(?://|#|--|\*)\s*TODO:?\s+(.+)$`)

var tagPattern = regexp.MustCompile(`\[(\w+):([\w-]+)\]`)

// Scanner walks a source tree collecting structured TODO comments
type Scanner struct {
	Root string
}

func NewScanner(root string) *Scanner {
	return &Scanner{Root: root}
}

func (s *Scanner) Scan() ([]TodoItem, error) {
	var items []TodoItem

	err := filepath.Walk(s.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !scanExtensions[filepath.Ext(path)] {
			return nil
		}

		fileItems, err := s.scanFile(path)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", path, err)
		}
		items = append(items, fileItems...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (s *Scanner) scanFile(path string) ([]TodoItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rel, err := filepath.Rel(s.Root, path)
	if err != nil {
		rel = path
	}

	var items []TodoItem
	var parentIndent = -1

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		match := todoPattern.FindStringSubmatch(line)
		if match == nil {
			parentIndent = -1
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		item := parseTodo(match[1])
		item.File = rel
		item.Line = lineNo

		// A TODO indented deeper than the one directly above it in the
		// same comment run is a subtask of that TODO
		if parentIndent >= 0 && indent > parentIndent {
			item.Subtask = true
		} else {
			parentIndent = indent
		}

		items = append(items, item)
	}

	return items, scanner.Err()
}

func parseTodo(raw string) TodoItem {
	item := TodoItem{Status: "open"}

	for _, tag := range tagPattern.FindAllStringSubmatch(raw, -1) {
		switch strings.ToLower(tag[1]) {
		case "status":
			item.Status = kebab(tag[2])
		case "phase":
			item.Phase = tag[2]
		case "planning":
			item.Planning = tag[2]
		}
	}

	title := tagPattern.ReplaceAllString(raw, "")
	item.Title = strings.TrimSpace(title)
	return item
}

func kebab(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}
