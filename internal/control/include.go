package control

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strandscfd/strands2d/internal/errs"
)

// resolveIncludes performs the textual `#include "path"` substitution
// the grammar specifies: each include line is replaced in place by the
// referenced file's contents, resolved relative to the including
// file's own directory, recursively. depth guards against include
// cycles.
func resolveIncludes(path string, depth int) (string, error) {
	if depth > 32 {
		return "", errs.New(errs.Config, fmt.Sprintf("#include nesting too deep at %q; possible cycle", path))
	}
	f, err := os.Open(path)
	if err != nil {
		return "", errs.Wrap(errs.IO, fmt.Sprintf("opening control file %q", path), err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var out strings.Builder
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1<<20), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#include") {
			incPath, err := parseIncludePath(trimmed)
			if err != nil {
				return "", err
			}
			if !filepath.IsAbs(incPath) {
				incPath = filepath.Join(dir, incPath)
			}
			included, err := resolveIncludes(incPath, depth+1)
			if err != nil {
				return "", err
			}
			out.WriteString(included)
			out.WriteString("\n")
			continue
		}
		out.WriteString(line)
		out.WriteString("\n")
	}
	if err := sc.Err(); err != nil {
		return "", errs.Wrap(errs.IO, fmt.Sprintf("reading control file %q", path), err)
	}
	return out.String(), nil
}

func parseIncludePath(line string) (string, error) {
	i := strings.Index(line, "\"")
	j := strings.LastIndex(line, "\"")
	if i < 0 || j <= i {
		return "", errs.New(errs.Config, fmt.Sprintf("malformed #include directive %q", line))
	}
	return line[i+1 : j], nil
}
