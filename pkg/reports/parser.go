package reports

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/gastroflow/gastroflow/pkg/errors"
	"github.com/gastroflow/gastroflow/pkg/variants"
)

var (
	groupHeaderRe = regexp.MustCompile(`^Group\s*#\s*(\d+)\s*-\s*Parent catalog:\s*(.+?)\s*$`)
	productRe     = regexp.MustCompile(`^\s*\d+\.\s*(\[\s*PARENT\s*\])?\s*([^\s]+)\s*-\s*(.+?)\s*$`)
	baseNameRe    = regexp.MustCompile(`^\s*Base name:\s*(.+?)\s*$`)
)

// ParseGroups reads a variant groups report, possibly hand-edited, back
// into group structures. Catalog entries may be wildcard tokens; nothing is
// resolved here, that is ApplyReport's job. Lines that match none of the
// known shapes are ignored, so operator notes in the file are harmless.
func ParseGroups(r io.Reader) ([]variants.Group, error) {
	var groups []variants.Group
	var current *variants.Group

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if m := groupHeaderRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				groups = append(groups, *current)
			}
			id, _ := strconv.Atoi(m[1])
			current = &variants.Group{ID: id, ParentCode: m[2]}
			continue
		}
		if current == nil {
			continue
		}
		if m := productRe.FindStringSubmatch(line); m != nil {
			current.Members = append(current.Members, variants.Member{
				Code:     m[2],
				Name:     m[3],
				BaseName: variants.ExtractBaseName(m[3]),
				IsParent: m[1] != "",
			})
			continue
		}
		if m := baseNameRe.FindStringSubmatch(line); m != nil && len(current.Members) > 0 {
			current.Members[len(current.Members)-1].BaseName = m[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapParse("report", "", err)
	}
	if current != nil {
		groups = append(groups, *current)
	}
	return groups, nil
}

// ParseGroupsFile reads a groups report from disk.
func ParseGroupsFile(path string) ([]variants.Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()
	return ParseGroups(f)
}
