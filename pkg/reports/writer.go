// Package reports renders the human-facing audit trail of a reconciliation
// run: variant group listings, per-member difference listings and report
// re-application summaries. The group format is stable because operators
// hand-edit these files and feed them back in; ParseGroups reads them back.
package reports

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/utc"

	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/constants"
	"github.com/gastroflow/gastroflow/pkg/errors"
	"github.com/gastroflow/gastroflow/pkg/variants"
)

const (
	timestampFormat = "2006-01-02 15:04:05"
	fileStampFormat = "20060102_150405"

	parentMarker = "[PARENT]"
	noDiffNote   = "Žiadne rozdiely neboli detekované"
)

var (
	dashRule  = strings.Repeat("-", 80)
	equalRule = strings.Repeat("=", 80)
)

// WriteGroups renders variant groups in the re-parseable report format.
func WriteGroups(w io.Writer, groups []variants.Group) error {
	total := 0
	for _, g := range groups {
		total += len(g.Members)
	}

	fmt.Fprintln(w, "PRODUCT VARIANT GROUPS REPORT")
	fmt.Fprintln(w, "===========================")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n", utc.Now().Format(timestampFormat))
	fmt.Fprintf(w, "Total groups: %d\n", len(groups))
	fmt.Fprintf(w, "Total variants: %d\n\n", total)

	for _, g := range groups {
		fmt.Fprintf(w, "Group #%d - Parent catalog: %s\n", g.ID, g.ParentCode)
		fmt.Fprintln(w, dashRule)
		for i, member := range g.Members {
			indicator := strings.Repeat(" ", len(parentMarker))
			if member.IsParent {
				indicator = parentMarker
			}
			fmt.Fprintf(w, "%d. %s %s - %s\n", i+1, indicator, member.Code, member.Name)
			fmt.Fprintf(w, "   Base name: %s\n", member.BaseName)
		}
		fmt.Fprintf(w, "\n%s\n\n", equalRule)
	}
	return nil
}

// WriteDifferences renders the extracted attributes per group member.
// Members whose category has no schema entry are omitted; members with no
// extracted values get an explicit note so a blank line never reads as an
// oversight.
func WriteDifferences(w io.Writer, t *catalog.Table, groups []variants.Group, schema *variants.Schema) error {
	fmt.Fprintln(w, "PRODUCT DIFFERENCES REPORT")
	fmt.Fprintln(w, equalRule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n\n", utc.Now().Format(timestampFormat))

	for _, g := range groups {
		fmt.Fprintf(w, "Group #%d - Parent catalog: %s\n", g.ID, g.ParentCode)
		fmt.Fprintln(w, dashRule)

		line := 0
		for _, member := range g.Members {
			rec, ok := t.Get(member.Code)
			if !ok {
				continue
			}
			if len(schema.Columns(rec.Category)) == 0 {
				continue
			}
			line++

			indicator := strings.Repeat(" ", len(parentMarker)+1)
			if member.Code == g.ParentCode {
				indicator = parentMarker + " "
			}
			fmt.Fprintf(w, "%d. %s%s - %s\n", line, indicator, member.Code, rec.Name)

			var dims []string
			for _, key := range []string{catalog.AttrWidth, catalog.AttrLength, catalog.AttrHeight} {
				if v := rec.Attribute(key); v != "" {
					dims = append(dims, key+": "+v)
				}
			}
			hasDiff := len(dims) > 0
			if len(dims) > 0 {
				fmt.Fprintf(w, "   Rozmery: %s\n", strings.Join(dims, ", "))
			}
			for _, key := range []string{catalog.AttrPower, catalog.AttrVolume, catalog.AttrVariant} {
				if v := rec.Attribute(key); v != "" {
					fmt.Fprintf(w, "   %s: %s\n", key, v)
					hasDiff = true
				}
			}
			if !hasDiff {
				fmt.Fprintf(w, "   %s\n", noDiffNote)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "\n%s\n\n", equalRule)
	}
	return nil
}

// WriteSummary renders a report re-application audit summary.
func WriteSummary(w io.Writer, s *variants.Summary) error {
	fmt.Fprintln(w, "VARIANT ASSIGNMENT SUMMARY")
	fmt.Fprintln(w, equalRule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n\n", utc.Now().Format(timestampFormat))
	fmt.Fprintf(w, "Groups processed: %d\n", s.Groups)
	fmt.Fprintf(w, "Products considered: %d\n", s.TotalProducts)
	fmt.Fprintf(w, "Assignments made: %d\n", s.Assigned)
	fmt.Fprintf(w, "Conflicts overridden: %d\n", len(s.OverriddenConflicts))
	fmt.Fprintf(w, "Conflicts skipped: %d\n", len(s.SkippedConflicts))
	fmt.Fprintf(w, "Unmatched parent tokens: %d\n", len(s.UnmatchedParents))
	fmt.Fprintf(w, "Unmatched product tokens: %d\n", len(s.UnmatchedProducts))
	fmt.Fprintf(w, "Ambiguous parent tokens: %d\n", len(s.AmbiguousParents))
	fmt.Fprintf(w, "Ambiguous product tokens: %d\n\n", len(s.AmbiguousProducts))

	writeIssues(w, "UNMATCHED PARENTS", s.UnmatchedParents)
	writeIssues(w, "UNMATCHED PRODUCTS", s.UnmatchedProducts)
	writeIssues(w, "AMBIGUOUS PARENTS", s.AmbiguousParents)
	writeIssues(w, "AMBIGUOUS PRODUCTS", s.AmbiguousProducts)
	writeConflicts(w, "CONFLICTS OVERRIDDEN", s.OverriddenConflicts)
	writeConflicts(w, "CONFLICTS SKIPPED", s.SkippedConflicts)
	return nil
}

func writeIssues(w io.Writer, title string, items []variants.TokenIssue) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, dashRule)
	for _, it := range items {
		fmt.Fprintf(w, "group #%d: token %q", it.GroupID, it.Token)
		if it.MatchCount > 0 {
			fmt.Fprintf(w, " (matches: %d)", it.MatchCount)
		}
		if it.Selected != "" {
			fmt.Fprintf(w, " selected %s", it.Selected)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func writeConflicts(w io.Writer, title string, items []variants.Conflict) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, dashRule)
	for _, c := range items {
		fmt.Fprintf(w, "group #%d: %s parent %s -> %s\n", c.GroupID, c.Code, c.OldParent, c.NewParent)
	}
	fmt.Fprintln(w)
}

// Writer persists reports under a directory with timestamped filenames.
type Writer struct {
	dir string
}

// NewWriter returns a writer rooted at dir; the directory is created on
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteGroupsFile writes a groups report and returns its path.
func (rw *Writer) WriteGroupsFile(groups []variants.Group) (string, error) {
	return rw.writeFile("product_variants", func(w io.Writer) error {
		return WriteGroups(w, groups)
	})
}

// WriteDifferencesFile writes a differences report and returns its path.
func (rw *Writer) WriteDifferencesFile(t *catalog.Table, groups []variants.Group, schema *variants.Schema) (string, error) {
	return rw.writeFile("product_differences", func(w io.Writer) error {
		return WriteDifferences(w, t, groups, schema)
	})
}

// WriteSummaryFile writes an assignment summary and returns its path.
func (rw *Writer) WriteSummaryFile(s *variants.Summary) (string, error) {
	return rw.writeFile("variant_assignment_summary", func(w io.Writer) error {
		return WriteSummary(w, s)
	})
}

func (rw *Writer) writeFile(prefix string, render func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(rw.dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("mkdir", rw.dir, err)
	}
	path := filepath.Join(rw.dir, fmt.Sprintf("%s_%s.txt", prefix, utc.Now().Format(fileStampFormat)))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.WrapIO("create", path, err)
	}
	defer f.Close()
	if err := render(f); err != nil {
		return "", err
	}
	return path, nil
}
