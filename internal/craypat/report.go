// Package craypat imports call trees from CrayPAT text reports, the
// output of `pat_report -O calltree -T <instrumented binary>+pat+*.xf`.
package craypat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/mbareford/io-calltree-viewer/internal/calltree"
	"github.com/mbareford/io-calltree-viewer/internal/errorutil"
)

var (
	// ErrTableNotFound indicates the report contains no line matching the
	// requested table title.
	ErrTableNotFound = errors.New("call tree table not found")
	// ErrRootFuncNotFound indicates the table contains no line matching
	// the requested root function name.
	ErrRootFuncNotFound = errors.New("root function not found")
)

// rawRow holds the still-unparsed columns of one table line. A pat_report
// calltree row looks like
//
//	||  3  |  3.1% |  0.043814 |  4.0 |FieldIOXml::v_Import
//
// where, after turning '|' into spaces and splitting on whitespace, the
// first column is the call's level in the stack, the third its inclusive
// time, the fourth its call count and the last the function name. Rows
// may omit trailing columns, which then read as empty strings.
type rawRow struct {
	level string
	time  string
	calls string
	name  string
}

func parseRow(line string) rawRow {
	cols := strings.Fields(strings.ReplaceAll(line, "|", " "))
	col := func(i int) string {
		if i < len(cols) {
			return cols[i]
		}
		return ""
	}
	r := rawRow{
		level: col(0),
		time:  col(2),
		calls: strings.ReplaceAll(col(3), ",", ""),
	}
	if len(cols) > 0 {
		r.name = cols[len(cols)-1]
	}
	return r
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// Import reads the report at path and builds a call tree rooted at the
// first function whose table row contains rootFunc, looked for after the
// first line containing tableTitle.
func Import(path, tableTitle, rootFunc string) (*calltree.CallTree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ImportFrom(f, tableTitle, rootFunc)
}

// ImportFrom builds a call tree from a report read from r. The read is a
// single forward pass: first the table title line is sought, then the
// root function row, then every following row becomes a descendant until
// a row returns to the root's level or the input ends.
//
// Times are normalized to fractions of the root's inclusive time, so the
// root always carries time 1.0 at level 1. Rows with an unparsable time
// or call count never abort the import; they inherit the already
// normalized value of their parent instead.
func ImportFrom(r io.Reader, tableTitle, rootFunc string) (*calltree.CallTree, error) {
	ct := calltree.New()

	var (
		inTable   bool
		rootFound bool
		rootLevel int
		rootTime  float64
		nodeCnt   = 1
		// Ancestor stack of (level, id) pairs. The parent of a new row
		// at level L is the most recent imported row at level L-1, which
		// after popping every entry at level >= L is the stack's top.
		// The root entry is pinned so rows below the root's level cannot
		// empty the stack.
		stack []stackEntry
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if !inTable {
			inTable = strings.Contains(line, tableTitle)
			continue
		}

		if !rootFound {
			if !strings.Contains(line, rootFunc) {
				continue
			}
			row := parseRow(line)
			lv, err := strconv.Atoi(row.level)
			if err != nil {
				return nil, fmt.Errorf("%w: root row has level %q: %v", errorutil.ErrDataIntegrity, row.level, err)
			}
			rootLevel = lv
			rootTime, err = strconv.ParseFloat(row.time, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: root row has time %q: %v", errorutil.ErrDataIntegrity, row.time, err)
			}
			label := calltree.Label{
				Level: ct.LevelMin,
				Time:  1.0,
				Calls: 1.0,
				Name:  row.name,
			}
			if isNumeric(row.calls) {
				label.Calls, _ = strconv.ParseFloat(row.calls, 64)
			}
			if _, err := ct.AddNode(ct.RootID, label, ""); err != nil {
				return nil, err
			}
			rootFound = true
			stack = append(stack, stackEntry{level: ct.LevelMin, id: ct.RootID})
			continue
		}

		// Separator rows carry no letters; "(exclusive)" rows summarize
		// a function's self time and are not calls.
		if !hasLetter(line) || strings.Contains(line, "(exclusive)") {
			continue
		}

		row := parseRow(line)
		lv, err := strconv.Atoi(row.level)
		if err != nil {
			return nil, fmt.Errorf("%w: row %q has level %q: %v", errorutil.ErrDataIntegrity, row.name, row.level, err)
		}
		level := lv - rootLevel + 1

		// A row back at the root's level starts a sibling of the root or
		// an unrelated section; the tree is complete.
		if level == ct.LevelMin {
			break
		}

		for len(stack) > 1 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		parentID := ct.RootID
		if top := stack[len(stack)-1]; top.level == level-1 {
			parentID = top.id
		}
		parent := ct.Node(parentID)

		if level > ct.LevelMax {
			ct.LevelMax = level
		}

		label := calltree.Label{
			Level: level,
			Name:  row.name,
		}
		if t, err := strconv.ParseFloat(row.time, 64); err == nil {
			label.Time = t / rootTime
		} else {
			label.Time = parent.Label.Time
		}
		if c, err := strconv.ParseFloat(row.calls, 64); err == nil {
			label.Calls = c
		} else {
			label.Calls = parent.Label.Calls
		}
		if label.Calls > ct.CallsMax {
			ct.CallsMax = label.Calls
		}

		nodeCnt++
		id := strconv.Itoa(nodeCnt)
		if _, err := ct.AddNode(id, label, parentID); err != nil {
			return nil, err
		}
		stack = append(stack, stackEntry{level: level, id: id})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !inTable {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, tableTitle)
	}
	if !rootFound {
		return nil, fmt.Errorf("%w: %q", ErrRootFuncNotFound, rootFunc)
	}
	return ct, nil
}

type stackEntry struct {
	level int
	id    string
}
