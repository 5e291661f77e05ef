// file:fpmine/pkg/x_data/parse.go
package x_data

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_fptree"
)

const maxLine = 1 << 20

//---------------------
// Line parsing
//---------------------

// ParseLine turns one delimited row into a transaction. Commas and
// whitespace separate values, and values are kept verbatim ('#', quotes and
// backslashes included). The i-th value is paired with the i-th attribute as
// "name:value"; values past the last attribute are dropped. Without
// attributes the raw values are the items.
func ParseLine(line string, attrs []string) x_fptree.Transaction {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) == 0 {
		return nil
	}

	tx := make(x_fptree.Transaction, 0, len(fields))
	for i, v := range fields {
		switch {
		case len(attrs) == 0:
			tx = append(tx, x_fptree.Item(v))
		case i < len(attrs):
			tx = append(tx, x_fptree.Item(attrs[i]+":"+v))
		}
	}
	if len(tx) == 0 {
		return nil
	}
	return tx
}

// SplitAttributes parses a shell-style attribute list such as
// `age,"work class" education`. Quotes group names containing spaces;
// commas separate like spaces outside quotes.
func SplitAttributes(s string) ([]string, error) {
	fields, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("%w: attributes: %v", constant.ErrBadRequest, err)
	}
	var out []string
	for _, f := range fields {
		for _, name := range strings.Split(f, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out, nil
}

// Read parses every line of r. Empty rows are skipped.
func Read(r io.Reader, attrs []string) ([]x_fptree.Transaction, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		out []x_fptree.Transaction
		n   int
	)
	for sc.Scan() {
		n++
		if tx := ParseLine(sc.Text(), attrs); tx != nil {
			out = append(out, tx)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", n+1, err)
	}
	return out, nil
}

// ReadFile parses the file at path.
func ReadFile(path string, attrs []string) ([]x_fptree.Transaction, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("cannot open file %s: %w", path, err)
	}
	defer f.Close()

	txs, err := Read(f, attrs)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return txs, nil
}

// Load reads dataset d from dir. A file without any transaction is an error.
func Load(dir string, d Dataset) ([]x_fptree.Transaction, error) {
	txs, err := ReadFile(d.Path(dir), d.Attributes)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, fmt.Errorf("%w: %s", constant.ErrEmptyDataset, d.Name)
	}
	return txs, nil
}

//---------------------
// Display
//---------------------

// CleanItem returns the part of it after the first '#', or it unchanged.
func CleanItem(it x_fptree.Item) string {
	s := string(it)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[i+1:]
	}
	return s
}
