// SPDX-License-Identifier: MIT

// Matrix file I/O.
//
// Format (coordinate form, 1-indexed):
//
//	% optional comment lines (Matrix Market banner included)
//	rows cols nnz
//	row col value      × nnz
//
// Blank lines are ignored. Duplicate coordinates follow last-write-wins.
package matrix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load reads a matrix file from path. A missing file yields ErrMatrixFileNotFound.
// Options: WithLayout / WithDense, WithSymmetric, WithNoValidateNaNInf.
func Load[T Float](path string, opts ...Option) (Matrix[T], error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, matrixErrorf(opLoad, fmt.Errorf("%w: %s", ErrMatrixFileNotFound, path))
		}

		return nil, matrixErrorf(opLoad, err)
	}
	defer f.Close()

	m, err := Read[T](f, opts...)
	if err != nil {
		return nil, matrixErrorf(opLoad, err)
	}

	return m, nil
}

// Read parses the coordinate format from r.
// Stage 1: skip comments/blank lines and parse the header.
// Stage 2: parse exactly nnz entry lines; fewer lines is ErrMatrixFileFormat.
func Read[T Float](r io.Reader, opts ...Option) (Matrix[T], error) {
	o := gatherOptions(opts...)
	sc := bufio.NewScanner(r)
	line := 0

	next := func() ([]string, bool) {
		for sc.Scan() {
			line++
			text := strings.TrimSpace(sc.Text())
			if text == "" || strings.HasPrefix(text, "%") {
				continue
			}

			return strings.Fields(text), true
		}

		return nil, false
	}

	header, ok := next()
	if !ok {
		return nil, readErr(sc, line, "missing header")
	}
	if len(header) != 3 {
		return nil, formatErrorf(line, "header needs 3 fields, got %d", len(header))
	}
	rows, err1 := strconv.Atoi(header[0])
	cols, err2 := strconv.Atoi(header[1])
	nnz, err3 := strconv.Atoi(header[2])
	if err := errors.Join(err1, err2, err3); err != nil || rows <= 0 || cols <= 0 || nnz < 0 {
		return nil, formatErrorf(line, "bad header %q", strings.Join(header, " "))
	}

	m, err := newMatrix[T](o.layout, rows, cols)
	if err != nil {
		return nil, matrixErrorf(opRead, err)
	}

	for k := 0; k < nnz; k++ {
		fields, ok := next()
		if !ok {
			return nil, readErr(sc, line, fmt.Sprintf("expected %d entries, got %d", nnz, k))
		}
		if len(fields) != 3 {
			return nil, formatErrorf(line, "entry needs 3 fields, got %d", len(fields))
		}
		i, erri := strconv.Atoi(fields[0])
		j, errj := strconv.Atoi(fields[1])
		v, errv := strconv.ParseFloat(fields[2], 64)
		if errors.Join(erri, errj, errv) != nil {
			return nil, formatErrorf(line, "bad entry %q", strings.Join(fields, " "))
		}
		if o.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return nil, formatErrorf(line, "non-finite value %q", fields[2])
		}
		if i < 1 || i > rows || j < 1 || j > cols {
			return nil, formatErrorf(line, "entry (%d,%d) outside %dx%d", i, j, rows, cols)
		}
		if err = m.Set(i-1, j-1, T(v)); err != nil {
			return nil, matrixErrorf(opRead, err)
		}
		if o.symmetric && i != j && j <= rows && i <= cols {
			if err = m.Set(j-1, i-1, T(v)); err != nil {
				return nil, matrixErrorf(opRead, err)
			}
		}
	}

	return m, nil
}

// Write emits m in the coordinate format, stored/nonzero entries only.
func Write[T Float](w io.Writer, m Matrix[T]) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opWrite, err)
	}
	nnz := 0
	for i := 0; i < m.Rows(); i++ {
		for _, v := range m.Row(i) {
			if v != 0 {
				nnz++
			}
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", m.Rows(), m.Cols(), nnz)
	for i := 0; i < m.Rows(); i++ {
		for j, v := range m.Row(i) {
			if v != 0 {
				fmt.Fprintf(bw, "%d %d %s\n", i+1, j+1, strconv.FormatFloat(float64(v), 'g', -1, 64))
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return matrixErrorf(opWrite, err)
	}

	return nil
}

func formatErrorf(line int, format string, args ...any) error {
	return matrixErrorf(opRead, fmt.Errorf("%w: line %d: %s", ErrMatrixFileFormat, line, fmt.Sprintf(format, args...)))
}

// readErr distinguishes an I/O failure from a truncated file.
func readErr(sc *bufio.Scanner, line int, msg string) error {
	if err := sc.Err(); err != nil {
		return matrixErrorf(opRead, err)
	}

	return formatErrorf(line, "%s", msg)
}
