package fnattrs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// log is the package's debug channel. Disabled unless the caller installs a
// logger through SetLogger.
var log = zerolog.Nop()

// SetLogger routes the package's debug output to the given logger.
func SetLogger(l zerolog.Logger) {
	log = l
}

// Check scans every C source file under the given paths, classifies each
// function declaration's inlining disposition, and writes failures to
// comply with fnattrs directives to the given io.Writer. Directive failures
// do not make Check return an error; scan problems and conflicting
// attributes do, collected across files so one broken file does not mask
// another.
func Check(w io.Writer, paths ...string) error {
	files, err := collectFiles(paths)
	if err != nil {
		return err
	}
	var errs *multierror.Error
	for _, file := range files {
		fileMap, err := scanFile(file)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		for _, line := range sortedLines(fileMap) {
			info := fileMap[line]
			got, err := Classify(info.decl)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s:%d: %w", file, line, err))
				continue
			}
			log.Debug().Str("func", info.decl.Name).Stringer("disposition", got).Msg("classified")
			if info.checked && got != info.want {
				printAssertionFailure(w, info.decl, fmt.Sprintf("classified %s, expected %s", got, info.want))
			}
		}
	}
	return errs.ErrorOrNil()
}

// List prints every function declaration found under the given paths along
// with its classified disposition, one per line.
func List(w io.Writer, paths ...string) error {
	files, err := collectFiles(paths)
	if err != nil {
		return err
	}
	for _, file := range files {
		fileMap, err := scanFile(file)
		if err != nil {
			return err
		}
		for _, line := range sortedLines(fileMap) {
			info := fileMap[line]
			got, err := Classify(info.decl)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", file, line, err)
			}
			fmt.Fprintf(w, "%s:%d:\t%s: %s\n", file, line, info.decl.Name, got)
		}
	}
	return nil
}

func printAssertionFailure(w io.Writer, decl FuncDecl, message string) {
	fmt.Fprintf(w, "%s:%d:\t%s: %s\n", decl.File, decl.Line, decl, message)
}

// collectFiles expands the given paths into a sorted list of C source and
// header files. Directories are walked recursively; explicit file arguments
// are taken as-is regardless of extension.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch filepath.Ext(p) {
			case ".c", ".h":
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func sortedLines(m map[int]lineInfo) []int {
	lines := make([]int, 0, len(m))
	for line := range m {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}
