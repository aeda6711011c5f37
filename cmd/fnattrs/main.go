package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/c-analysis/fnattrs"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

var (
	list    = flag.Bool("list", false, "print every declaration and its disposition instead of checking directives")
	verbose = flag.BoolP("verbose", "v", false, "enable debug logging")
)

func main() {
	flag.Parse()
	if *verbose {
		fnattrs.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger())
	}
	if *list {
		if err := fnattrs.List(os.Stdout, flag.Args()...); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	var buf strings.Builder
	err := fnattrs.Check(&buf, flag.Args()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	output := buf.String()
	if len(output) != 0 {
		fmt.Fprint(os.Stderr, output)
		os.Exit(1)
	}
}
