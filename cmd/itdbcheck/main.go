// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
The itdbcheck tool round-trips an iTunesDB file (parse, fix lengths,
re-emit) and reports whether the result matches the original byte for
byte, printing the first point of divergence if not.
*/
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/gnome-child/rpodlib"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Printf("usage: %v filename\n", os.Args[0])
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Printf("error reading file: %v\n", err)
		os.Exit(1)
	}

	m, err := rpodlib.ParseITunesDB(data)
	if err != nil {
		fmt.Printf("error parsing database: %v\n", err)
		os.Exit(1)
	}

	rpodlib.FixLengths(m)

	var buf bytes.Buffer
	if err := rpodlib.Emit(&buf, m); err != nil {
		fmt.Printf("error emitting database: %v\n", err)
		os.Exit(1)
	}

	if d := rpodlib.Diff(data, buf.Bytes()); d != nil {
		fmt.Printf("round trip mismatch: %v\n", d)
		os.Exit(1)
	}
	fmt.Printf("round trip OK (%d bytes)\n", buf.Len())
}
