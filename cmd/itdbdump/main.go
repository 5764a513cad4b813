// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
The itdbdump tool parses an iTunesDB or ArtworkDB file and prints its
record tree, one line per record, indented by depth.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gnome-child/rpodlib"
	"github.com/gnome-child/rpodlib/walk"
)

var artwork bool

func init() {
	flag.BoolVar(&artwork, "artwork", false, "parse an ArtworkDB file instead of an iTunesDB file")
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Printf("usage: %v [-artwork] filename\n", os.Args[0])
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Printf("error reading file: %v\n", err)
		os.Exit(1)
	}

	var root rpodlib.Record
	if artwork {
		root, err = rpodlib.ParseArtworkDB(data)
	} else {
		var m *rpodlib.Master
		m, err = rpodlib.ParseITunesDB(data)
		root = m
	}
	if err != nil {
		fmt.Printf("error parsing database: %v\n", err)
		os.Exit(1)
	}

	err = walk.Walk(root, func(ancestors []rpodlib.Record, r rpodlib.Record) error {
		fmt.Printf("%s%s (header_len=%d len=%d)\n", strings.Repeat("  ", len(ancestors)), r.Magic(), r.HeaderLen(), r.Len())
		return nil
	})
	if err != nil {
		fmt.Printf("error walking tree: %v\n", err)
		os.Exit(1)
	}
}
