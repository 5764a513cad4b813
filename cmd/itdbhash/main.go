// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
The itdbhash tool generates or verifies the hash58 checksum of an
iTunesDB file for a given firmware id.
*/
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/gnome-child/rpodlib"
)

var fwid string
var verify bool

func init() {
	flag.StringVar(&fwid, "fwid", "", "16-character hex firmware id")
	flag.BoolVar(&verify, "verify", false, "verify the file's stored hash58 instead of printing the computed one")
}

func main() {
	flag.Parse()
	if fwid == "" || flag.NArg() != 1 {
		fmt.Printf("usage: %v -fwid=<16 hex chars> [-verify] filename\n", os.Args[0])
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Printf("error reading file: %v\n", err)
		os.Exit(1)
	}

	if verify {
		if err := rpodlib.VerifyHash58(fwid, data); err != nil {
			fmt.Printf("hash58 does not match: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("ok")
		return
	}

	digest, err := rpodlib.GenerateHash58(fwid, data)
	if err != nil {
		fmt.Printf("error computing hash58: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hex.EncodeToString(digest))
}
