//
// lair version 0.1.0
//
// A small indentation-structured language: a lexer, a parser into an arena of nodes, and a
// tree-walking evaluator, with a hub for running, inspecting and storing scripts.
//

package main

import (
	"fmt"
	"os"

	"github.com/tim-hardcastle/lair/source/hub"
	"github.com/tim-hardcastle/lair/source/settings"
	"github.com/tim-hardcastle/lair/source/text"
)

func main() {
	cfg := settings.DefaultConfig()
	if path := os.Getenv("LAIR_CONFIG"); path != "" {
		var e error
		cfg, e = settings.LoadConfig(path)
		if e != nil {
			fmt.Fprintln(os.Stderr, text.BROKEN+e.Error())
			os.Exit(1)
		}
	}
	settings.ApplyLogging(cfg, nil)

	hb, e := hub.New(cfg, os.Stdout)
	if e != nil {
		fmt.Fprintln(os.Stderr, text.BROKEN+e.Error())
		os.Exit(1)
	}

	if len(os.Args) == 1 {
		fmt.Print(text.Logo())
		hub.StartHub(hb)
		return
	}
	if os.Args[1] == "-h" || os.Args[1] == "--help" {
		fmt.Print(text.HELP)
		return
	}
	hb.DoHubCommand(os.Args[1], os.Args[2:])
	if hb.Failed() {
		os.Exit(1)
	}
}
