package main

import (
	"fmt"
	"os"

	"github.com/impodog/leas/cook"
	"github.com/impodog/leas/env"
	"github.com/impodog/leas/eval"
	"github.com/impodog/leas/lexer"
	"github.com/impodog/leas/repl"
	"github.com/impodog/leas/slice"
	"github.com/impodog/leas/stdlib"
)

func main() {
	if len(os.Args) > 1 {
		runFile(os.Args[1])
		return
	}
	repl.Start(os.Stdin, os.Stdout)
}

func runFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leas: %s\n", err)
		os.Exit(1)
	}

	toks, err := lexer.Lex(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "leas: %s\n", err)
		os.Exit(1)
	}
	sl, err := slice.Build(toks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leas: %s\n", err)
		os.Exit(1)
	}
	st, err := cook.Cook(sl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leas: %s\n", err)
		os.Exit(1)
	}

	root := env.NewRoot(env.NewEnv())
	stdlib.Install(root)
	root.Env().ForwardBase(dirOf(path))

	if _, err := eval.Run(st, root); err != nil {
		fmt.Fprintf(os.Stderr, "leas: %s\n", err)
		os.Exit(1)
	}
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
