// Command scriptfec is the compiler front-end's debug driver: it exposes
// the scanner/parser/printer and the code generator's recording emitter as
// two inspectable subcommands, the way the teacher's cmd.Execute exposes
// build/mod/version over the same argument-parsing library.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"scriptfe/ast"
	"scriptfe/checkstub"
	"scriptfe/codegen"
	"scriptfe/config"
	"scriptfe/emit"
	"scriptfe/parser"
	"scriptfe/report"
	"scriptfe/scanner"
	"scriptfe/token"
)

func main() {
	cli := olive.NewCLI("scriptfec", "scriptfec is a debug driver for the script-language compiler front end", true)

	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the diagnostic log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("warn")

	dumpAstCmd := cli.AddSubcommand("dump-ast", "scan, parse, and pretty-print the AST", true)
	dumpAstCmd.AddPrimaryArg("file", "the source file to parse", true)

	dumpAsmCmd := cli.AddSubcommand("dump-asm", "scan, parse, tag, and dump the emitted instruction trace", true)
	dumpAsmCmd.AddPrimaryArg("file", "the source file to compile", true)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "usage error:", err)
		os.Exit(1)
	}

	level := parseLogLevel(result.Arguments["loglevel"].(string))

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "dump-ast":
		runDumpAST(subResult, level)
	case "dump-asm":
		runDumpAsm(subResult, level)
	default:
		fmt.Fprintln(os.Stderr, "no subcommand given; try dump-ast or dump-asm")
		os.Exit(1)
	}
}

func parseLogLevel(s string) int {
	switch s {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "verbose":
		return report.LogLevelVerbose
	default:
		return report.LogLevelWarn
	}
}

// openAndParse is the scan-then-parse pipeline both subcommands share: a
// fresh atom table and collector per compilation unit, a dialect loaded
// from the source file's directory (falling back to config.Default), and
// the resulting tree plus its diagnostics collector.
func openAndParse(path string) (*ast.ParseTree, *report.Collector, *token.Table) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer f.Close()

	dialect, err := config.Load(filepath.Dir(path))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading dialect:", err)
		os.Exit(1)
	}

	atoms := token.NewTable()
	col := report.NewCollector()
	sc := scanner.New(f, col, atoms)
	p := parser.New(sc, col, dialect, atoms)

	return p.Parse(), col, atoms
}

func runDumpAST(result *olive.ArgParseResult, level int) {
	path, _ := result.PrimaryArg()
	tree, col, _ := openAndParse(path)

	report.Render(path, col, level)

	printer := ast.NewPrinter(os.Stdout)
	printer.Print(tree)
}

// runDumpAsm runs the parser's output through checkstub's demo value-
// tagger -- explicitly not the type checker (package doc comment) -- then
// drives the code generator's recording emitter over every expression in
// the tree. A generator ICE (a tree shape the stub tagger produced that
// codegen wasn't contracted to see) is reported like any other fatal
// driver error rather than a raw panic, since this path is the one place
// in the repository that feeds codegen an untrusted, non-checker tree.
func runDumpAsm(result *olive.ArgParseResult, level int) {
	path, _ := result.PrimaryArg()
	tree, col, _ := openAndParse(path)

	report.Render(path, col, level)
	if col.HasErrors() {
		os.Exit(1)
	}

	tagger := checkstub.NewTagger()
	tagger.TagTree(tree)

	rec := emit.NewRecorder()
	gen := codegen.New(rec)

	if err := emitSafely(gen, tree); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Print(rec.Disassembly())
}

func emitSafely(gen *codegen.Generator, tree *ast.ParseTree) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ice, ok := r.(*report.ICEError); ok {
				err = ice
				return
			}
			panic(r)
		}
	}()
	walkAndEmit(gen, tree)
	return nil
}
