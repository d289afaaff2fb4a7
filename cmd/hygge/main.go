package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	hygge "github.com/cjavad/hyggec"
	"github.com/cjavad/hyggec/ascii"
)

const defaultWritePermission = 0644 // -rw-r--r--

func main() {
	var (
		outPath = flag.String("out", "", "Output file (compile only); stdout if empty")
		color   = flag.Bool("color", false, "ANSI-highlight tree/assembly output")
	)
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		log.Fatal("usage: hygge <tokenise|parse|typecheck|interpret|compile> [fixture-file]")
	}
	stage := args[0]

	if stage == "tokenise" {
		fmt.Fprintln(os.Stderr, "lexing is out of scope for this compiler")
		os.Exit(1)
	}

	var fixturePath string
	if len(args) >= 2 {
		fixturePath = args[1]
	}
	data, err := readFixture(fixturePath)
	if err != nil {
		log.Fatalf("can't read fixture: %s", err.Error())
	}

	theme := ascii.DefaultTheme

	e, err := hygge.DecodeFixture(fixtureName(fixturePath), data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if stage == "parse" {
		fmt.Println(renderTree(e, *color, theme))
		return
	}

	typed, err := hygge.Check(e)
	if err != nil {
		reportCompileError(err)
		os.Exit(1)
	}

	switch stage {
	case "typecheck":
		fmt.Println(renderTree(typed, *color, theme))

	case "interpret":
		exit := runInterpret(typed)
		if exit != 0 {
			os.Exit(exit)
		}

	case "compile":
		doc, err := hygge.Generate(hygge.NewConfig(), typed)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		output := doc.Render()
		if *color {
			output = doc.HighlightRender(theme)
		}
		if *outPath == "" {
			fmt.Println(output)
			return
		}
		if err := os.WriteFile(*outPath, []byte(output+"\n"), defaultWritePermission); err != nil {
			log.Fatalf("can't write assembly file: %s", err.Error())
		}

	default:
		log.Fatalf("unknown subcommand %q", stage)
	}
}

func renderTree(e hygge.Expr, color bool, theme ascii.Theme) string {
	if color {
		return hygge.HighlightPrettyString(e, theme)
	}
	return hygge.PrettyString(e)
}

// runInterpret wires stdin/stdout to the evaluator's Reader/Printer
// callbacks and returns the CLI exit code: 0 on success, 1 on any
// other stuck term, 42 when the stuck term is an assertion failure
// (spec.md 6's "propagated from generated code" applies identically
// here since this interpreter and the generated assembly share one
// semantics).
func runInterpret(typed *hygge.TypedExpr) int {
	stdin := bufio.NewReader(os.Stdin)
	readLine := func() (string, error) {
		line, err := stdin.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	print := func(s string) { fmt.Print(s) }

	env := hygge.NewRuntimeEnv(readLine, print)
	_, err := hygge.Evaluate(env, hygge.Untype(typed))
	if err == nil {
		return 0
	}

	fmt.Fprintln(os.Stderr, err.Error())
	var rerr *hygge.RuntimeError
	if errors.As(err, &rerr) && strings.Contains(rerr.Message, "assertion failed") {
		return 42
	}
	return 1
}

func reportCompileError(err error) {
	var cerr *hygge.CompileError
	if errors.As(err, &cerr) {
		for _, d := range cerr.Diagnostics {
			fmt.Fprintf(os.Stderr, "(%s) %s\n", d.Pos, d.Message)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func readFixture(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func fixtureName(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}
