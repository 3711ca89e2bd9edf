// Command whilec is the CLI front end for the WHILE core: lex+parse+run
// a source file, inspect the PAD encoding of a program, or drive a
// read-eval-print loop. Every subcommand resolves its dialect and
// display settings against the shared defaults in config.go.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/hwhile-go/corewhile"
	"github.com/hwhile-go/corewhile/internal/lexer"
)

const (
	appName     = "whilec"
	historyFile = ".whilec_history"
	promptMain  = "while> "
	promptCont  = "   ... "
)

var (
	cfgPath    string
	flagPure   bool
	flagFormat string
	flagIndent int
	loadedCfg  corewhile.Config
)

func main() {
	root := &cobra.Command{
		Use:   appName,
		Short: "Parse, run, and inspect WHILE programs",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", ".whilec.toml", "path to a whilec config file")
	root.PersistentFlags().BoolVar(&flagPure, "pure", false, "restrict to the pure dialect (no numerals, no switch)")
	root.PersistentFlags().StringVar(&flagFormat, "format", "", "display format: hwhile or pure (overrides config)")
	root.PersistentFlags().IntVar(&flagIndent, "indent", 0, "display indent width (overrides config)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := corewhile.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("loading %s: %w", cfgPath, err)
		}
		if cmd.Flags().Changed("pure") {
			cfg.PureOnly = flagPure
		}
		if flagFormat != "" {
			cfg.Format = flagFormat
		}
		if flagIndent != 0 {
			cfg.Indent = flagIndent
		}
		loadedCfg = cfg
		return nil
	}

	root.AddCommand(runCmd(), parseCmd(), padCmd(), replCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var inputJSON string
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Parse and execute a WHILE program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := parseFile(args[0])
			if err != nil {
				return err
			}
			if !program.Complete() {
				os.Exit(1)
			}

			input := corewhile.Nil
			if inputJSON != "" {
				var v any
				if err := json.Unmarshal([]byte(inputJSON), &v); err != nil {
					return fmt.Errorf("--input: %w", err)
				}
				t, err := corewhile.TreeFromPAD(v)
				if err != nil {
					return fmt.Errorf("--input: %w", err)
				}
				input = t
			}

			ip := corewhile.NewInterpreter()
			out, err := ip.Run(program, input, corewhile.RunOptions{})
			if err != nil {
				return err
			}
			b, err := json.Marshal(corewhile.TreeToPAD(out))
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&inputJSON, "input", "", "input tree as PAD JSON (default nil)")
	return cmd
}

func parseCmd() *cobra.Command {
	var showPAD bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a WHILE program and print its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := parseFile(args[0])
			if err != nil {
				return err
			}
			if showPAD && program.Complete() {
				pad, err := corewhile.ToPAD(program)
				if err != nil {
					return err
				}
				fmt.Println(corewhile.DisplayPAD(pad, loadedCfg.DisplayFormat()))
			}
			if !program.Complete() {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showPAD, "pad", false, "also print the program's PAD display form")
	return cmd
}

func padCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "pad", Short: "Work with the PAD encoding directly"}

	encode := &cobra.Command{
		Use:   "encode <file>",
		Short: "Parse a file and print its PAD encoding as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := parseFile(args[0])
			if err != nil {
				return err
			}
			if !program.Complete() {
				os.Exit(1)
			}
			pad, err := corewhile.ToPAD(program)
			if err != nil {
				return err
			}
			b, err := json.Marshal(pad)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		},
	}

	decode := &cobra.Command{
		Use:   "decode",
		Short: "Read PAD JSON from stdin, validate it, print it back normalized",
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any
			if err := json.NewDecoder(os.Stdin).Decode(&v); err != nil {
				return err
			}
			program, err := corewhile.FromPAD(v)
			if err != nil {
				return err
			}
			pad, err := corewhile.ToPAD(program)
			if err != nil {
				return err
			}
			b, err := json.Marshal(pad)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		},
	}

	display := &cobra.Command{
		Use:   "display",
		Short: "Read PAD JSON from stdin and render it per the configured format",
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any
			if err := json.NewDecoder(os.Stdin).Decode(&v); err != nil {
				return err
			}
			fmt.Print(corewhile.DisplayPAD(v, loadedCfg.DisplayFormat()))
			return nil
		},
	}

	cmd.AddCommand(encode, decode, display)
	return cmd
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read a program and an input tree, run it, print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	fmt.Println("whilec REPL. Ctrl+D to exit")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		src, ok := readUntilParses(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		toks, lexErr := lexer.Scan(src)
		if lexErr != nil {
			fmt.Fprintln(os.Stderr, lexErr.Error())
			continue
		}
		program, errs := corewhile.Parse(toks, loadedCfg.ParserOptions())
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, corewhile.WrapErrorRecord(e, "repl", src))
		}
		if !program.Complete() {
			continue
		}

		input, ok := promptInputTree(ln)
		if !ok {
			continue
		}

		ip := corewhile.NewInterpreter()
		out, err := ip.Run(program, input, corewhile.RunOptions{})
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}
		fmt.Print(corewhile.DisplayPAD(corewhile.TreeToPAD(out), loadedCfg.DisplayFormat()))
	}
}

// readUntilParses accumulates lines until the buffer parses cleanly, an
// empty line forces submission (so diagnostics for a broken program get
// shown instead of prompting forever), or the user signals EOF.
func readUntilParses(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", false
		}
		if line == "" && b.Len() > 0 {
			return b.String(), true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		toks, lexErr := lexer.Scan(src)
		if lexErr != nil {
			continue
		}
		program, errs := corewhile.Parse(toks, loadedCfg.ParserOptions())
		if program.Complete() && len(errs) == 0 {
			return src, true
		}
	}
}

func promptInputTree(ln *liner.State) (corewhile.Tree, bool) {
	line, err := ln.Prompt("  input (number or PAD JSON)> ")
	if err != nil {
		return corewhile.Nil, false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return corewhile.Nil, true
	}
	if n, err := strconv.Atoi(line); err == nil {
		return corewhile.EncodeNumber(n), true
	}
	var v any
	if err := json.Unmarshal([]byte(line), &v); err != nil {
		fmt.Fprintln(os.Stderr, "invalid input:", err)
		return corewhile.Nil, false
	}
	t, err := corewhile.TreeFromPAD(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid input:", err)
		return corewhile.Nil, false
	}
	return t, true
}

// parseFile lexes and parses path, printing each diagnostic as
// path:row:col: message, then returns the program, complete or not.
func parseFile(path string) (*corewhile.Program, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	toks, lexErr := lexer.Scan(string(b))
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, lexErr.Error())
	}
	program, errs := corewhile.Parse(toks, loadedCfg.ParserOptions())
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", path, e.Position.Row+1, e.Position.Col+1, e.Message)
	}
	return program, nil
}
