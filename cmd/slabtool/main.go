// slabtool is an interactive shell over a single in-memory
// slab-backed associative container.
//
// Usage:
//
//	slabtool [--seed file.jsonc]
//
// Commands (in the shell):
//
//	insert <value...>        Insert a value, printing its new key
//	get <key>                 Print the value at key, if occupied
//	del <key>                  Remove the value at key
//	len                        Print element count and capacity
//	keys                       List all occupied keys in order
//	values                     List all occupied values in key order
//	optimize                   Compact the free-list encoding
//	retain <substring>         Keep only values containing substring
//	clear                      Drop every value
//	drain                      Remove and print every value
//	seed <file>                Bulk-load entries from a JSONC file
//	export <file>               Write a JSON snapshot atomically
//	help                        Show this help
//	exit / quit / q             Exit
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/frozenlib/slabmap"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("slabtool", flag.ExitOnError)
	seedPath := fs.StringP("seed", "s", "", "JSONC file of entries to bulk-load at startup")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slabtool [options]\n\n")
		fmt.Fprintf(os.Stderr, "Interactive shell over a slab-backed associative container.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	repl := &REPL{slab: slabmap.New[string]()}

	if *seedPath != "" {
		grown, count, err := applySeed(repl.slab, *seedPath)
		if err != nil {
			return fmt.Errorf("seeding from %s: %w", *seedPath, err)
		}

		repl.slab = grown
		fmt.Printf("Seeded %d entries from %s\n", count, *seedPath)
	}

	return repl.Run()
}

// REPL is the interactive command loop.
type REPL struct {
	slab  *slabmap.SlabMap[string]
	liner *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".slabtool_history")
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Println("slabtool - slab-backed associative container shell")
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("slabtool> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "insert", "put":
			r.cmdInsert(args)

		case "get":
			r.cmdGet(args)

		case "del", "delete", "remove":
			r.cmdRemove(args)

		case "len", "count":
			r.cmdLen()

		case "keys":
			r.cmdKeys()

		case "values":
			r.cmdValues()

		case "optimize":
			r.cmdOptimize()

		case "retain":
			r.cmdRetain(args)

		case "clear":
			r.cmdClear()

		case "drain":
			r.cmdDrain()

		case "seed":
			r.cmdSeed(args)

		case "export":
			r.cmdExport(args)

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *REPL) completer(line string) []string {
	commands := []string{
		"insert", "put", "get", "del", "delete", "remove",
		"len", "count", "keys", "values", "optimize", "retain",
		"clear", "drain", "seed", "export", "help", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  insert <value...>    Insert a value, printing its new key")
	fmt.Println("  get <key>            Print the value at key, if occupied")
	fmt.Println("  del <key>            Remove the value at key")
	fmt.Println("  len                  Print element count and capacity")
	fmt.Println("  keys                 List all occupied keys in order")
	fmt.Println("  values               List all occupied values in key order")
	fmt.Println("  optimize             Compact the free-list encoding")
	fmt.Println("  retain <substring>   Keep only values containing substring")
	fmt.Println("  clear                Drop every value")
	fmt.Println("  drain                Remove and print every value")
	fmt.Println("  seed <file>          Bulk-load entries from a JSONC file")
	fmt.Println("  export <file>        Write a JSON snapshot atomically")
	fmt.Println("  help                 Show this help")
	fmt.Println("  exit / quit / q      Exit")
}

func (r *REPL) cmdInsert(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: insert <value...>")

		return
	}

	key := r.slab.Insert(strings.Join(args, " "))
	fmt.Printf("OK: key=%d\n", key)
}

func (r *REPL) parseKeyArg(args []string, usage string) (int, bool) {
	if len(args) < 1 {
		fmt.Println(usage)

		return 0, false
	}

	key, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("Error: %q is not an integer key\n", args[0])

		return 0, false
	}

	return key, true
}

func (r *REPL) cmdGet(args []string) {
	key, ok := r.parseKeyArg(args, "Usage: get <key>")
	if !ok {
		return
	}

	value, found := r.slab.Get(key)
	if !found {
		fmt.Println("(not found)")

		return
	}

	fmt.Printf("%d: %q\n", key, *value)
}

func (r *REPL) cmdRemove(args []string) {
	key, ok := r.parseKeyArg(args, "Usage: del <key>")
	if !ok {
		return
	}

	value, found := r.slab.Remove(key)
	if !found {
		fmt.Println("(not found)")

		return
	}

	fmt.Printf("OK: removed %d: %q\n", key, value)
}

func (r *REPL) cmdLen() {
	fmt.Printf("len=%d capacity=%d\n", r.slab.Len(), r.slab.Capacity())
}

func (r *REPL) cmdKeys() {
	keys := r.slab.Keys()
	if len(keys) == 0 {
		fmt.Println("(empty)")

		return
	}

	fmt.Println(keys)
}

func (r *REPL) cmdValues() {
	if r.slab.IsEmpty() {
		fmt.Println("(empty)")

		return
	}

	for k, v := range r.slab.All() {
		fmt.Printf("%d: %q\n", k, *v)
	}
}

func (r *REPL) cmdOptimize() {
	r.slab.Optimize()
	fmt.Println("OK: optimized")
}

func (r *REPL) cmdRetain(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: retain <substring>")

		return
	}

	substring := strings.Join(args, " ")
	before := r.slab.Len()

	r.slab.Retain(func(_ int, value *string) bool {
		return strings.Contains(*value, substring)
	})

	fmt.Printf("OK: kept %d of %d\n", r.slab.Len(), before)
}

func (r *REPL) cmdClear() {
	r.slab.Clear()
	fmt.Println("OK: cleared")
}

func (r *REPL) cmdDrain() {
	d := r.slab.Drain()

	count := 0
	for {
		key, value, ok := d.Next()
		if !ok {
			break
		}

		fmt.Printf("%d: %q\n", key, value)
		count++
	}

	fmt.Printf("OK: drained %d entries\n", count)
}

func (r *REPL) cmdSeed(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: seed <file>")

		return
	}

	grown, count, err := applySeed(r.slab, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.slab = grown
	fmt.Printf("OK: seeded %d entries from %s\n", count, args[0])
}

func (r *REPL) cmdExport(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: export <file>")

		return
	}

	count, err := exportSnapshot(r.slab, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("OK: exported %d entries to %s\n", count, args[0])
}
