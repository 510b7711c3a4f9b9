package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"Hidro/internal/calc"
	"Hidro/internal/catalog"
	"Hidro/internal/history"
	"Hidro/internal/units"
)

var commands = []string{"help", "list", "use", "fields", "set", "calc", "save", "history", "rm", "clear", "convert", "exit", "quit"}

var errQuit = errors.New("quit")

// session is the state behind one REPL: the selected category, the values
// typed so far and the last evaluation.
type session struct {
	ctx      context.Context
	out      io.Writer
	store    *history.Store
	category catalog.Category
	values   map[string]calc.Raw
	units    map[string]string
	lastReq  *calc.Request
	lastRes  *calc.Result
}

func newSession(ctx context.Context, out io.Writer, store *history.Store) *session {
	s := &session{ctx: ctx, out: out, store: store}
	c, _ := catalog.Lookup(catalog.FlowRate)
	s.choose(c)
	return s
}

func (s *session) choose(c catalog.Category) {
	s.category = c
	s.values = map[string]calc.Raw{}
	s.units = map[string]string{}
	s.lastReq, s.lastRes = nil, nil
}

func (s *session) prompt() string {
	return string(s.category.ID) + "> "
}

// complete offers command names, then category ids after "use" and field
// names after "set".
func (s *session) complete(line string) []string {
	fields := strings.Fields(line)
	var pool []string
	switch {
	case len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(line, " ")):
		pool = commands
	case fields[0] == "use":
		for _, c := range catalog.All() {
			pool = append(pool, "use "+string(c.ID))
		}
	case fields[0] == "set":
		for _, f := range s.category.Fields {
			pool = append(pool, "set "+f.Name)
		}
	}
	var out []string
	for _, p := range pool {
		if strings.HasPrefix(p, line) {
			out = append(out, p)
		}
	}
	return out
}

func (s *session) exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "exit", "quit":
		return errQuit
	case "help":
		s.help()
	case "list":
		for _, c := range catalog.All() {
			fmt.Fprintf(s.out, "  %-20s %s\n", c.ID, c.Name)
		}
	case "use":
		if len(args) != 2 {
			return errors.New("usage: use <category>")
		}
		c, err := catalog.Lookup(catalog.ID(args[1]))
		if err != nil {
			return err
		}
		s.choose(c)
		fmt.Fprintf(s.out, "%s: %s\n", c.Title, c.Formula)
	case "fields":
		s.fields()
	case "set":
		return s.set(args[1:])
	case "calc":
		return s.calc()
	case "save":
		return s.save()
	case "history":
		s.history()
	case "rm":
		if len(args) != 2 {
			return errors.New("usage: rm <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[1])
		}
		if !s.store.Remove(s.ctx, id) {
			return fmt.Errorf("no entry %d", id)
		}
		fmt.Fprintln(s.out, "removido")
	case "clear":
		s.store.Clear(s.ctx)
		fmt.Fprintln(s.out, "histórico limpo")
	case "convert":
		return s.convert(args[1:])
	default:
		return fmt.Errorf("unknown command %q, try help", args[0])
	}
	return nil
}

func (s *session) help() {
	fmt.Fprintln(s.out, `  list                              categories
  use <category>                    select a category
  fields                            fields of the current category
  set <field> <value> [unit]        enter a value
  calc                              evaluate the current category
  save                              record the last valid result
  history                           show the history, newest first
  rm <id>                           remove a history entry
  clear                             empty the history
  convert <v> <type> <from> <to>    convert between units
  exit                              leave`)
}

func (s *session) fields() {
	if s.category.UsesConversion() {
		for _, mt := range catalog.MeasurementTypes() {
			fmt.Fprintf(s.out, "  %-12s %s [%s]\n", mt.Family, mt.Name, strings.Join(mt.Units, ", "))
		}
		return
	}
	for _, f := range s.category.Fields {
		unit := f.DefaultUnit
		if u, ok := s.units[f.Name]; ok {
			unit = u
		}
		fmt.Fprintf(s.out, "  %-18s %-4s %-10s %s", f.Name, f.Symbol, s.values[f.Name], unit)
		if len(f.Units) > 1 {
			fmt.Fprintf(s.out, " [%s]", strings.Join(f.Units, ", "))
		}
		fmt.Fprintln(s.out)
	}
}

func (s *session) set(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: set <field> <value> [unit]")
	}
	f, ok := s.category.Field(args[0])
	if !ok {
		return fmt.Errorf("%s has no field %q", s.category.ID, args[0])
	}
	s.values[f.Name] = calc.Raw(args[1])
	if len(args) == 3 {
		if _, known := units.FactorOf(f.Family, args[2]); !known {
			fmt.Fprintf(s.out, "unidade %q desconhecida, valor usado sem conversão\n", args[2])
		}
		s.units[f.Name] = args[2]
	}
	return nil
}

func (s *session) evaluate(req calc.Request) error {
	res, err := calc.Run(req)
	if err != nil {
		return err
	}
	s.lastReq, s.lastRes = &req, &res
	switch {
	case !res.Ready():
		fmt.Fprintln(s.out, "preencha todos os campos")
	case !res.Valid():
		fmt.Fprintln(s.out, "resultado inválido para estes valores")
	default:
		for _, step := range res.Derivation {
			fmt.Fprintln(s.out, "  "+step)
		}
	}
	return nil
}

func (s *session) calc() error {
	if s.category.UsesConversion() {
		return errors.New("use convert <v> <type> <from> <to>")
	}
	req := calc.Request{
		Category: s.category.ID,
		Values:   make(map[string]calc.Raw, len(s.values)),
		Units:    make(map[string]string, len(s.units)),
	}
	for k, v := range s.values {
		req.Values[k] = v
	}
	for k, v := range s.units {
		req.Units[k] = v
	}
	return s.evaluate(req)
}

func (s *session) convert(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: convert <v> <type> <from> <to>")
	}
	c, _ := catalog.Lookup(catalog.UnitConversion)
	if s.category.ID != c.ID {
		s.choose(c)
	}
	return s.evaluate(calc.Request{
		Category:   c.ID,
		Values:     map[string]calc.Raw{"value": calc.Raw(args[0])},
		Conversion: &calc.Conversion{MeasurementType: units.Family(args[1]), From: args[2], To: args[3]},
	})
}

func (s *session) save() error {
	if s.lastRes == nil {
		return errors.New("nothing calculated yet")
	}
	e, err := s.store.Record(s.ctx, *s.lastReq, *s.lastRes)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "salvo #%d\n", e.ID)
	return nil
}

func (s *session) history() {
	entries := s.store.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "histórico vazio")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("  #%d  %s  %s: %s %s", e.ID, e.CreatedAt, e.CategoryName, e.Display, e.Unit)
		if e.Regime != "" {
			line += " (" + e.Regime + ")"
		}
		fmt.Fprintln(s.out, line)
		keys := make([]string, 0, len(e.Inputs))
		for k := range e.Inputs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(s.out, "        %s = %s\n", k, e.Inputs[k])
		}
	}
}
