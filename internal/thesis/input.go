package thesis

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadInput reads a thesis input from a YAML file. Fields missing from the
// file keep the values already in base.
func LoadInput(path string, base Input) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read thesis input: %w", err)
	}
	in := base
	if err := yaml.Unmarshal(data, &in); err != nil {
		return base, fmt.Errorf("parse thesis input: %w", err)
	}
	return in, nil
}

// Answers with a special meaning at a list prompt.
const (
	AddMore = "+" // show one more input in the current list
	Clear   = "-" // drop the value shown for this input
)

type prompter struct {
	sc *bufio.Scanner
	w  io.Writer
}

func (p *prompter) read() (string, bool) {
	if !p.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.sc.Text()), true
}

// ask prints label with its current value and returns the answer.
// An empty answer keeps current.
func (p *prompter) ask(label, current string) (string, bool) {
	if current != "" {
		fmt.Fprintf(p.w, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.w, "%s: ", label)
	}
	line, ok := p.read()
	if !ok {
		return current, false
	}
	if line == "" {
		return current, true
	}
	return line, true
}

// Interactive walks the whole form: header fields, holding period, the five
// lists, risk response and verdict. Values already in in, from a file or an
// analysis, are offered as defaults and kept on an empty answer. End of
// input stops prompting and keeps everything entered so far.
func Interactive(r io.Reader, w io.Writer, form *Form, in *Input) error {
	p := &prompter{sc: bufio.NewScanner(r), w: w}
	form.Seed(in)

	err := p.walk(form, in)
	form.Apply(in)
	if err != nil {
		return err
	}
	return p.sc.Err()
}

func (p *prompter) walk(form *Form, in *Input) error {
	if !p.header(in) {
		return nil
	}
	period, ok := choose(p, "Target holding period", Periods, in.Period)
	in.Period = period
	if !ok {
		return nil
	}

	for _, list := range form.Lists() {
		more, err := p.list(list)
		if err != nil || !more {
			return err
		}
	}

	response, ok := choose(p, "Response if a risk materialises", Responses, in.RiskResponse)
	in.RiskResponse = response
	if !ok {
		return nil
	}
	in.Verdict, _ = choose(p, "Final verdict", Verdicts, in.Verdict)
	return nil
}

// header asks for ticker, price, author and date. It reports false at end of input.
func (p *prompter) header(in *Input) bool {
	fmt.Fprintln(p.w, "Investment Thesis")

	ticker, ok := p.ask("Ticker", in.Ticker)
	in.Ticker = strings.ToUpper(ticker)
	if !ok {
		return false
	}

	current := ""
	if in.Price > 0 {
		current = strconv.FormatFloat(in.Price, 'f', 2, 64)
	}
	for {
		answer, ok := p.ask("Current price ($)", current)
		if !ok {
			return false
		}
		if answer == current {
			break
		}
		v, err := strconv.ParseFloat(answer, 64)
		if err == nil && v >= 0 {
			in.Price = v
			break
		}
		fmt.Fprintf(p.w, "%q is not a price\n", answer)
	}

	if in.Author, ok = p.ask("Author", in.Author); !ok {
		return false
	}
	in.Date, ok = p.ask("Date (YYYY-MM-DD)", in.Date)
	return ok
}

// list fills one field list. It reports false at end of input.
func (p *prompter) list(l *FieldList) (bool, error) {
	fmt.Fprintf(p.w, "\n%s  (type %s for one more field, %s to clear one)\n", l.Title, AddMore, Clear)
	for i := 0; i < l.Count(); {
		label := l.Label(i)
		if l.Value(i) == "" {
			if ph := l.Placeholder(i); ph != "" {
				label += " [" + ph + "]"
			}
			fmt.Fprintf(p.w, "%s: ", label)
		} else {
			fmt.Fprintf(p.w, "%s <%s>: ", label, l.Value(i))
		}

		line, ok := p.read()
		if !ok {
			return false, nil
		}
		switch line {
		case AddMore:
			l.Add()
			continue
		case Clear:
			line = ""
		case "":
			line = l.Value(i)
		}
		if err := l.Set(i, line); err != nil {
			return false, err
		}
		i++
	}
	return true, nil
}

// choose prints numbered options and reads a selection. An empty answer or
// an unknown number keeps current. It reports false at end of input.
func choose[T ~string](p *prompter, title string, opts []Option[T], current T) (T, bool) {
	def := 0
	for i, o := range opts {
		if o.Value == current {
			def = i
		}
	}
	fmt.Fprintf(p.w, "\n%s\n", title)
	for i, o := range opts {
		fmt.Fprintf(p.w, "  %d) %s\n", i+1, o.Label)
	}
	fmt.Fprintf(p.w, "Choice [%d]: ", def+1)
	line, ok := p.read()
	if !ok {
		return opts[def].Value, false
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(opts) {
		return opts[n-1].Value, true
	}
	return opts[def].Value, true
}
