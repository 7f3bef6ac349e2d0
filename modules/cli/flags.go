package cli

import (
	"flag"
	"io"
	"strconv"
)

// optionalString is a string flag that remembers whether it was given, so
// an explicit empty value is distinct from an absent one.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(v string) error {
	o.value = v
	o.set = true
	return nil
}

func (o *optionalString) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// optionalInt is an int flag that remembers whether it was given.
type optionalInt struct {
	value int
	set   bool
}

func (o *optionalInt) String() string { return strconv.Itoa(o.value) }

func (o *optionalInt) Set(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	o.value = n
	o.set = true
	return nil
}

func (o *optionalInt) ptr() *int {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// flagSet wraps a FlagSet so every option can be registered under its long
// name and its short alias.
type flagSet struct {
	*flag.FlagSet
}

func newFlagSet(name string, output io.Writer) flagSet {
	fs := flag.NewFlagSet("taskmaster "+name, flag.ContinueOnError)
	fs.SetOutput(output)
	return flagSet{fs}
}

func (fs flagSet) option(v flag.Value, long, short, usage string) {
	fs.Var(v, long, usage)
	if short != "" {
		fs.Var(v, short, "Shorthand for --"+long)
	}
}
