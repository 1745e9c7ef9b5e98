package reqparse

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/containerd/errdefs"
)

// Location is where an argument is read from.
type Location string

// Argument locations.
const (
	Query   Location = "query"
	Form    Location = "form"
	Files   Location = "files"
	Headers Location = "headers"
	Path    Location = "path"
)

// Argument declares a single request argument.
type Argument struct {
	Name string

	// Type is the Go type the value converts to. Nil means string.
	// *multipart.FileHeader and multipart.File declare a file upload.
	Type reflect.Type

	Help     string
	Location Location
	Required bool
	Default  any
	Choices  []any

	// Append collects repeated values into a list.
	Append bool
}

// In returns the argument location, defaulting to Query.
func (a Argument) In() Location {
	if a.Location == "" {
		return Query
	}
	return a.Location
}

// Parser is an ordered, declarative set of arguments.
// The zero value is ready to use.
type Parser struct {
	args []Argument
}

// NewParser creates a parser with the given arguments. It panics when an
// argument is invalid, like regexp.MustCompile does for patterns.
func NewParser(args ...Argument) *Parser {
	p := &Parser{}
	for _, arg := range args {
		if err := p.Add(arg); err != nil {
			panic(err)
		}
	}
	return p
}

// Add appends an argument. Names must be non-empty and unique.
func (p *Parser) Add(arg Argument) error {
	if err := validate(arg); err != nil {
		return err
	}
	if p.index(arg.Name) >= 0 {
		return fmt.Errorf("reqparse: argument %q: %w", arg.Name, errdefs.ErrAlreadyExists)
	}
	p.args = append(p.args, arg)
	return nil
}

// Replace swaps the argument with the same name, keeping its position.
func (p *Parser) Replace(arg Argument) error {
	if err := validate(arg); err != nil {
		return err
	}
	i := p.index(arg.Name)
	if i < 0 {
		return fmt.Errorf("reqparse: argument %q: %w", arg.Name, errdefs.ErrNotFound)
	}
	p.args[i] = arg
	return nil
}

// Remove deletes the named argument. Removing an unknown name is a no-op.
func (p *Parser) Remove(name string) {
	if i := p.index(name); i >= 0 {
		p.args = slices.Delete(p.args, i, i+1)
	}
}

// Args returns a copy of the arguments in declaration order.
func (p *Parser) Args() []Argument {
	if p == nil {
		return nil
	}
	return slices.Clone(p.args)
}

// Copy returns an independent parser with the same arguments.
func (p *Parser) Copy() *Parser {
	return &Parser{args: slices.Clone(p.args)}
}

func (p *Parser) index(name string) int {
	return slices.IndexFunc(p.args, func(a Argument) bool {
		return a.Name == name
	})
}

func validate(arg Argument) error {
	if arg.Name == "" {
		return fmt.Errorf("reqparse: argument without name: %w", errdefs.ErrInvalidArgument)
	}
	switch arg.In() {
	case Query, Form, Files, Headers, Path:
	default:
		return fmt.Errorf("reqparse: argument %q: unknown location %q: %w",
			arg.Name, arg.Location, errdefs.ErrInvalidArgument)
	}
	return nil
}
