// Package testing provides shared fixtures for porter tests.
package testing

import (
	"errors"
	"time"
)

// Joined is the fixed timestamp used by the fixtures.
var Joined = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

// Audit is embedded by Person and exposes its properties as fields.
type Audit struct {
	CreatedBy string
	Created   time.Time
}

// Person is an accessor-style bean: private state behind Get/Is/Set
// methods, one exported field and an embedded Audit level.
type Person struct {
	Audit
	Email string

	name   string
	age    int
	active bool
	tags   []string
}

// NewPerson returns a populated Person.
func NewPerson() *Person {
	return &Person{
		Audit:  Audit{CreatedBy: "system", Created: Joined},
		Email:  "ada@example.com",
		name:   "Ada",
		age:    36,
		active: true,
		tags:   []string{"admin"},
	}
}

func (p *Person) GetName() string { return p.name }
func (p *Person) SetName(v string) { p.name = v }
func (p *Person) GetAge() int { return p.age }
func (p *Person) SetAge(v int) { p.age = v }
func (p *Person) IsActive() bool { return p.active }
func (p *Person) SetActive(v bool) { p.active = v }
func (p *Person) GetTags() []string { return p.tags }
func (p *Person) SetTags(v []string) { p.tags = v }

// PersonDTO is the field-style counterpart of Person.
type PersonDTO struct {
	Name      string
	Age       int
	Active    bool
	Email     string
	Tags      []string
	CreatedBy string
	Created   time.Time
}

// PersonSummary shares only some properties with Person, one of them with
// an incompatible type.
type PersonSummary struct {
	Name  string
	Age   string
	Extra string
}

// Listing drives the query string view.
type Listing struct {
	Name     string
	Active   bool
	Archived bool
	Listed   time.Time
	Price    *float64
	Featured *bool
}

// Padded has string fields in every access style for trimming.
type Padded struct {
	Title    string
	Code     Code
	Optional *string
	Count    int

	label string
	raw   string
}

// Code is a named string type; trimming leaves it alone.
type Code string

func (p *Padded) GetLabel() string { return p.label }
func (p *Padded) SetLabel(v string) { p.label = v }

// Label returns the private label.
func (p *Padded) Label() string { return p.label }

// Raw returns the private raw value, which has no accessors.
func (p *Padded) Raw() string { return p.raw }

// NewPadded returns a Padded with surrounding white space everywhere.
func NewPadded() *Padded {
	opt := "  optional  "
	return &Padded{
		Title:    "  title  ",
		Code:     "  code  ",
		Optional: &opt,
		label:    "\tlabel\n",
		raw:      "  raw  ",
	}
}

// ErrBroken is returned by the accessors of Failing.
var ErrBroken = errors.New("broken accessor")

// Broken has a getter that works and one that panics. Getters are walked
// in name order, so GetBefore is always visited first.
type Broken struct{}

func (b *Broken) GetBefore() string { return "before" }
func (b *Broken) GetExplodes() string { panic("boom") }

// Failing has a getter and a setter that report errors.
type Failing struct {
	Rejects string
}

func (f *Failing) GetFails() (string, error) { return "", ErrBroken }
func (f *Failing) SetRejects(string) error { return ErrBroken }
