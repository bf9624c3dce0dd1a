package porter

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	portertest "github.com/zoobzio/porter/testing"
)

type rejectsSource struct {
	Rejects string
}

type settingsDTO struct {
	Theme *string
	Note  string
}

func TestCompile_Properties(t *testing.T) {
	c, err := Compile(reflect.TypeFor[portertest.Person](), reflect.TypeFor[portertest.PersonSummary]())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	// age is a string on the summary and is not assignable from int
	if got := c.Properties(); !slices.Equal(got, []string{"name"}) {
		t.Errorf("Properties() = %v, want [name]", got)
	}
	if c.Source() != reflect.TypeFor[portertest.Person]() {
		t.Errorf("Source() = %v", c.Source())
	}
	if c.Target() != reflect.TypeFor[portertest.PersonSummary]() {
		t.Errorf("Target() = %v", c.Target())
	}
}

func TestCompile_Invalid(t *testing.T) {
	valid := reflect.TypeFor[portertest.PersonDTO]()
	tests := []struct {
		name     string
		source   reflect.Type
		target   reflect.Type
		argument string
	}{
		{"nil source", nil, valid, "source"},
		{"nil target", valid, nil, "target"},
		{"scalar source", reflect.TypeFor[string](), valid, "source"},
		{"slice target", valid, reflect.TypeFor[[]int](), "target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source, tt.target)
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("Compile() error = %v, want *ArgumentError", err)
			}
			if argErr.Argument != tt.argument {
				t.Errorf("Argument = %q, want %q", argErr.Argument, tt.argument)
			}
		})
	}
}

func TestCopier_Copy(t *testing.T) {
	c, err := Compile(reflect.TypeFor[portertest.Person](), reflect.TypeFor[portertest.PersonDTO]())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	var dto portertest.PersonDTO
	if err := c.Copy(portertest.NewPerson(), &dto); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}

	if dto.Name != "Ada" || dto.Age != 36 || !dto.Active {
		t.Errorf("Copy() = %+v", dto)
	}
	if dto.CreatedBy != "system" || !dto.Created.Equal(portertest.Joined) {
		t.Errorf("embedded properties not copied: %+v", dto)
	}
}

func TestCopier_CopyIntoAccessors(t *testing.T) {
	c, err := Compile(reflect.TypeFor[portertest.PersonDTO](), reflect.TypeFor[portertest.Person]())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	var p portertest.Person
	dto := portertest.PersonDTO{Name: "Grace", Age: 85, Active: true, CreatedBy: "import"}
	if err := c.Copy(dto, &p); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}

	if p.GetName() != "Grace" || p.GetAge() != 85 || !p.IsActive() {
		t.Errorf("setters not applied: name=%q age=%d active=%v", p.GetName(), p.GetAge(), p.IsActive())
	}
	if p.CreatedBy != "import" {
		t.Errorf("CreatedBy = %q, want %q", p.CreatedBy, "import")
	}
}

func TestCopier_CopiesNil(t *testing.T) {
	c, err := Compile(reflect.TypeFor[settingsDTO](), reflect.TypeFor[settingsDTO]())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	theme := "dark"
	target := settingsDTO{Theme: &theme, Note: "keep"}
	if err := c.Copy(&settingsDTO{}, &target); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}

	if target.Theme != nil {
		t.Errorf("Theme = %v, want nil", *target.Theme)
	}
	if target.Note != "" {
		t.Errorf("Note = %q, want empty", target.Note)
	}
}

func TestCopier_AllocatesEmbeddedPointer(t *testing.T) {
	c, err := Compile(reflect.TypeFor[portertest.PersonDTO](), reflect.TypeFor[auditedNote]())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	var note auditedNote
	if err := c.Copy(&portertest.PersonDTO{CreatedBy: "ada"}, &note); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if note.Audit == nil || note.CreatedBy != "ada" {
		t.Errorf("embedded pointer not allocated: %+v", note)
	}
}

func TestCopier_CopyArguments(t *testing.T) {
	c, err := Compile(reflect.TypeFor[portertest.PersonDTO](), reflect.TypeFor[portertest.PersonDTO]())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	tests := []struct {
		name     string
		source   any
		target   any
		argument string
	}{
		{"nil source", nil, &portertest.PersonDTO{}, "source"},
		{"nil target", portertest.PersonDTO{}, nil, "target"},
		{"non-pointer target", portertest.PersonDTO{}, portertest.PersonDTO{}, "target"},
		{"wrong target", portertest.PersonDTO{}, &portertest.Person{}, "target"},
		{"wrong source", portertest.Person{}, &portertest.PersonDTO{}, "source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Copy(tt.source, tt.target)
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("Copy() error = %v, want *ArgumentError", err)
			}
			if argErr.Argument != tt.argument {
				t.Errorf("Argument = %q, want %q", argErr.Argument, tt.argument)
			}
		})
	}
}

func TestCopier_SetterError(t *testing.T) {
	c, err := Compile(reflect.TypeFor[rejectsSource](), reflect.TypeFor[portertest.Failing]())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	err = c.Copy(&rejectsSource{Rejects: "x"}, &portertest.Failing{})
	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("Copy() error = %v, want *InvocationError", err)
	}
	if invErr.Method != "SetRejects" {
		t.Errorf("Method = %q, want %q", invErr.Method, "SetRejects")
	}
}
