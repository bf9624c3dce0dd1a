package bson

import (
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/porter"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/bson")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type TestStruct struct {
		Name  string `bson:"name"`
		Value int    `bson:"value"`
	}

	original := TestStruct{Name: "test", Value: 42}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored TestStruct
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored.Name != original.Name || restored.Value != original.Value {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v struct{}
	err := c.Unmarshal([]byte("invalid bson"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

type account struct {
	Name    string
	Age     int
	Active  bool
	Created time.Time
	Note    *string
	secret  string
}

func (a *account) GetSecret() string  { return a.secret }
func (a *account) SetSecret(v string) { a.secret = v }

func TestEncodeDecode(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	original := &account{Name: "Ada", Age: 36, Active: true, Created: created, secret: "s3"}

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var restored account
	if err := Decode(data, &restored); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if restored.Name != "Ada" || restored.Age != 36 || !restored.Active {
		t.Errorf("round-trip failed: got %+v", restored)
	}
	if !restored.Created.Equal(created) {
		t.Errorf("Created = %v, want %v", restored.Created, created)
	}
	if restored.secret != "s3" {
		t.Errorf("secret = %q, want %q", restored.secret, "s3")
	}
	if restored.Note != nil {
		t.Errorf("Note = %v, want nil", restored.Note)
	}
}

func TestEncodeNil(t *testing.T) {
	_, err := Encode(nil)
	if !errors.Is(err, porter.ErrIllegalArgument) {
		t.Errorf("Encode(nil) error = %v, want ErrIllegalArgument", err)
	}
}

func TestDecodeNonPointer(t *testing.T) {
	data, err := Encode(&account{Name: "Ada"})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	err = Decode(data, account{})
	if !errors.Is(err, porter.ErrIllegalArgument) {
		t.Errorf("Decode(non-pointer) error = %v, want ErrIllegalArgument", err)
	}
}

func TestUnmarshalEmbeddedDocument(t *testing.T) {
	c := New()

	data, err := c.Marshal(map[string]any{"outer": map[string]any{"inner": "x"}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var values map[string]any
	if err := c.Unmarshal(data, &values); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	outer, ok := values["outer"].(bson.M)
	if !ok {
		t.Fatalf("outer = %T, want bson.M", values["outer"])
	}
	if outer["inner"] != "x" {
		t.Errorf("inner = %v, want x", outer["inner"])
	}
}
