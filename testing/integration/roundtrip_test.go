package integration

import (
	"testing"

	"github.com/zoobzio/porter"
	"github.com/zoobzio/porter/bson"
	"github.com/zoobzio/porter/json"
	"github.com/zoobzio/porter/msgpack"
	portertest "github.com/zoobzio/porter/testing"
	"github.com/zoobzio/porter/yaml"
)

func TestEncodeDecode_JSON(t *testing.T) {
	testEncodeDecode(t, json.New())
}

func TestEncodeDecode_YAML(t *testing.T) {
	testEncodeDecode(t, yaml.New())
}

func TestEncodeDecode_MessagePack(t *testing.T) {
	testEncodeDecode(t, msgpack.New())
}

func TestEncodeDecode_BSON(t *testing.T) {
	testEncodeDecode(t, bson.New())
}

// testEncodeDecode writes an accessor-style Person and reads the document
// back into the field-style PersonDTO.
func testEncodeDecode(t *testing.T, c porter.Codec) {
	t.Helper()

	person := portertest.NewPerson()

	data, err := porter.Encode(c, person)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var dto portertest.PersonDTO
	if err := porter.Decode(c, data, &dto); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if dto.Name != "Ada" {
		t.Errorf("Name = %q, want %q", dto.Name, "Ada")
	}
	if dto.Age != 36 {
		t.Errorf("Age = %d, want 36", dto.Age)
	}
	if !dto.Active {
		t.Error("Active = false, want true")
	}
	if dto.Email != "ada@example.com" {
		t.Errorf("Email = %q, want %q", dto.Email, "ada@example.com")
	}
	if dto.CreatedBy != "system" {
		t.Errorf("CreatedBy = %q, want %q", dto.CreatedBy, "system")
	}
	if !dto.Created.Equal(portertest.Joined) {
		t.Errorf("Created = %v, want %v", dto.Created, portertest.Joined)
	}
	if len(dto.Tags) != 1 || dto.Tags[0] != "admin" {
		t.Errorf("Tags = %v, want [admin]", dto.Tags)
	}
}

// The document path and the direct copy must agree.
func TestEncodeDecode_MatchesQuickMap(t *testing.T) {
	person := portertest.NewPerson()

	direct, err := porter.Map[portertest.PersonDTO](person)
	if err != nil {
		t.Fatalf("Map() error: %v", err)
	}

	data, err := json.Encode(person)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	var decoded portertest.PersonDTO
	if err := json.Decode(data, &decoded); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if direct.Name != decoded.Name || direct.Age != decoded.Age || direct.Active != decoded.Active {
		t.Errorf("decoded %+v differs from mapped %+v", decoded, *direct)
	}
	if !direct.Created.Equal(decoded.Created) {
		t.Errorf("Created: decoded %v, mapped %v", decoded.Created, direct.Created)
	}
}

func TestQueryString_FromDecodedDocument(t *testing.T) {
	data, err := yaml.Encode(&portertest.Listing{Name: "Desk", Active: true, Listed: portertest.Joined})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var listing portertest.Listing
	if err := yaml.Decode(data, &listing); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	got, err := porter.BeanToQueryString(&listing)
	if err != nil {
		t.Fatalf("BeanToQueryString() error: %v", err)
	}
	want := "name=Desk&active=true&listed=2024-03-15"
	if got != want {
		t.Errorf("BeanToQueryString() = %q, want %q", got, want)
	}
}
