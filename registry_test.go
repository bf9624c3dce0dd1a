package porter

import (
	"reflect"
	"sync"
	"testing"

	portertest "github.com/zoobzio/porter/testing"
)

func TestCopierFor_Caching(t *testing.T) {
	Reset()

	source := reflect.TypeFor[portertest.Person]()
	target := reflect.TypeFor[portertest.PersonDTO]()

	c1, err := CopierFor(source, target)
	if err != nil {
		t.Fatalf("CopierFor() error: %v", err)
	}
	c2, err := CopierFor(source, target)
	if err != nil {
		t.Fatalf("CopierFor() error: %v", err)
	}

	if c1 != c2 {
		t.Error("CopierFor() should return cached copier")
	}
	if CachedCopiers() != 1 {
		t.Errorf("CachedCopiers() = %d, want 1", CachedCopiers())
	}
}

func TestCopierFor_PointerTypesShareEntry(t *testing.T) {
	Reset()

	c1, err := CopierFor(reflect.TypeFor[*portertest.Person](), reflect.TypeFor[portertest.PersonDTO]())
	if err != nil {
		t.Fatalf("CopierFor() error: %v", err)
	}
	c2, err := CopierFor(reflect.TypeFor[portertest.Person](), reflect.TypeFor[*portertest.PersonDTO]())
	if err != nil {
		t.Fatalf("CopierFor() error: %v", err)
	}

	if c1 != c2 {
		t.Error("pointer and value types should share a copier")
	}
}

func TestCopierFor_DirectionMatters(t *testing.T) {
	Reset()

	forward, _ := CopierFor(reflect.TypeFor[portertest.Person](), reflect.TypeFor[portertest.PersonDTO]())
	backward, _ := CopierFor(reflect.TypeFor[portertest.PersonDTO](), reflect.TypeFor[portertest.Person]())

	if forward == backward {
		t.Error("(A, B) and (B, A) should have distinct copiers")
	}
	if CachedCopiers() != 2 {
		t.Errorf("CachedCopiers() = %d, want 2", CachedCopiers())
	}
}

func TestCopierFor_InvalidNotCached(t *testing.T) {
	Reset()

	if _, err := CopierFor(reflect.TypeFor[int](), reflect.TypeFor[portertest.PersonDTO]()); err == nil {
		t.Fatal("CopierFor(int) should fail")
	}
	if CachedCopiers() != 0 {
		t.Errorf("CachedCopiers() = %d, want 0", CachedCopiers())
	}
}

func TestCopierFor_Concurrent(t *testing.T) {
	Reset()

	source := reflect.TypeFor[portertest.Person]()
	target := reflect.TypeFor[portertest.PersonDTO]()

	const workers = 32
	results := make([]*Copier, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := CopierFor(source, target)
			if err != nil {
				t.Errorf("CopierFor() error: %v", err)
				return
			}
			var dto portertest.PersonDTO
			if err := c.Copy(portertest.NewPerson(), &dto); err != nil {
				t.Errorf("Copy() error: %v", err)
			}
			results[i] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatal("all callers should observe the same published copier")
		}
	}
}

func TestReset(t *testing.T) {
	_, _ = CopierFor(reflect.TypeFor[portertest.Person](), reflect.TypeFor[portertest.PersonDTO]())

	Reset()

	if CachedCopiers() != 0 {
		t.Errorf("CachedCopiers() after Reset() = %d, want 0", CachedCopiers())
	}
}
