package utils

import (
	"reflect"
	"testing"
)

type taggedStruct struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Skipped string `db:"-"`
	NoTag   string
}

func TestStructTagValues(t *testing.T) {
	got := StructTagValues(taggedStruct{})
	want := []string{"id", "name"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StructTagValues = %v, want %v", got, want)
	}

	ptr := StructTagValues(&taggedStruct{})
	if !reflect.DeepEqual(ptr, want) {
		t.Errorf("StructTagValues(ptr) = %v, want %v", ptr, want)
	}
}

func TestStructToMap(t *testing.T) {
	got := StructToMap(taggedStruct{ID: "abc", Name: "drishti", Skipped: "x", NoTag: "y"})
	want := map[string]any{"id": "abc", "name": "drishti"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StructToMap = %v, want %v", got, want)
	}
}

func TestNanoID(t *testing.T) {
	id := NanoID()
	if len(id) != NanoidSize {
		t.Errorf("NanoID length = %d, want %d", len(id), NanoidSize)
	}
	if id == NanoID() {
		t.Error("two NanoID calls returned the same value")
	}
}
