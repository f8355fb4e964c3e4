package service

import (
	"reflect"
	"testing"
)

func TestStringSet(t *testing.T) {
	ss := NewStringSet("B04", "B03", "B04")
	if len(ss) != 2 {
		t.Errorf("expected 2 elements, got %d", len(ss))
	}
	if !ss.Exists("B04") {
		t.Error("B04 must exist")
	}
	ss.Push("B8A")
	ss.Pop("B03")
	if ss.Exists("B03") {
		t.Error("B03 must not exist")
	}
	if got := ss.SortedSlice(); !reflect.DeepEqual(got, []string{"B04", "B8A"}) {
		t.Errorf("unexpected slice %v", got)
	}
}
