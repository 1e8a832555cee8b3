package agent

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestToGoValue_Numbers(t *testing.T) {
	tests := []struct {
		in   lua.LNumber
		want any
	}{
		{2, 2},
		{-3, -3},
		{2.5, 2.5},
		{1e20, 1e20},
		{-1e20, -1e20},
	}
	for _, tt := range tests {
		if got := toGoValue(tt.in); got != tt.want {
			t.Errorf("toGoValue(%v) = %#v, want %#v", float64(tt.in), got, tt.want)
		}
	}
}

func TestToGoValue_Tables(t *testing.T) {
	L := newSandbox()
	defer L.Close()
	if err := L.DoString(`arr = {"leather", 2}; obj = {kind = "s", count = 3}`); err != nil {
		t.Fatal(err)
	}

	arr, ok := toGoValue(L.GetGlobal("arr")).([]any)
	if !ok || len(arr) != 2 || arr[0] != "leather" || arr[1] != 2 {
		t.Errorf("unexpected array %#v", arr)
	}
	obj, ok := toGoValue(L.GetGlobal("obj")).(map[string]any)
	if !ok || obj["kind"] != "s" || obj["count"] != 3 {
		t.Errorf("unexpected table %#v", obj)
	}
}
