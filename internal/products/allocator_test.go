package product

import (
	"errors"
	"testing"
)

func TestFormatProductID(t *testing.T) {
	cases := []struct {
		name string
		n    int
		want string
	}{
		{name: "single digit pads to three", n: 1, want: "P001"},
		{name: "double digit pads to three", n: 42, want: "P042"},
		{name: "three digits unchanged", n: 999, want: "P999"},
		{name: "four digits keep natural width", n: 1000, want: "P1000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatProductID(tc.n); got != tc.want {
				t.Fatalf("FormatProductID(%d) = %q, want %q", tc.n, got, tc.want)
			}
		})
	}
}

func TestParseProductNumber(t *testing.T) {
	cases := []struct {
		id     string
		want   int
		wantOK bool
	}{
		{id: "P001", want: 1, wantOK: true},
		{id: "P042", want: 42, wantOK: true},
		{id: "P1000", want: 1000, wantOK: true},
		{id: "P1", want: 1, wantOK: true},
		{id: "Q001", wantOK: false},
		{id: "P", wantOK: false},
		{id: "P12x", wantOK: false},
		{id: "", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			got, ok := ParseProductNumber(tc.id)
			if ok != tc.wantOK {
				t.Fatalf("ParseProductNumber(%q) ok = %v, want %v", tc.id, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("ParseProductNumber(%q) = %d, want %d", tc.id, got, tc.want)
			}
		})
	}
}

func TestMaxProductNumber(t *testing.T) {
	cases := []struct {
		name string
		ids  []string
		want int
	}{
		{name: "empty", ids: nil, want: 0},
		{name: "single", ids: []string{"P003"}, want: 3},
		{name: "unordered", ids: []string{"P002", "P010", "P001"}, want: 10},
		{name: "skips malformed", ids: []string{"P005", "PX99", "Q100"}, want: 5},
		{name: "all malformed", ids: []string{"PX", "piezas"}, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := maxProductNumber(tc.ids); got != tc.want {
				t.Fatalf("maxProductNumber = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestChooseProductID(t *testing.T) {
	t.Run("candidate free", func(t *testing.T) {
		id, err := chooseProductID(4, func(string) (bool, error) { return false, nil })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "P005" {
			t.Fatalf("got %q, want P005", id)
		}
	})

	t.Run("candidate taken falls back to next number", func(t *testing.T) {
		id, err := chooseProductID(4, func(candidate string) (bool, error) {
			return candidate == "P005", nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "P006" {
			t.Fatalf("got %q, want P006", id)
		}
	})

	t.Run("store error propagates", func(t *testing.T) {
		wantErr := errors.New("store down")
		if _, err := chooseProductID(0, func(string) (bool, error) { return false, wantErr }); !errors.Is(err, wantErr) {
			t.Fatalf("got %v, want %v", err, wantErr)
		}
	})
}
