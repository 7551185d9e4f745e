package storage

import (
    "math"
    "testing"
)

func TestOffset(t *testing.T) {
    cases := []struct {
        page, size int
        want       int
        ok         bool
    }{
        {1, 10, 0, true},
        {3, 10, 20, true},
        {0, 10, 0, false},
        {1, 0, 0, false},
        {-5, 10, 0, false},
        {math.MaxInt, 1000, 0, false},
    }
    for _, tc := range cases {
        got, ok := Offset(tc.page, tc.size)
        if got != tc.want || ok != tc.ok {
            t.Fatalf("Offset(%d,%d) = %d,%v want %d,%v", tc.page, tc.size, got, ok, tc.want, tc.ok)
        }
    }
}
