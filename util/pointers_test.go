package util

import "testing"

func TestPtr(t *testing.T) {
	p := Ptr(false)
	if p == nil || *p {
		t.Errorf("expected pointer to false, got %v", p)
	}
}

func TestValueOr(t *testing.T) {
	tests := []struct {
		name string
		p    *bool
		want bool
	}{
		{"nil uses fallback", nil, true},
		{"explicit false", Ptr(false), false},
		{"explicit true", Ptr(true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueOr(tt.p, true); got != tt.want {
				t.Errorf("ValueOr() = %v, want %v", got, tt.want)
			}
		})
	}
}
