package main

import (
	"testing"
	"time"
)

func TestParseScheduleTimes(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      []fireTime
		expectErr bool
	}{
		{
			name:  "default pair",
			input: "00:00,12:00",
			want:  []fireTime{{0, 0}, {12, 0}},
		},
		{
			name:  "unsorted input is sorted",
			input: "18:30, 06:15",
			want:  []fireTime{{6, 15}, {18, 30}},
		},
		{
			name:  "duplicates collapse",
			input: "09:00,09:00",
			want:  []fireTime{{9, 0}},
		},
		{
			name:      "empty",
			input:     "",
			expectErr: true,
		},
		{
			name:      "garbage",
			input:     "noon",
			expectErr: true,
		},
		{
			name:      "out of range",
			input:     "25:00",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScheduleTimes(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("slot %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestNextFire(t *testing.T) {
	times := []fireTime{{0, 0}, {12, 0}}
	loc := time.UTC

	t.Run("morning picks noon", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 8, 30, 0, 0, loc)
		got := nextFire(now, times)
		want := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("after last slot rolls to midnight tomorrow", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
		got := nextFire(now, times)
		want := time.Date(2025, 3, 11, 0, 0, 0, 0, loc)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("exact slot time fires on the next slot, not itself", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
		got := nextFire(now, times)
		want := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}
