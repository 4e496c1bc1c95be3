package models

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2024-01-12", false},
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"01/12/2024", true},
		{"", true},
	}
	for _, tt := range tests {
		_, err := ParseDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestDayAddDays(t *testing.T) {
	tests := []struct {
		day  Day
		n    int
		want Day
	}{
		{"2024-01-12", 0, "2024-01-12"},
		{"2024-01-12", -6, "2024-01-06"},
		{"2024-01-12", -29, "2023-12-14"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2023-12-31", 1, "2024-01-01"},
		{"garbage", 1, "garbage"},
	}
	for _, tt := range tests {
		if got := tt.day.AddDays(tt.n); got != tt.want {
			t.Errorf("%s.AddDays(%d) = %s, want %s", tt.day, tt.n, got, tt.want)
		}
	}
}

func TestDayScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    Day
		wantErr bool
	}{
		{name: "nil", src: nil, want: ""},
		{name: "plain string", src: "2024-01-12", want: "2024-01-12"},
		{name: "bytes", src: []byte("2024-01-12"), want: "2024-01-12"},
		{name: "rfc3339 string", src: "2024-01-12T00:00:00Z", want: "2024-01-12"},
		{name: "time", src: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), want: "2024-01-12"},
		{name: "short string", src: "2024", wantErr: true},
		{name: "int", src: int64(20240112), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Day
			err := d.Scan(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && d != tt.want {
				t.Errorf("Scan = %q, want %q", d, tt.want)
			}
		})
	}
}

func TestDayTime(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	got, err := Day("2024-01-12").Time(loc)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 1, 12, 0, 0, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Errorf("Time = %v, want %v", got, want)
	}
}
