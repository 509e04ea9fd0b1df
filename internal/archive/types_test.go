package archive

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "rfc3339",
			in:   "2024-03-09T21:15:00Z",
			want: time.Date(2024, 3, 9, 21, 15, 0, 0, time.UTC),
		},
		{
			name: "bare iso",
			in:   "2024-03-09T21:15:00",
			want: time.Date(2024, 3, 9, 21, 15, 0, 0, time.UTC),
		},
		{
			name: "space separated",
			in:   "2024-03-09 21:15:00",
			want: time.Date(2024, 3, 9, 21, 15, 0, 0, time.Local),
		},
		{
			name: "empty",
			in:   "",
			want: time.Time{},
		},
		{
			name: "garbage",
			in:   "last tuesday",
			want: time.Time{},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseTime(tt.in); !got.Equal(tt.want) {
				t.Fatalf("parseTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWritingParsedTimestamp(t *testing.T) {
	t.Parallel()

	w := Writing{FileTimestamp: "2023-11-01T08:30:00Z"}
	want := time.Date(2023, 11, 1, 8, 30, 0, 0, time.UTC)
	if got := w.ParsedTimestamp(); !got.Equal(want) {
		t.Fatalf("ParsedTimestamp() = %v, want %v", got, want)
	}
}

func TestTagListUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"bare array", `[{"id":2,"name":"night","tag_type":"theme","usage_count":5}]`},
		{"wrapped", `{"tags":[{"id":2,"name":"night","tag_type":"theme","usage_count":5}]}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got tagList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if len(got) != 1 || got[0].Name != "night" || got[0].UsageCount != 5 {
				t.Fatalf("tagList = %+v", got)
			}
		})
	}
}

func TestHealthStatusHealthy(t *testing.T) {
	t.Parallel()

	if !(HealthStatus{Status: "healthy"}).Healthy() {
		t.Fatal("Healthy() = false for healthy status")
	}
	if (HealthStatus{Status: "degraded"}).Healthy() {
		t.Fatal("Healthy() = true for degraded status")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	t.Parallel()

	err := &APIError{Status: 404, Msg: "Writing not found"}
	want := "api returned status 404: Writing not found"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}

	bare := &APIError{Status: 502}
	if bare.Error() != "api returned status 502" {
		t.Fatalf("Error() = %q", bare.Error())
	}
}
