package analysis

import "testing"

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		counts JobCounts
		want   string
	}{
		{
			name:   "no jobs",
			counts: JobCounts{},
			want:   "",
		},
		{
			name:   "all done",
			counts: JobCounts{Total: 2, Done: 2},
			want:   "done",
		},
		{
			name:   "queued only",
			counts: JobCounts{Total: 2, Queued: 2},
			want:   "queued",
		},
		{
			name:   "processing beats queued",
			counts: JobCounts{Total: 2, Queued: 1, Processing: 1},
			want:   "processing",
		},
		{
			name:   "error beats everything",
			counts: JobCounts{Total: 3, Queued: 1, Processing: 1, Error: 1},
			want:   "error",
		},
		{
			name:   "error with siblings done",
			counts: JobCounts{Total: 2, Done: 1, Error: 1},
			want:   "error",
		},
		{
			name:   "done with queued sibling",
			counts: JobCounts{Total: 2, Done: 1, Queued: 1},
			want:   "queued",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.counts); got != tt.want {
				t.Errorf("Summarize(%+v) = %q, want %q", tt.counts, got, tt.want)
			}
		})
	}
}
