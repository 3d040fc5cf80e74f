package service

import (
	"testing"

	"github.com/codeclimb/unirank/api/internal/model"
)

func TestCourseVerifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		source      string
		certificate map[string]string
		want        bool
	}{
		{
			name:        "iit with certificate id",
			source:      "IIT",
			certificate: map[string]string{"certificate_id": "IIT-2026-0042"},
			want:        true,
		},
		{
			name:        "iit missing certificate id",
			source:      "IIT",
			certificate: map[string]string{"certificate_url": "https://example.com/cert"},
			want:        false,
		},
		{
			name:        "nptel blank certificate id",
			source:      "NPTEL",
			certificate: map[string]string{"certificate_id": "   "},
			want:        false,
		},
		{
			name:        "coursera https url",
			source:      "Coursera",
			certificate: map[string]string{"certificate_url": "https://coursera.org/verify/abc"},
			want:        true,
		},
		{
			name:        "coursera plain http url",
			source:      "Coursera",
			certificate: map[string]string{"certificate_url": "http://coursera.org/verify/abc"},
			want:        false,
		},
		{
			name:        "udemy missing url",
			source:      "Udemy",
			certificate: map[string]string{"certificate_id": "abc"},
			want:        false,
		},
		{
			name:        "unknown source with any evidence",
			source:      "SomeBootcamp",
			certificate: map[string]string{"anything": "at all"},
			want:        true,
		},
		{
			name:        "unknown source without evidence",
			source:      "SomeBootcamp",
			certificate: map[string]string{},
			want:        false,
		},
	}

	verifier := NewCourseVerifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			course := &model.Course{Source: tt.source}
			if got := verifier.Verify(course, tt.certificate); got != tt.want {
				t.Errorf("Verify(%s, %v) = %v, want %v", tt.source, tt.certificate, got, tt.want)
			}
		})
	}
}
