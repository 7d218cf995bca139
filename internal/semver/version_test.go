package semver

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    SemVersion
		wantErr bool
	}{
		{input: "1.2.3", want: SemVersion{Major: 1, Minor: 2, Patch: 3}},
		{input: "0.0.0", want: SemVersion{}},
		{input: "10.20.30", want: SemVersion{Major: 10, Minor: 20, Patch: 30}},
		{input: "1.0.0-alpha.1", want: SemVersion{Major: 1, PreRelease: "alpha.1"}},
		{input: "1.0.0+build.5", want: SemVersion{Major: 1, Build: "build.5"}},
		{input: "1.0.0-rc.1+sha.abc", want: SemVersion{Major: 1, PreRelease: "rc.1", Build: "sha.abc"}},
		{input: "", wantErr: true},
		{input: "v1.2.3", wantErr: true},
		{input: "1.2", wantErr: true},
		{input: "1.2.3.4", wantErr: true},
		{input: "01.2.3", wantErr: true},
		{input: "1.02.3", wantErr: true},
		{input: "1.2.3-", wantErr: true},
		{input: "1.2.3-alpha..1", wantErr: true},
		{input: "1.2.3-01", wantErr: true},
		{input: " 1.2.3", wantErr: true},
		{input: "a.b.c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersion(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidVersion) {
					t.Errorf("error %v does not wrap ErrInvalidVersion", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestParseVersion_TooLong(t *testing.T) {
	long := "1.0.0-"
	for len(long) <= maxVersionLength {
		long += "a"
	}
	if _, err := ParseVersion(long); !errors.Is(err, ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion for oversized input, got %v", err)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("0.1.0") {
		t.Error("IsValid(0.1.0) = false, want true")
	}
	if IsValid("latest") {
		t.Error("IsValid(latest) = true, want false")
	}
}
