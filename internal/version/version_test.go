package version

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		expected string
	}{
		{name: "development build", version: "development", commit: "unknown", expected: "development"},
		{name: "release with commit", version: "1.2.0", commit: "abc1234", expected: "1.2.0+abc1234"},
		{name: "empty commit", version: "1.2.0", commit: "", expected: "1.2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origCommit := Version, Commit
			defer func() {
				Version, Commit = origVersion, origCommit
			}()

			Version = tt.version
			Commit = tt.commit

			if got := String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
