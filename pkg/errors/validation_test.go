package errors

import (
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "lodash", false},
		{"valid with dash", "my-package", false},
		{"valid with dot", "my.package", false},
		{"valid scoped npm", "@scope/package", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("ValidatePackageName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPackage)
			}
		})
	}
}

func TestValidateGlob(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single level", "packages/*", false},
		{"recursive", "packages/**", false},
		{"exact", "tools/cli", false},
		{"negated", "!packages/legacy", false},
		{"dot prefix", "./apps/*", false},

		{"empty", "", true},
		{"only negation", "!", true},
		{"absolute", "/etc/*", true},
		{"windows absolute", `C:\repo\*`, true},
		{"parent", "../other/*", true},
		{"nested parent", "packages/../../x", true},
		{"null byte", "pkg\x00s", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGlob(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGlob(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
