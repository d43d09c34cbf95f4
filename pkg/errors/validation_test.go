package errors

import "testing"

func TestValidateFigureID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"3a", false},
		{"figure_8_rep", false},
		{"fig-3D", false},
		{"", true},
		{"../etc", true},
		{"3a.pdf", true},
		{"a b", true},
		{string(make([]byte, 65)), true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateFigureID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFigureID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeFigureNotFound) {
				t.Errorf("ValidateFigureID(%q) code = %v, want %v", tt.id, GetCode(err), ErrCodeFigureNotFound)
			}
		})
	}
}

func TestValidateRelative(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"figure_3A.txt", false},
		{"sub/figure_4.csv", false},
		{"", true},
		{"/etc/passwd", true},
		{"../secret.csv", true},
		{"a/../../b", true},
		{"a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidateRelative(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRelative(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
