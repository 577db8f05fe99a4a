package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"pretty", false},
		{"csv", false},
		{"yaml", false},
		{"json", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePips(t *testing.T) {
	for _, pips := range []int{1, 5, 6} {
		if err := ValidatePips(pips); err != nil {
			t.Errorf("ValidatePips(%d) unexpected error: %v", pips, err)
		}
	}
	for _, pips := range []int{0, 7, -1} {
		if err := ValidatePips(pips); err == nil {
			t.Errorf("ValidatePips(%d) expected error", pips)
		}
	}
}

func TestValidateThreshold(t *testing.T) {
	if err := ValidateThreshold(0); err != nil {
		t.Errorf("zero threshold should be valid: %v", err)
	}
	if err := ValidateThreshold(5.5); err != nil {
		t.Errorf("positive threshold should be valid: %v", err)
	}
	if err := ValidateThreshold(-1); err == nil {
		t.Error("negative threshold should be rejected")
	}
}
