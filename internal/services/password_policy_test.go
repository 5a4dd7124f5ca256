package services

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePasswordStrength(t *testing.T) {
	testCases := []struct {
		password string
		wantErr  bool
	}{
		{password: "StrongPass1"},
		{password: "통풍관리Gout2026"},
		{password: "Short1", wantErr: true},
		{password: "alllowercase1", wantErr: true},
		{password: "ALLUPPERCASE1", wantErr: true},
		{password: "NoDigitsHere", wantErr: true},
		{password: "Aa1" + strings.Repeat("x", MaxPasswordBytes), wantErr: true},
	}

	for _, testCase := range testCases {
		err := ValidatePasswordStrength(testCase.password)
		if testCase.wantErr && !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("ValidatePasswordStrength(%q) error = %v, want ErrWeakPassword", testCase.password, err)
		}
		if !testCase.wantErr && err != nil {
			t.Fatalf("ValidatePasswordStrength(%q) unexpected error: %v", testCase.password, err)
		}
	}
}
