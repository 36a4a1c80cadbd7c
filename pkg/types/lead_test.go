package types

import (
	"strings"
	"testing"
)

func TestLeadInfoValidate(t *testing.T) {
	tests := []struct {
		name    string
		lead    LeadInfo
		wantErr string
	}{
		{"default lead", DefaultLead(), ""},
		{"missing name", LeadInfo{Company: "Acme"}, "name"},
		{"blank company", LeadInfo{Name: "Jane", Company: "  "}, "company"},
		{"both missing", LeadInfo{}, "name, company"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lead.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLeadInfoString(t *testing.T) {
	s := DefaultLead().String()
	for _, want := range []string{
		"- name: Nicholas Delgado",
		"- email: Nicholas@tna.associates",
		"- company: TNA associates",
		"- domain: tna.associates",
		"- revenue: more_than_$1m/yr",
		"- team_size: 5-25",
		"- is_marketing_agency: true",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}

	if strings.Contains(LeadInfo{Name: "x", Company: "y"}.String(), "domain") {
		t.Error("String() should omit an empty domain")
	}
}
