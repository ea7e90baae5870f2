package variantconfig

import "testing"

func TestParam(t *testing.T) {
	cases := []struct {
		locale string
		chain  []string
		want   string
	}{
		{"mr", []string{"hi", "en"}, "mr_hi_en"},
		{"hi", []string{"en"}, "hi_en"},
		{"en", nil, "en"},
		{"fr-ca", []string{"fr", "en"}, "fr-ca_fr_en"},
	}

	for _, tc := range cases {
		if got := Param(tc.locale, tc.chain); got != tc.want {
			t.Errorf("Param(%q, %v) = %q, want %q", tc.locale, tc.chain, got, tc.want)
		}
	}
}
