package labels

import "testing"

func TestDefault(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"name":           "Name",
		"first_name":     "First Name",
		"billingAddress": "Billing Address",
		"address-line2":  "Address Line 2",
		"HTTPServer":     "HTTP Server",
		"user.email":     "User Email",
		"  padded  ":     "Padded",
	}
	for input, want := range cases {
		if got := Default(input); got != want {
			t.Errorf("Default(%q) = %q, want %q", input, got, want)
		}
	}
}
