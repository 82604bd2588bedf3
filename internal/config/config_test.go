package config

import "testing"

func TestCredentialsConfigured(t *testing.T) {
	cases := []struct {
		creds Credentials
		want  bool
	}{
		{Credentials{UserID: "123", APIKey: "abc"}, true},
		{Credentials{UserID: "123"}, false},
		{Credentials{APIKey: "abc"}, false},
		{Credentials{}, false},
	}

	for _, tc := range cases {
		if got := tc.creds.Configured(); got != tc.want {
			t.Errorf("Configured(%+v) = %v, want %v", tc.creds, got, tc.want)
		}
	}
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	t.Setenv("ZOTERO_USER_ID", "9999")
	t.Setenv("ZOTERO_API_KEY", "secret")

	creds := LoadCredentials()
	if creds.UserID != "9999" || creds.APIKey != "secret" {
		t.Errorf("LoadCredentials() = %+v", creds)
	}
	if !creds.Configured() {
		t.Error("expected credentials to be configured")
	}
}
