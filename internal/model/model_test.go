package model

import "testing"

func TestCredentialPairComplete(t *testing.T) {
	cases := []struct {
		pair CredentialPair
		want bool
	}{
		{CredentialPair{}, false},
		{CredentialPair{AccessToken: "a"}, false},
		{CredentialPair{RefreshToken: "r"}, false},
		{CredentialPair{AccessToken: "a", RefreshToken: "r"}, true},
	}
	for _, c := range cases {
		if got := c.pair.Complete(); got != c.want {
			t.Fatalf("Complete(%+v) = %v, want %v", c.pair, got, c.want)
		}
	}
}

func TestAuthPayloadCredentials(t *testing.T) {
	p := AuthPayload{AccessToken: "a", RefreshToken: "r", User: &User{ID: "1", Email: "a@b.com"}}
	got := p.Credentials()
	if got.AccessToken != "a" || got.RefreshToken != "r" {
		t.Fatalf("unexpected credentials: %+v", got)
	}
	if s := p.User.String(); s != "a@b.com (1)" {
		t.Fatalf("unexpected user string: %q", s)
	}
}
