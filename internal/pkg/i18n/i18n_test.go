package i18n

import "testing"

func TestLoadEmbeddedEnglish(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Locale() != "en" {
		t.Errorf("Locale() = %q, want en", c.Locale())
	}

	keys := []string{
		"free_item.inviter",
		"free_item.invitee",
		"sms.invitation_new_user_inviter",
		"notification.onboarding",
		"notification.visit",
		"notification.small_reward",
		"notification.medium_reward",
		"notification.large_reward",
		"notification.friendship",
		"notification.invitee_signed_up",
		"notification.referral_free_join",
	}
	for _, key := range keys {
		if _, ok := c.messages[key]; !ok {
			t.Errorf("missing key %s", key)
		}
	}
}

func TestLoadUnknownLocale(t *testing.T) {
	if _, err := Load("xx"); err == nil {
		t.Fatal("expected error for unknown locale")
	}
}

func TestInterpolation(t *testing.T) {
	c, err := Parse("en", []byte(`
en:
  greet: "Hi %{name}, welcome to %{place}. Bye %{name}."
  nested:
    count: 3
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := c.T("greet", map[string]string{"name": "Ana", "place": "Green Leaf"})
	want := "Hi Ana, welcome to Green Leaf. Bye Ana."
	if got != want {
		t.Errorf("T() = %q, want %q", got, want)
	}

	if got := c.T("nested.count", nil); got != "3" {
		t.Errorf("nested.count = %q, want 3", got)
	}

	if got := c.T("greet", nil); got != "Hi %{name}, welcome to %{place}. Bye %{name}." {
		t.Errorf("T() without vars = %q", got)
	}

	if got := c.T("nope", nil); got != "translation missing: en.nope" {
		t.Errorf("missing key = %q", got)
	}
}

func TestParseMissingRoot(t *testing.T) {
	if _, err := Parse("de", []byte("en:\n  a: b\n")); err == nil {
		t.Fatal("expected error for missing root key")
	}
}
