package qa

import "testing"

func TestDeriveTagsStripsPunctuation(t *testing.T) {
	tags := DeriveTags("What is a class?", nil)
	if !containsString(tags, "class") {
		t.Errorf("expected punctuation stripped, got %v", tags)
	}
	if containsString(tags, "class?") {
		t.Errorf("raw token should not survive, got %v", tags)
	}
}

func TestDeriveTagsSuppliedFirst(t *testing.T) {
	tags := DeriveTags("Java Basics", []string{"homework"})
	if len(tags) < 3 {
		t.Fatalf("expected supplied plus derived tags, got %v", tags)
	}
	if tags[0] != "homework" {
		t.Errorf("supplied tags should come first, got %v", tags)
	}
	if !containsString(tags, "java") || !containsString(tags, "basics") {
		t.Errorf("expected lowercased title tokens in %v", tags)
	}
}

func TestDeriveTagsDedupes(t *testing.T) {
	tags := DeriveTags("go go go", []string{"go"})
	count := 0
	for _, tag := range tags {
		if tag == "go" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected a single go tag, got %v", tags)
	}
}

func TestDeriveTagsDropsEmptyTokens(t *testing.T) {
	tags := DeriveTags("??? !!!", nil)
	for _, tag := range tags {
		if tag == "" {
			t.Errorf("empty tag in %v", tags)
		}
	}
}
