package provider

import (
	"errors"
	"strings"
	"testing"

	"finlight-auth/internal/auth"
)

func TestGoogleNormalize(t *testing.T) {
	id, err := GoogleNormalizer{}.Normalize(map[string]any{
		"sub":   "1234567890",
		"email": "hong@gmail.com",
		"name":  "Hong",
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if id.Provider != "google" || id.ProviderID != "1234567890" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if id.Email != "hong@gmail.com" || id.Nickname != "Hong" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if id.ExternalKey() != "google_1234567890" {
		t.Fatalf("ExternalKey = %q", id.ExternalKey())
	}
}

func TestGoogleNormalizeMissingSub(t *testing.T) {
	if _, err := (GoogleNormalizer{}).Normalize(map[string]any{"email": "a@b.com"}); err == nil {
		t.Fatal("expected error for missing sub")
	}
}

func TestKakaoNormalizeNestedAttributes(t *testing.T) {
	// kakao's id arrives as a JSON number
	id, err := KakaoNormalizer{}.Normalize(map[string]any{
		"id": float64(123456789),
		"kakao_account": map[string]any{
			"email": "abc@kakao.com",
			"profile": map[string]any{
				"nickname": "Hong",
			},
		},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if id.ProviderID != "123456789" {
		t.Fatalf("ProviderID = %q, want 123456789", id.ProviderID)
	}
	if id.Email != "abc@kakao.com" || id.Nickname != "Hong" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestPlaceholderEmailIsDeterministic(t *testing.T) {
	attrs := map[string]any{"id": float64(42)}

	first, err := KakaoNormalizer{}.Normalize(attrs)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	second, err := KakaoNormalizer{}.Normalize(attrs)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if first.Email == "" || first.Email != second.Email {
		t.Fatalf("placeholder emails differ: %q vs %q", first.Email, second.Email)
	}
	if !strings.Contains(first.Email, "kakao_42") {
		t.Fatalf("placeholder email %q does not encode provider and id", first.Email)
	}
}

func TestPlaceholderNickname(t *testing.T) {
	id, err := GoogleNormalizer{}.Normalize(map[string]any{
		"sub":   "77",
		"email": "a@b.com",
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if !strings.HasPrefix(id.Nickname, "googleUser_") {
		t.Fatalf("Nickname = %q, want googleUser_ prefix", id.Nickname)
	}
	if len(id.Nickname) != len("googleUser_")+8 {
		t.Fatalf("Nickname = %q, want 8-char suffix", id.Nickname)
	}
}

func TestNormalizerSetUnsupportedProvider(t *testing.T) {
	set := NewNormalizerSet(GoogleNormalizer{}, KakaoNormalizer{})

	if _, err := set.Normalize("naver", map[string]any{}); !errors.Is(err, auth.ErrUnsupportedProvider) {
		t.Fatalf("err = %v, want ErrUnsupportedProvider", err)
	}
}

func TestRegistryUnknownFlow(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("google"); !errors.Is(err, auth.ErrUnsupportedProvider) {
		t.Fatalf("err = %v, want ErrUnsupportedProvider", err)
	}
}
