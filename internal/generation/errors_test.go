package generation

import (
	"errors"
	"fmt"
	"testing"

	"server/internal/providers/genai"
)

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "status 404",
			err:  &genai.APIError{StatusCode: 404, Message: "model gone"},
			want: KindResourceNotFound,
		},
		{
			name: "not found phrase wins over billing",
			err:  errors.New("Requested entity was not found. Check billing status."),
			want: KindResourceNotFound,
		},
		{
			name: "status 401",
			err:  &genai.APIError{StatusCode: 401, Message: "who are you"},
			want: KindCredentialInvalid,
		},
		{
			name: "api key phrase",
			err:  errors.New("API key not valid. Please pass a valid API key."),
			want: KindCredentialInvalid,
		},
		{
			name: "status 429",
			err:  &genai.APIError{StatusCode: 429, Message: "slow down"},
			want: KindQuotaExceeded,
		},
		{
			name: "quota phrase",
			err:  errors.New("RESOURCE_EXHAUSTED: quota exceeded for metric"),
			want: KindQuotaExceeded,
		},
		{
			name: "quota wins over billing",
			err:  errors.New("quota exceeded, enable billing to raise limits"),
			want: KindQuotaExceeded,
		},
		{
			name: "billing phrase",
			err:  errors.New("this model requires a billing-enabled project"),
			want: KindBillingRequired,
		},
		{
			name: "payment phrase",
			err:  errors.New("payment method required"),
			want: KindBillingRequired,
		},
		{
			name: "anything else",
			err:  errors.New("connection reset by peer"),
			want: KindUnknown,
		},
		{
			name: "empty binary payload",
			err:  &ParseError{Intent: IntentImageGeneration, Err: ErrEmptyResponse},
			want: KindResourceNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Kind != tt.want {
				t.Fatalf("Classify(%v).Kind = %q, want %q", tt.err, got.Kind, tt.want)
			}
			if !got.Retryable {
				t.Fatalf("Classify(%v).Retryable = false, want true", tt.err)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	err := errors.New("quota exceeded, enable billing")
	first := Classify(err)
	for i := 0; i < 10; i++ {
		if got := Classify(err); got.Kind != first.Kind {
			t.Fatalf("classification changed on repeat: %q vs %q", got.Kind, first.Kind)
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	upper := Classify(errors.New("QUOTA EXCEEDED"))
	lower := Classify(errors.New("quota exceeded"))
	if upper.Kind != lower.Kind || upper.Kind != KindQuotaExceeded {
		t.Fatalf("case sensitivity leaked: %q vs %q", upper.Kind, lower.Kind)
	}
}

func TestClassifyCooldownFlags(t *testing.T) {
	cooldown := map[Kind]bool{
		KindQuotaExceeded:   true,
		KindBillingRequired: true,
	}
	samples := map[Kind]error{
		KindResourceNotFound:  &genai.APIError{StatusCode: 404},
		KindCredentialInvalid: &genai.APIError{StatusCode: 401},
		KindQuotaExceeded:     &genai.APIError{StatusCode: 429},
		KindBillingRequired:   errors.New("billing disabled"),
		KindUnknown:           errors.New("boom"),
	}
	for kind, err := range samples {
		got := Classify(err)
		if got.Kind != kind {
			t.Fatalf("sample for %q classified as %q", kind, got.Kind)
		}
		if got.Cooldown != cooldown[kind] {
			t.Fatalf("Cooldown for %q = %v, want %v", kind, got.Cooldown, cooldown[kind])
		}
	}
}

func TestClassifyPassthrough(t *testing.T) {
	original := errTimeout("10m")
	if got := Classify(original); got != original {
		t.Fatalf("classified error should pass through unchanged")
	}
	wrapped := fmt.Errorf("job failed: %w", original)
	if got := Classify(wrapped); got != original {
		t.Fatalf("wrapped classified error should unwrap to the original")
	}
}

func TestClassifyPreservesDiagnostic(t *testing.T) {
	err := &genai.APIError{StatusCode: 429, Status: "RESOURCE_EXHAUSTED", Message: "per-minute quota hit"}
	got := Classify(err)
	if got.Diagnostic != "per-minute quota hit" {
		t.Fatalf("Diagnostic = %q, want upstream message", got.Diagnostic)
	}
	if !errors.Is(got, err) {
		t.Fatal("cause chain broken: errors.Is(classified, apiErr) = false")
	}
}

func TestUserMessageLocales(t *testing.T) {
	err := Classify(&genai.APIError{StatusCode: 404})
	ar := err.UserMessage("ar")
	en := err.UserMessage("en")
	if ar == "" || en == "" || ar == en {
		t.Fatalf("expected distinct bilingual messages, got ar=%q en=%q", ar, en)
	}
	if err.UserMessage("fr") != en {
		t.Fatal("unknown locale should fall back to English")
	}
	if err.UserMessage("AR") != ar {
		t.Fatal("locale matching should be case-insensitive")
	}
}

func TestUserMessageNeverLeaksDiagnostic(t *testing.T) {
	diag := "internal: key projects/123 rejected"
	err := Classify(&genai.APIError{StatusCode: 401, Message: diag})
	for _, locale := range []string{"ar", "en"} {
		if msg := err.UserMessage(locale); msg == diag {
			t.Fatalf("user message must not be the raw diagnostic: %q", msg)
		}
	}
}
