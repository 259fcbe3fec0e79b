package generation

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"server/internal/providers/genai"
)

// Kind is the normalized failure category surfaced to callers. Every remote
// failure maps to exactly one kind; the raw diagnostic is preserved for
// logging but never shown as the primary user message.
type Kind string

const (
	KindCredentialMissing Kind = "credential_missing"
	KindCredentialInvalid Kind = "credential_invalid"
	KindResourceNotFound  Kind = "resource_not_found"
	KindQuotaExceeded     Kind = "quota_exceeded"
	KindBillingRequired   Kind = "billing_required"
	KindTimeout           Kind = "timeout"
	KindUnknown           Kind = "unknown"
)

// ValidationError reports malformed caller input detected before any network
// call. It is a programmer error in a correct integration and is never sent
// to the remote service.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

// ParseError reports a structured payload that failed contract validation.
type ParseError struct {
	Intent Intent
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("parse %s: missing or invalid field %q", e.Intent, e.Field)
	}
	return fmt.Sprintf("parse %s: %v", e.Intent, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrEmptyResponse marks an otherwise-successful reply that carried no usable
// binary payload. It classifies as ResourceNotFound rather than a plain parse
// failure so the retry affordance points at the credential, not the prompt.
var ErrEmptyResponse = errors.New("EMPTY_RESPONSE")

// ClassifiedError is the single failure type the pipeline returns. It is
// immutable after construction.
type ClassifiedError struct {
	Kind Kind
	// Diagnostic is the raw upstream message, for classification and logs only.
	Diagnostic string
	// Retryable signals that a user-driven retry has a chance to succeed.
	Retryable bool
	// Cooldown marks kinds where the UI should discourage an immediate retry.
	Cooldown bool
	cause    error
}

func (e *ClassifiedError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Diagnostic)
	}
	return string(e.Kind)
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

// userMessages carries the bilingual remediation text per kind. Arabic first
// because it is the product's primary locale.
var userMessages = map[Kind]map[string]string{
	KindCredentialMissing: {
		"ar": "لم يتم اختيار مفتاح API. يرجى اختيار مفتاح صالح ثم إعادة المحاولة.",
		"en": "No API credential is selected. Choose a credential, then retry.",
	},
	KindCredentialInvalid: {
		"ar": "مفتاح API غير صالح. يرجى اختيار مفتاح مختلف.",
		"en": "The API credential is invalid. Select a different credential.",
	},
	KindResourceNotFound: {
		"ar": "المشروع أو المفتاح المحدد غير صالح لهذه الخدمة. يرجى اختيار مفتاح آخر.",
		"en": "The selected project/credential is invalid for this capability. Select a different one.",
	},
	KindQuotaExceeded: {
		"ar": "تم تجاوز الحصة المتاحة. انتظر قليلاً قبل إعادة المحاولة.",
		"en": "Usage quota exceeded. Wait for the cooldown before retrying.",
	},
	KindBillingRequired: {
		"ar": "هذه الخدمة تتطلب تفعيل الفوترة على الحساب.",
		"en": "This capability requires billing to be enabled on the account.",
	},
	KindTimeout: {
		"ar": "استغرق التوليد وقتاً أطول من المسموح. يرجى إعادة المحاولة.",
		"en": "Generation took longer than allowed. Please retry.",
	},
	KindUnknown: {
		"ar": "حدث خطأ غير متوقع. يرجى إعادة المحاولة.",
		"en": "Something went wrong. Please retry.",
	},
}

// UserMessage returns the localized remediation text for the error. Unknown
// locales fall back to English.
func (e *ClassifiedError) UserMessage(locale string) string {
	msgs := userMessages[e.Kind]
	if msgs == nil {
		msgs = userMessages[KindUnknown]
	}
	if m, ok := msgs[strings.ToLower(locale)]; ok {
		return m
	}
	return msgs["en"]
}

// Classify maps any failure to a ClassifiedError. Matching is case-insensitive
// and evaluated in precedence order; the first match wins. A ClassifiedError
// input passes through unchanged.
func Classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	status := 0
	message := err.Error()
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
		if apiErr.Message != "" {
			message = apiErr.Message
		}
	}
	lower := strings.ToLower(message)

	switch {
	case status == http.StatusNotFound || strings.Contains(lower, "requested entity was not found"):
		return newClassified(KindResourceNotFound, message, err)
	case status == http.StatusUnauthorized ||
		strings.Contains(lower, "api key not valid") ||
		strings.Contains(lower, "invalid api key"):
		return newClassified(KindCredentialInvalid, message, err)
	case status == http.StatusTooManyRequests ||
		strings.Contains(lower, "quota") ||
		strings.Contains(lower, "exhausted") ||
		strings.Contains(lower, "limit"):
		return newClassified(KindQuotaExceeded, message, err)
	case strings.Contains(lower, "billing") || strings.Contains(lower, "payment"):
		return newClassified(KindBillingRequired, message, err)
	default:
		var parseErr *ParseError
		if errors.As(err, &parseErr) && errors.Is(parseErr, ErrEmptyResponse) {
			return newClassified(KindResourceNotFound, message, err)
		}
		return newClassified(KindUnknown, message, err)
	}
}

func newClassified(kind Kind, diagnostic string, cause error) *ClassifiedError {
	e := &ClassifiedError{
		Kind:       kind,
		Diagnostic: diagnostic,
		Retryable:  true,
		cause:      cause,
	}
	if kind == KindQuotaExceeded || kind == KindBillingRequired {
		e.Cooldown = true
	}
	return e
}

// NewCredentialMissing is raised pre-flight when a paid capability is invoked
// without an active credential selection. Exported so CredentialGate
// implementations return the same classification the pipeline produces.
func NewCredentialMissing() *ClassifiedError {
	return newClassified(KindCredentialMissing, "no active credential selected", nil)
}

// errTimeout is raised when the video poll budget is exhausted.
func errTimeout(budget string) *ClassifiedError {
	return newClassified(KindTimeout, "video generation exceeded wait budget "+budget, nil)
}
