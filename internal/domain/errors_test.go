package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestUpstreamErrorFormatting(t *testing.T) {
	t.Parallel()

	err := error(&UpstreamError{
		URL:        "https://practicum.yandex.ru/api/user_api/homework_statuses/",
		StatusCode: 503,
		AuthScheme: "OAuth <redacted>",
		Detail:     "Service Unavailable",
	})

	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream in chain")
	}
	want := "upstream https://practicum.yandex.ru/api/user_api/homework_statuses/ returned 503 (auth: OAuth <redacted>): Service Unavailable"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestStartupErrorUnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("lock busy")
	err := error(&StartupError{Err: cause})
	if !errors.Is(err, ErrStartup) || !errors.Is(err, cause) {
		t.Fatalf("expected both ErrStartup and cause in chain: %v", err)
	}

	missing := &StartupError{Missing: []string{"PRACTICUM_TOKEN", "TELEGRAM_CHAT_ID"}}
	if !strings.Contains(missing.Error(), "PRACTICUM_TOKEN, TELEGRAM_CHAT_ID") {
		t.Fatalf("unexpected message: %s", missing.Error())
	}
}

func TestVerdictVocabulary(t *testing.T) {
	t.Parallel()

	for _, s := range []Status{StatusApproved, StatusReviewing, StatusRejected} {
		if _, ok := s.Verdict(); !ok {
			t.Fatalf("status %s must have a verdict", s)
		}
	}
	if _, ok := Status("unknown").Verdict(); ok {
		t.Fatalf("unknown status must not have a verdict")
	}
}
