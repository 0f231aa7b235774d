// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/taskflow-dev/taskflow/internal/backend"
	"github.com/taskflow-dev/taskflow/internal/credentials"
)

func TestNew_RequiresBackend(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error without backend")
	}
}

func TestSync_SkippedWithoutCredentials(t *testing.T) {
	h := newHarness(t)
	if !h.m.Loading() {
		t.Fatalf("manager must start in loading state")
	}
	res := h.m.Sync(context.Background())
	if res.Outcome != OutcomeSkipped || res.Identity != nil || res.Err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if h.be.count("me") != 0 {
		t.Fatalf("no network call expected")
	}
	if h.m.Loading() {
		t.Fatalf("loading must be false after the first sync")
	}
	if got := testutil.ToFloat64(h.m.metrics.queries.WithLabelValues("skipped")); got != 1 {
		t.Fatalf("skipped queries = %v", got)
	}
}

func TestSync_Authenticated(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "acc", "ref")
	h.be.meUser = alice

	res := h.m.Sync(context.Background())
	if res.Outcome != OutcomeAuthenticated || res.Identity == nil || res.Identity.Email != alice.Email {
		t.Fatalf("unexpected result %+v", res)
	}
	if h.be.meTokens[0] != "acc" {
		t.Fatalf("me sent with %q", h.be.meTokens[0])
	}
	st := h.m.State()
	if st.Loading || st.Identity == nil || st.Identity.ID != alice.ID {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestSync_UnauthenticatedClearsCredentials(t *testing.T) {
	for name, meErr := range map[string]error{
		"http 401":      &backend.Error{Op: "me", StatusCode: http.StatusUnauthorized},
		"graphql code":  &backend.Error{Op: "me", StatusCode: http.StatusOK, Code: backend.CodeUnauthenticated},
		"null identity": nil,
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			h.seed(t, "acc", "ref")
			h.m.setIdentity(alice)
			h.be.meErr = meErr

			res := h.m.Sync(context.Background())
			if res.Outcome != OutcomeRejected {
				t.Fatalf("outcome = %v, want rejected", res.Outcome)
			}
			if !errors.Is(res.Err, ErrAuthenticationFailure) {
				t.Fatalf("expected authentication failure, got %v", res.Err)
			}
			if _, ok := h.stored(t); ok {
				t.Fatalf("credentials must be cleared")
			}
			if h.m.Identity() != nil {
				t.Fatalf("identity must be anonymous")
			}
		})
	}
}

func TestSync_TransientKeepsCredentialsAndRecovers(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "acc", "ref")
	h.be.meErr = &backend.Error{Op: "me", Err: context.DeadlineExceeded}

	res := h.m.Sync(context.Background())
	if res.Outcome != OutcomeUnavailable {
		t.Fatalf("outcome = %v, want unavailable", res.Outcome)
	}
	var te *TransientBackendError
	if !errors.As(res.Err, &te) {
		t.Fatalf("expected TransientBackendError, got %v", res.Err)
	}
	if h.m.Identity() != nil {
		t.Fatalf("identity must be anonymous for this cycle")
	}
	if pair, ok := h.stored(t); !ok || pair.AccessToken != "acc" {
		t.Fatalf("credentials must be kept, got %+v ok=%v", pair, ok)
	}

	h.be.meErr = nil
	h.be.meUser = alice
	res = h.m.Sync(context.Background())
	if res.Outcome != OutcomeAuthenticated || h.m.Identity() == nil {
		t.Fatalf("expected recovery, got %+v", res)
	}
}

func TestSync_ServerErrorKeepsCredentials(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "acc", "ref")
	h.be.meErr = &backend.Error{Op: "me", StatusCode: http.StatusInternalServerError}
	if res := h.m.Sync(context.Background()); res.Outcome != OutcomeUnavailable {
		t.Fatalf("outcome = %v", res.Outcome)
	}
	if _, ok := h.stored(t); !ok {
		t.Fatalf("credentials must be kept on 5xx")
	}
}

func TestSync_NoMedium(t *testing.T) {
	h := newHarnessWithStore(t, credentials.NewStore(nil))
	if res := h.m.Sync(context.Background()); res.Outcome != OutcomeSkipped {
		t.Fatalf("outcome = %v", res.Outcome)
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeUnavailable.String() != "unavailable" || Outcome(99).String() != "unknown" {
		t.Fatalf("unexpected outcome names")
	}
}

func TestSync_LoneAccessTokenIsQueried(t *testing.T) {
	medium := credentials.NewMemoryMedium()
	_ = medium.Set(context.Background(), credentials.AccessTokenKey, "acc-only")
	h := newHarnessWithStore(t, credentials.NewStore(medium))
	h.be.meUser = alice

	res := h.m.Sync(context.Background())
	if res.Outcome != OutcomeAuthenticated {
		t.Fatalf("outcome = %v, want authenticated", res.Outcome)
	}
	if h.be.meTokens[0] != "acc-only" {
		t.Fatalf("me sent %q", h.be.meTokens[0])
	}
}
