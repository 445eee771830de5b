package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/pending-expense/pending-expense-app/mocks"
)

const secret = "0123456789abcdef0123456789abcdef"

func login(t *testing.T, h *Handler, username, password string) string {
	t.Helper()

	rs := h.Handle(context.Background(), post(`{"action":"login","username":"`+username+`","password":"`+password+`"}`))
	if rs.StatusCode != http.StatusOK {
		t.Fatalf("Login failed (%v %s)", rs.StatusCode, rs.Body)
	}

	var reply loginReply
	if err := json.Unmarshal(rs.Body, &reply); err != nil {
		t.Fatalf("Invalid login response (%v)", err)
	}

	if reply.Token == "" {
		t.Fatalf("Login did not return a session token (%s)", rs.Body)
	}

	return reply.Token
}

func TestSessionToken(t *testing.T) {
	c := testConfig()
	c.Session.Secret = secret

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)

	source.EXPECT().Table(gomock.Any(), "users").Return(&users, nil)
	source.EXPECT().Table(gomock.Any(), "permissions").Return(&permissions, nil)
	source.EXPECT().Table(gomock.Any(), "expenses").Return(&table, nil)
	source.EXPECT().Cell(gomock.Any(), "expenses", "AB2").Return("", nil)

	h := testHandler(c, source)
	token := login(t, h, "a", "secret")

	rq := post(`{"action":"getData","costCenter":"A"}`)
	rq.Header.Set("Authorization", "Bearer "+token)

	rs := h.Handle(context.Background(), rq)
	if rs.StatusCode != http.StatusOK {
		t.Errorf("Incorrect status code\n   expected: %v\n   got:      %v\n", http.StatusOK, rs.StatusCode)
	}

	if allowed := rs.Headers["Access-Control-Allow-Headers"]; allowed != "Content-Type, Authorization" {
		t.Errorf("Incorrect allowed headers\n   expected: %v\n   got:      %v\n", "Content-Type, Authorization", allowed)
	}
}

func TestSessionTokenSubject(t *testing.T) {
	c := testConfig()
	c.Session.Secret = secret

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)

	source.EXPECT().Table(gomock.Any(), "users").Return(&users, nil)

	h := testHandler(c, source)
	token := login(t, h, " cc01 ", "01012530")

	claims, err := h.parse(token)
	if err != nil {
		t.Fatalf("Error parsing session token (%v)", err)
	}

	if claims.Subject != "CC01" {
		t.Errorf("Incorrect token subject\n   expected: %v\n   got:      %v\n", "CC01", claims.Subject)
	}
}

func TestGetDataWithoutSessionToken(t *testing.T) {
	c := testConfig()
	c.Session.Secret = secret

	h := testHandler(c, nil)
	rs := h.Handle(context.Background(), post(`{"action":"getData","costCenter":"A"}`))

	checkResponse(t, rs, http.StatusUnauthorized, `{"success":false,"message":"Unauthorized"}`)
}

func TestGetDataWithAnotherCostCenterToken(t *testing.T) {
	c := testConfig()
	c.Session.Secret = secret

	h := testHandler(c, nil)
	token, err := h.issue("B")
	if err != nil {
		t.Fatalf("Error issuing session token (%v)", err)
	}

	rq := post(`{"action":"getData","costCenter":"A"}`)
	rq.Header.Set("Authorization", "Bearer "+token)

	rs := h.Handle(context.Background(), rq)

	checkResponse(t, rs, http.StatusUnauthorized, `{"success":false,"message":"Unauthorized"}`)
}

func TestGetDataWithExpiredSessionToken(t *testing.T) {
	c := testConfig()
	c.Session.Secret = secret

	h := testHandler(c, nil)
	h.now = func() time.Time { return time.Now().Add(-24 * time.Hour) }

	token, err := h.issue("A")
	if err != nil {
		t.Fatalf("Error issuing session token (%v)", err)
	}

	h.now = time.Now

	rq := post(`{"action":"getData","costCenter":"A"}`)
	rq.Header.Set("Authorization", "Bearer "+token)

	rs := h.Handle(context.Background(), rq)

	checkResponse(t, rs, http.StatusUnauthorized, `{"success":false,"message":"Unauthorized"}`)
}

func TestGetDataWithForgedSessionToken(t *testing.T) {
	c := testConfig()
	c.Session.Secret = "fedcba9876543210fedcba9876543210"

	forger := testHandler(c, nil)
	token, err := forger.issue("A")
	if err != nil {
		t.Fatalf("Error issuing session token (%v)", err)
	}

	c = testConfig()
	c.Session.Secret = secret

	h := testHandler(c, nil)
	rq := post(`{"action":"getData","costCenter":"A"}`)
	rq.Header.Set("Authorization", "Bearer "+token)

	rs := h.Handle(context.Background(), rq)

	checkResponse(t, rs, http.StatusUnauthorized, `{"success":false,"message":"Unauthorized"}`)
}
