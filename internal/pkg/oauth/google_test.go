package oauth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func fakeGoogle(t *testing.T, verified bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if verified {
			_, _ = w.Write([]byte(`{"id":"g-1","email":"kim@example.com","name":"Kim","verified_email":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"g-1","email":"kim@example.com","verified_email":false}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(srv *httptest.Server) GoogleService {
	return NewGoogleService("client", "secret", "http://localhost/callback", []string{"email"},
		WithEndpoint(oauth2.Endpoint{
			AuthURL:   srv.URL + "/auth",
			TokenURL:  srv.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}, srv.URL+"/userinfo"))
}

func TestExchangeAndVerify(t *testing.T) {
	g := newTestService(fakeGoogle(t, true))
	ctx := context.Background()

	token, err := g.VerifyToken(ctx, "good-code")
	require.NoError(t, err)

	info, err := g.VerifyUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, GoogleInformation{GoogleID: "g-1", Email: "kim@example.com", Name: "Kim", VerifiedEmail: true}, info)
}

func TestBadCodeFails(t *testing.T) {
	g := newTestService(fakeGoogle(t, true))
	_, err := g.VerifyToken(context.Background(), "bad-code")
	assert.Error(t, err)
}

func TestUnverifiedEmailRejected(t *testing.T) {
	g := newTestService(fakeGoogle(t, false))
	ctx := context.Background()

	token, err := g.VerifyToken(ctx, "good-code")
	require.NoError(t, err)
	_, err = g.VerifyUser(ctx, token)
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestRedirectCarriesState(t *testing.T) {
	g := newTestService(fakeGoogle(t, true))

	state := g.GenerateState("agent")
	decoded, err := base64.URLEncoding.DecodeString(state)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(decoded), ".agent"))

	u, err := url.Parse(g.RedirectURL(state))
	require.NoError(t, err)
	assert.Equal(t, state, u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))
}
