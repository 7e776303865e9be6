package fakeapi_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noteflow/noteflow.go/internal/fakeapi"
)

func TestLoginAndCounting(t *testing.T) {
	srv := fakeapi.NewServer()
	t.Cleanup(srv.Close)
	srv.AddUser("Ada", "ada@example.com", "secret")

	resp, err := http.Post(srv.URL()+"/login", "application/json",
		jsonBody(`{"email":"ada@example.com","password":"secret"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env struct {
		Status string `json:"status"`
		Data   struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, "success", env.Status)
	require.NotEmpty(t, env.Data.AccessToken)
	require.Equal(t, 1, srv.Calls(fakeapi.OpLogin))
	require.Equal(t, 1, srv.TotalCalls())
}

func TestFaultCountdown(t *testing.T) {
	srv := fakeapi.NewServer()
	t.Cleanup(srv.Close)
	srv.AddUser("Ada", "ada@example.com", "secret")
	srv.InjectFault(fakeapi.OpLogin, fakeapi.Fault{Mode: fakeapi.FaultAPI, Message: "nope", Remaining: 1})

	body := `{"email":"ada@example.com","password":"secret"}`

	resp, err := http.Post(srv.URL()+"/login", "application/json", jsonBody(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The fault was armed for a single request; the next one goes through.
	resp, err = http.Post(srv.URL()+"/login", "application/json", jsonBody(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnauthenticatedRequestFails(t *testing.T) {
	srv := fakeapi.NewServer()
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL() + "/notes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}
