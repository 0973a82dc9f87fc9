package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lumen-tui/lumen/internal/album"
)

func execJobAction(t *testing.T, server *httptest.Server, action, kind string) (string, error) {
	t.Helper()

	prevServer, prevConfig := serverURL, configPath
	serverURL, configPath = server.URL, t.TempDir()+"/config.toml"
	t.Cleanup(func() { serverURL, configPath = prevServer, prevConfig })

	cmd := jobActionCmd(action, "test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{kind})
	err := cmd.Execute()
	return out.String(), err
}

func TestJobsStopSucceedsWithMessageOnlyReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/batch_enhance/stop" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(album.JobActionResult{Message: "Job stopping."})
	}))
	t.Cleanup(server.Close)

	out, err := execJobAction(t, server, "stop", string(album.JobEnhance))
	if err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
	if !strings.Contains(out, "Job stopping.") {
		t.Fatalf("stop output = %q, want the server message", out)
	}
}

func TestJobsStartRefusalIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(album.JobActionResult{
			Success: false,
			Message: "model not configured",
		})
	}))
	t.Cleanup(server.Close)

	_, err := execJobAction(t, server, "start", string(album.JobClip))
	if err == nil || !strings.Contains(err.Error(), "model not configured") {
		t.Fatalf("start error = %v, want refusal with server message", err)
	}

	out, err := execJobAction(t, server, "stop", string(album.JobClip))
	if err != nil {
		t.Fatalf("stop should ignore the success flag, got error: %v", err)
	}
	if !strings.Contains(out, "model not configured") {
		t.Fatalf("stop output = %q, want the server message", out)
	}
}

func TestJobsActionRejectsUnknownKind(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	_, err := execJobAction(t, server, "start", "reticulate_splines")
	if err == nil || !strings.Contains(err.Error(), "unknown job kind") {
		t.Fatalf("error = %v, want unknown job kind", err)
	}
}
