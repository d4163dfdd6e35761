package devsession

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/needle-mirror/com.unity.platforms.web/internal/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	launcher  *fakeLauncher
	host      *fakeHost
	registrar *fakeRegistrar
	session   *Session
	req       Request
}

func newHarness(t *testing.T, toolsErr error) *harness {
	t.Helper()
	script := filepath.Join(t.TempDir(), "websockify", toolchain.ProxyScriptName)
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0o755))
	require.NoError(t, os.WriteFile(script, nil, 0o644))

	h := &harness{
		launcher:  &fakeLauncher{},
		host:      &fakeHost{},
		registrar: &fakeRegistrar{},
	}
	tools := fakeTools{
		tools: toolchain.DevTools{Runtime: "/sdk/node", Server: "/sdk/http-server"},
		err:   toolsErr,
	}
	h.session = New(h.launcher, h.host, tools, h.registrar)
	h.req = Request{
		BuildDir:    "/builds/game",
		BuildName:   "Game.html",
		HTTPPort:    8084,
		ProxyPort:   54998,
		ProxyTarget: "localhost:34999",
		ProxyScript: script,
	}
	return h
}

func TestEnsureRunning_StartsServerAndProxy(t *testing.T) {
	h := newHarness(t, nil)

	res := h.session.EnsureRunning(context.Background(), h.req)

	require.True(t, res.OK(), res.Warning)
	assert.Equal(t, "http://localhost:8084/Game.html", res.URL)
	assert.Equal(t, []string{"http://localhost:8084/Game.html"}, h.host.opened)

	require.Len(t, h.launcher.procs, 2)
	server, proxy := h.launcher.procs[0].spec, h.launcher.procs[1].spec
	assert.Equal(t, "/sdk/node", server.Path)
	assert.Equal(t, []string{"/sdk/http-server", ".", "-p", "8084", "-c-1", "-s"}, server.Args)
	assert.Equal(t, "/builds/game", server.Dir)
	assert.Equal(t, "/sdk/node", proxy.Path)
	assert.Equal(t, []string{h.req.ProxyScript, "54998", "localhost:34999"}, proxy.Args)

	st := h.session.Status()
	assert.Equal(t, Running, st.FileServer)
	assert.Equal(t, Running, st.Proxy)
	assert.Equal(t, res.URL, st.URL)
}

func TestEnsureRunning_TwiceKeepsOnePair(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	require.True(t, h.session.EnsureRunning(ctx, h.req).OK())
	require.True(t, h.session.EnsureRunning(ctx, h.req).OK())

	require.Len(t, h.launcher.procs, 4)
	for _, p := range h.launcher.procs[:2] {
		assert.True(t, p.Exited(), "pid %d should have been terminated", p.pid)
		assert.Equal(t, 1, p.kills)
	}
	assert.Len(t, h.launcher.live(), 2)
	assert.Len(t, h.registrar.hooks, 1, "shutdown hook registered once")
}

func TestEnsureRunning_DeadProcessIsReplaced(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	require.True(t, h.session.EnsureRunning(ctx, h.req).OK())
	h.launcher.procs[0].crash()
	assert.Equal(t, Dead, h.session.Status().FileServer)

	require.True(t, h.session.EnsureRunning(ctx, h.req).OK())
	assert.Zero(t, h.launcher.procs[0].kills, "already exited process is not killed")
	assert.Len(t, h.launcher.live(), 2)
}

func TestEnsureRunning_MissingTools(t *testing.T) {
	h := newHarness(t, fmt.Errorf("node runtime: %w", toolchain.ErrToolMissing))

	res := h.session.EnsureRunning(context.Background(), h.req)

	assert.False(t, res.OK())
	assert.Contains(t, res.Warning, "toolchain not installed")
	assert.Empty(t, h.launcher.procs)
	assert.Empty(t, h.host.opened)
	assert.Equal(t, []string{filepath.Join("/builds/game", "Game.html")}, h.host.revealed)
}

func TestEnsureRunning_MissingProxyScript(t *testing.T) {
	h := newHarness(t, nil)
	h.req.ProxyScript = ""
	h.req.AssetsRoot = t.TempDir()

	res := h.session.EnsureRunning(context.Background(), h.req)

	assert.False(t, res.OK())
	assert.Contains(t, res.Warning, toolchain.ProxyScriptName)
	assert.Empty(t, h.launcher.procs)
	assert.Len(t, h.host.revealed, 1)
}

func TestEnsureRunning_ServerStartFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.launcher.failOn = "/sdk/http-server"

	res := h.session.EnsureRunning(context.Background(), h.req)

	assert.False(t, res.OK())
	assert.Contains(t, res.Warning, "Error starting local server")
	assert.Empty(t, h.host.opened)
	assert.Len(t, h.host.revealed, 1)
	assert.Equal(t, Absent, h.session.Status().FileServer)
	assert.Equal(t, Absent, h.session.Status().Proxy)
}

func TestEnsureRunning_ProxyStartFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.launcher.failOn = h.req.ProxyScript

	res := h.session.EnsureRunning(context.Background(), h.req)

	assert.False(t, res.OK())
	assert.Contains(t, res.Warning, "websockify proxy")
	st := h.session.Status()
	assert.Equal(t, Running, st.FileServer)
	assert.Equal(t, Absent, st.Proxy)
}

func TestEnsureRunning_BrowserFailureIsWarning(t *testing.T) {
	h := newHarness(t, nil)
	h.host.openErr = fmt.Errorf("no browser")

	res := h.session.EnsureRunning(context.Background(), h.req)

	assert.False(t, res.OK())
	assert.Equal(t, "http://localhost:8084/Game.html", res.URL)
	assert.Len(t, h.launcher.live(), 2)
}

func TestStopRunning(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	h.session.StopRunning(ctx)
	assert.Equal(t, Absent, h.session.Status().FileServer)

	require.True(t, h.session.EnsureRunning(ctx, h.req).OK())
	h.session.StopRunning(ctx)
	h.session.StopRunning(ctx)

	assert.Empty(t, h.launcher.live())
	for _, p := range h.launcher.procs {
		assert.Equal(t, 1, p.kills)
	}
	st := h.session.Status()
	assert.Equal(t, Absent, st.FileServer)
	assert.Equal(t, Absent, st.Proxy)
	assert.Empty(t, st.URL)
}

func TestShutdownHookStopsSession(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.session.EnsureRunning(context.Background(), h.req).OK())
	h.registrar.fire()

	assert.Empty(t, h.launcher.live())
}

func TestProbeProxy(t *testing.T) {
	upgrader := websocket.Upgrader{Subprotocols: []string{ProxySubprotocol}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	port, err := strconv.Atoi(srv.URL[strings.LastIndex(srv.URL, ":")+1:])
	require.NoError(t, err)

	require.NoError(t, ProbeProxy(context.Background(), port))
}

func TestProbeProxy_NotAWebSocket(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	err := probeURL(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
