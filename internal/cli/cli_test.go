package cli

import (
	"bytes"
	"net"
	"strings"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easywealth/internal/platform/config"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "disabled"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSIPCommand(t *testing.T) {
	out, _, err := run(t, "sip", "--monthly", "5000", "--rate", "12", "--years", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Invested: 600000")
	assert.Contains(t, out, "Estimated value: 1161695")
	assert.Equal(t, 12, strings.Count(out, "\n"), "header, ten years and the summary line")
}

func TestSIPCommandRejectsInvalid(t *testing.T) {
	_, _, err := run(t, "sip", "--years", "0")
	assert.Error(t, err)
}

func TestSIPCommandWarnsOutsideSliders(t *testing.T) {
	_, stderr, err := run(t, "sip", "--monthly", "250")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning:")
}

func TestFireCommand(t *testing.T) {
	out, _, err := run(t, "fire", "--expense", "600000", "--rate", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Target corpus: 15000000")
	assert.Contains(t, out, "Monthly withdrawal: 50000.00")
}

func TestClassifyCommand(t *testing.T) {
	out, _, err := run(t, "classify", "Based on our chat, your risk profile is Balanced.")
	require.NoError(t, err)
	assert.Equal(t, "Balanced\n", out)

	out, _, err = run(t, "classify", "nice", "weather", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "no profile statement")
}

func TestSchemesCommand(t *testing.T) {
	out, _, err := run(t, "schemes", "--tier", "conservative")
	require.NoError(t, err)
	assert.Contains(t, out, "Public Provident Fund (PPF)")
	assert.NotContains(t, out, "Nifty 50")

	_, _, err = run(t, "schemes", "--tier", "reckless")
	assert.Error(t, err)
}

func TestServeRejectsBadPort(t *testing.T) {
	_, _, err := run(t, "serve", "--port", "70000")
	assert.Error(t, err)
}

func TestProjectionBounds(t *testing.T) {
	b := projectionBounds(config.Bounds{
		ContributionMin: 1000, ContributionMax: 50000,
		RateMin: 4, RateMax: 20,
		YearsMin: 2, YearsMax: 30,
		WithdrawalMin: 3, WithdrawalMax: 5,
	})
	assert.Equal(t, 1000.0, b.MonthlyContribution.Min)
	assert.Equal(t, 500.0, b.MonthlyContribution.Step)
	assert.Equal(t, 30.0, b.Years.Max)
	assert.Equal(t, 5.0, b.WithdrawalRate.Max)
}

func TestSchemesCommandUsesConfiguredRegistry(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) == "/schemes/1" {
			ctx.SetContentType("application/json")
			ctx.SetBodyString(`{"scheme_id":"1","return_rate":"7.4% p.a."}`)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	t.Setenv("EASYWEALTH_SCHEME_REGISTRY_URL", "http://"+ln.Addr().String())

	out, _, err := run(t, "schemes")
	require.NoError(t, err)
	assert.Contains(t, out, "7.4% p.a.")
	assert.NotContains(t, out, "7.1% p.a.")
}
