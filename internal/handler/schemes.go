package handler

import (
	"strings"

	"github.com/valyala/fasthttp"

	perr "easywealth/internal/platform/errors"
	"easywealth/internal/risk"
	"easywealth/internal/schemeregistry"
)

type schemesResponse struct {
	Tier    *risk.Tier              `json:"tier,omitempty"`
	Schemes []schemeregistry.Scheme `json:"schemes"`
}

// HandleSchemes lists the catalogue; risk takes a comma separated list of bands
func (h *Handler) HandleSchemes(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	f := schemeregistry.Filter{Type: strings.TrimSpace(string(args.Peek("type")))}
	for _, r := range strings.Split(string(args.Peek("risk")), ",") {
		if r = strings.TrimSpace(r); r != "" {
			f.Risk = append(f.Risk, r)
		}
	}
	writeJSON(ctx, fasthttp.StatusOK, schemesResponse{Schemes: h.schemes.List(reqContext(ctx), f)})
}

// HandleRecommended picks schemes for ?tier= or, failing that, for the
// tier of ?session=.
func (h *Handler) HandleRecommended(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()

	var tier risk.Tier
	switch {
	case args.Has("tier"):
		t, err := risk.ParseTier(string(args.Peek("tier")))
		if err != nil {
			writeError(ctx, perr.WithField(perr.Validationf("%s", err.Error()), "tier"))
			return
		}
		tier = t
	case args.Has("session"):
		ws, err := h.sessions.Get(string(args.Peek("session")))
		if err != nil {
			writeError(ctx, err)
			return
		}
		tier = ws.Profile.Tier()
	}

	writeJSON(ctx, fasthttp.StatusOK, schemesResponse{
		Tier:    &tier,
		Schemes: h.schemes.RecommendedFor(reqContext(ctx), tier),
	})
}
