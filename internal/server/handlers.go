package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/gitgraph/pkg/errors"
	modelio "github.com/matzehuels/gitgraph/pkg/io"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatNodelink: "image/svg+xml",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
}

// handleRender renders a posted JSON model into the format named by the
// format query parameter (svg by default).
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	g, err := modelio.ReadJSON(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}

	cfg := s.opts.Config
	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Model:     g,
		Direction: r.URL.Query().Get("direction"),
		Config:    &cfg,
		Formats:   []string{format},
		Title:     r.URL.Query().Get("title"),
		Detailed:  r.URL.Query().Get("detailed") == "true",
	})
	if err != nil {
		s.logger.Debug("render request failed", "format", format, "err", err)
		writeError(w, err)
		return
	}

	if len(res.CacheInfo.Hits) > 0 {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(res.Artifacts[format])
}

// handleModel serves the latest SVG of the watched model.
func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	if s.opts.Path == "" {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no model is being watched"))
		return
	}
	svg, err := s.Current()
	if svg == nil {
		if err == nil {
			err = errors.New(errors.ErrCodeNotFound, "model not rendered yet")
		}
		writeError(w, err)
		return
	}
	if err != nil {
		w.Header().Set("X-Render-Error", string(errors.GetCode(err)))
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatSVG])
	w.Write(svg)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(code))
	json.NewEncoder(w).Encode(errorBody{Error: err.Error(), Code: string(code)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDirection:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidModel, errors.ErrCodeMissingParent, errors.ErrCodeMissingBranchTip,
		errors.ErrCodeRender, errors.ErrCodeUnplacedNode:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>gitgraph preview</title>
<style>body{margin:0;font-family:sans-serif}#err{color:#983351;padding:8px}</style>
</head>
<body>
<div id="err"></div>
<div id="graph"></div>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/api/ws");
ws.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  if (msg.type === "svg") {
    document.getElementById("graph").innerHTML = msg.data;
    document.getElementById("err").textContent = "";
  } else if (msg.type === "error") {
    document.getElementById("err").textContent = msg.data;
  }
};
</script>
</body>
</html>
`
