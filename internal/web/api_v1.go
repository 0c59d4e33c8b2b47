package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rook-computer/framerelay/internal/clientscript"
	"github.com/rook-computer/framerelay/internal/render"
	"github.com/rook-computer/framerelay/internal/validate"
)

// jsonFrameOverhead is the slack allowed on top of MaxFrameSize for the
// envelope of a JSON or form encoded frame.
const jsonFrameOverhead = 1024

const maxQRCodeSizePx = 1024

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type frameResponse struct {
	Frame string `json:"frame"`
}

type healthResponse struct {
	Status      string     `json:"status"`
	Message     string     `json:"message"`
	FrameLength int        `json:"frameLength"`
	Writes      uint64     `json:"writes"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type clientRequest struct {
	BackendURL  string `json:"backendUrl"`
	MonitorSide string `json:"monitorSide"`
}

func handleHealth(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	snap := deps.Frames.Snapshot()
	resp := healthResponse{
		Status:      "ok",
		Message:     "Service is healthy",
		FrameLength: len(snap.Frame),
		Writes:      snap.Writes,
	}
	if !snap.UpdatedAt.IsZero() {
		at := snap.UpdatedAt.UTC()
		resp.UpdatedAt = &at
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleGetFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, frameResponse{Frame: deps.Frames.Read()})
}

func handleSaveFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	payload, err := readFramePayload(w, r, deps.MaxFrameSize)
	if err != nil {
		writeError(w, r, deps, err)
		return
	}
	if err := validate.FramePayload(payload, deps.MaxFrameSize); err != nil {
		writeError(w, r, deps, err)
		return
	}
	deps.Frames.Write(payload)
	w.WriteHeader(http.StatusNoContent)
}

var errInvalidBody = errors.New("invalid request body")

// readFramePayload accepts a JSON {"frame": ...} body, a form field "frame",
// or the raw digits. Surrounding whitespace of a raw body is ignored.
func readFramePayload(w http.ResponseWriter, r *http.Request, max int) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(max)+jsonFrameOverhead)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		var body frameResponse
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", bodyError(err)
		}
		return body.Frame, nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return "", bodyError(err)
		}
		return r.PostForm.Get("frame"), nil
	default:
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return "", bodyError(err)
		}
		return string(bytes.TrimSpace(raw)), nil
	}
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: body exceeds %d bytes", validate.ErrPayloadTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %v", errInvalidBody, err)
}

func handleDownloadClient(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	cfg, err := readClientRequest(r)
	if err != nil {
		writeError(w, r, deps, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, r, deps, err)
		return
	}
	script, err := deps.Client.RenderFile(cfg)
	if err != nil {
		writeError(w, r, deps, err)
		return
	}
	setDownloadHeaders(w, clientscript.Filename, clientscript.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(script)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(script)
}

// handleClientQRCode returns a QR code pointing at the GET form of the download
// endpoint for the same parameters.
func handleClientQRCode(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	cfg, err := readClientRequest(r)
	if err != nil {
		writeError(w, r, deps, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, r, deps, err)
		return
	}
	size, err := intParam(r, "size", render.DefaultQRCodeSizePx, 1, maxQRCodeSizePx)
	if err != nil {
		writeError(w, r, deps, err)
		return
	}

	query := url.Values{}
	query.Set("backendUrl", cfg.BackendURL)
	query.Set("monitorSide", cfg.MonitorSide)
	target := baseURL(r, deps.PublicURL) + "/api/v1/download-client?" + query.Encode()

	png, err := render.QRCodePNG(target, size)
	if err != nil {
		writeError(w, r, deps, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func readClientRequest(r *http.Request) (clientscript.Config, error) {
	if r.Method == http.MethodPost {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "application/json" {
			var body clientRequest
			if err := json.NewDecoder(io.LimitReader(r.Body, 4096)).Decode(&body); err != nil {
				return clientscript.Config{}, fmt.Errorf("%w: %v", errInvalidBody, err)
			}
			return clientscript.Config{BackendURL: body.BackendURL, MonitorSide: body.MonitorSide}, nil
		}
	}
	if err := r.ParseForm(); err != nil {
		return clientscript.Config{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return clientscript.Config{
		BackendURL:  firstFormValue(r, "backendUrl", "backend_url"),
		MonitorSide: firstFormValue(r, "monitorSide", "monitor_side"),
	}, nil
}

func firstFormValue(r *http.Request, keys ...string) string {
	for _, key := range keys {
		if values, ok := r.Form[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func handleTestFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	width, err := intParam(r, "width", render.DefaultTestWidth, 1, deps.MaxFrameSize)
	if err != nil {
		writeError(w, r, deps, err)
		return
	}
	height, err := intParam(r, "height", render.DefaultTestHeight, 1, deps.MaxFrameSize)
	if err != nil {
		writeError(w, r, deps, err)
		return
	}
	if width*height > deps.MaxFrameSize {
		writeError(w, r, deps, fmt.Errorf("%w: %dx%d exceeds %d cells", render.ErrBadDimensions, width, height, deps.MaxFrameSize))
		return
	}
	pattern := render.Pattern(r.URL.Query().Get("pattern"))
	if pattern == "" {
		pattern = render.PatternRainbow
	}
	writeJSON(w, http.StatusOK, frameResponse{Frame: render.TestFrame(width, height, pattern)})
}

func handleFramePreview(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	width, err := intParam(r, "width", render.DefaultTestWidth, 1, deps.MaxFrameSize)
	if err != nil {
		writeError(w, r, deps, err)
		return
	}
	scale, err := intParam(r, "scale", render.DefaultPreviewScale, 1, render.MaxPreviewScale)
	if err != nil {
		writeError(w, r, deps, err)
		return
	}
	caption := false
	if raw := r.URL.Query().Get("caption"); raw != "" {
		caption, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, deps, fmt.Errorf("%w: caption must be a boolean", errInvalidParam))
			return
		}
	}

	var buf bytes.Buffer
	opts := render.PreviewOptions{Width: width, Scale: scale, Caption: caption}
	if err := render.PreviewPNG(&buf, deps.Frames.Read(), opts); err != nil {
		writeError(w, r, deps, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

var errInvalidParam = errors.New("invalid query parameter")

func intParam(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errInvalidParam, name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: %s must be between %d and %d", errInvalidParam, name, min, max)
	}
	return v, nil
}

// baseURL is the configured public URL, or one derived from the request.
func baseURL(r *http.Request, publicURL string) string {
	if publicURL != "" {
		return publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func setDownloadHeaders(w http.ResponseWriter, filename, contentType string) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	cd := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	w.Header().Set("Content-Disposition", cd)
}

// classifyError maps an error to its HTTP status and API error code. Caller
// errors keep their message; server faults get a generic one.
func classifyError(err error) (status int, code string, message string) {
	switch {
	case errors.Is(err, validate.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "payload_too_large", err.Error()
	case errors.Is(err, validate.ErrInvalidCharset):
		return http.StatusBadRequest, "invalid_charset", err.Error()
	case errors.Is(err, validate.ErrInvalidEnum):
		return http.StatusBadRequest, "invalid_monitor_side", err.Error()
	case errors.Is(err, validate.ErrInvalidURL):
		return http.StatusBadRequest, "invalid_backend_url", err.Error()
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, "invalid_body", err.Error()
	case errors.Is(err, errInvalidParam):
		return http.StatusBadRequest, "invalid_parameter", err.Error()
	case errors.Is(err, render.ErrBadDimensions):
		return http.StatusBadRequest, "invalid_dimensions", err.Error()
	case errors.Is(err, clientscript.ErrTemplateUnavailable):
		return http.StatusInternalServerError, "template_unavailable", "client template is unavailable"
	case errors.Is(err, clientscript.ErrTemplateFault):
		return http.StatusInternalServerError, "template_fault", "client template is misconfigured"
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, deps APIV1Deps, err error) {
	status, code, message := classifyError(err)
	switch {
	case errors.Is(err, clientscript.ErrTemplateFault):
		// Deployment fault in the template file.
		deps.Logger.Warnf("web", "%s %s [%s]: %v", r.Method, r.URL.Path, requestIDFrom(r.Context()), err)
	case status >= http.StatusInternalServerError:
		deps.Logger.Errorf("web", "%s %s [%s]: %v", r.Method, r.URL.Path, requestIDFrom(r.Context()), err)
	}
	writeAPIError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
