package restdoc

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"mime"
	"net/http"
	"strings"
)

// Media types.
const (
	MIMEJSON = "application/json"
	MIMEXML  = "application/xml"
	MIMEYAML = "application/x-yaml"
)

// RepresentationFunc encodes v with status code. Encoders must write a 500
// response themselves when v cannot be encoded.
type RepresentationFunc func(w http.ResponseWriter, code int, v any)

type representation struct {
	mime  string
	write RepresentationFunc
}

// JSON encodes v as JSON.
func JSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", MIMEJSON)
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// XML encodes v as XML.
func XML(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", MIMEXML)
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// Representation registers an output encoder for a media type. Registered
// media types are published as the document's produces list, JSON first.
// Registering JSON replaces the built-in encoder.
func (a *API) Representation(mediaType string, fn RepresentationFunc) {
	a.update(func() {
		for i := range a.reprs {
			if a.reprs[i].mime == mediaType {
				a.reprs[i].write = fn
				return
			}
		}
		a.reprs = append(a.reprs, representation{mime: mediaType, write: fn})
	})
}

// Respond writes v with the first registered representation accepted by the
// request, falling back to JSON.
func (a *API) Respond(w http.ResponseWriter, r *http.Request, code int, v any) {
	a.mu.RLock()
	write := a.negotiate(r.Header.Get("Accept"))
	a.mu.RUnlock()

	write(w, code, v)
}

func (a *API) negotiate(accept string) RepresentationFunc {
	for _, part := range strings.Split(accept, ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		for _, repr := range a.reprs {
			if mt == repr.mime {
				return repr.write
			}
		}
	}
	return a.reprs[0].write
}

func (a *API) produces() []string {
	out := make([]string, 0, len(a.reprs))
	for _, repr := range a.reprs {
		out = append(out, repr.mime)
	}
	return out
}
