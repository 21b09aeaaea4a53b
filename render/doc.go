// Package render serializes response bodies and applies the response envelope.
//
// Renderers are deterministic. A Registry chooses one per request from the
// Accept header, falling back to JSON:
//
//	reg := render.NewRegistry()
//	rd := reg.Negotiate(r.Header.Get("Accept"))
//	body, err := rd.Render(render.Success(http.StatusOK, data))
package render
