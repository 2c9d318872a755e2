// Package apiconnect wires the gameochtend.v1 services to connectrpc.com/connect.
//
// Messages are the plain structs of package api, carried with a JSON codec that
// replaces connect's default protobuf JSON codec. Handlers and clients built here
// always install that codec.
package apiconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Codec encodes messages with encoding/json under the "json" codec name, so
// browsers can post application/json bodies to the connect protocol endpoints.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// serviceMux routes the procedures of one service.
type serviceMux struct {
	mux  *http.ServeMux
	opts []connect.HandlerOption
}

func newServiceMux(opts []connect.HandlerOption) *serviceMux {
	return &serviceMux{
		mux:  http.NewServeMux(),
		opts: append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...),
	}
}

func (m *serviceMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mux.ServeHTTP(w, r)
}

// handle registers one unary procedure.
func handle[Req, Res any](m *serviceMux, procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error)) {
	m.mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, m.opts...))
}

// servicePath returns the mount path of a service, e.g. "/gameochtend.v1.GroupService/".
func servicePath(name string) string {
	return "/" + name + "/"
}

// newClient builds a unary client for procedure using the JSON codec.
func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return connect.NewClient[Req, Res](httpClient, baseURL+procedure, opts...)
}
