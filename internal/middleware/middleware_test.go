package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/circleledger/internal/auth"
)

// whoamiProcedure echoes the authenticated member.
const whoamiProcedure = "/test.v1.TestService/WhoAmI"

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

type whoamiRequest struct{}

type whoamiResponse struct {
	MemberID string `json:"member_id"`
}

func setupServer(t *testing.T, opts ...connect.HandlerOption) *connect.Client[whoamiRequest, whoamiResponse] {
	t.Helper()

	handler := connect.NewUnaryHandler(whoamiProcedure,
		func(ctx context.Context, _ *connect.Request[whoamiRequest]) (*connect.Response[whoamiResponse], error) {
			if GetMemberID(ctx) == "M9" {
				return nil, connect.NewError(connect.CodeInternal, errors.New("boom"))
			}
			return connect.NewResponse(&whoamiResponse{MemberID: GetMemberID(ctx)}), nil
		},
		append(opts, connect.WithCodec(jsonCodec{}))...,
	)

	mux := http.NewServeMux()
	mux.Handle(whoamiProcedure, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return connect.NewClient[whoamiRequest, whoamiResponse](
		http.DefaultClient,
		server.URL+whoamiProcedure,
		connect.WithCodec(jsonCodec{}),
	)
}

func TestRequireAuth(t *testing.T) {
	manager := auth.NewJWTManager("middleware-test-secret", time.Hour)
	client := setupServer(t, connect.WithInterceptors(RequireAuth(manager)))

	valid, err := manager.Generate("M1", "Aki")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	forged, _ := auth.NewJWTManager("other-secret", time.Hour).Generate("M1", "")

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
		wantID   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantID: "M1"},
		{name: "lowercase scheme", header: "bearer " + valid, wantID: "M1"},
		{name: "missing header", header: "", wantCode: connect.CodeUnauthenticated},
		{name: "wrong scheme", header: "Basic " + valid, wantCode: connect.CodeUnauthenticated},
		{name: "no token", header: "Bearer", wantCode: connect.CodeUnauthenticated},
		{name: "forged token", header: "Bearer " + forged, wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&whoamiRequest{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			resp, err := client.CallUnary(context.Background(), req)
			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("expected code %v, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Msg.MemberID != tt.wantID {
				t.Errorf("member_id = %q, want %q", resp.Msg.MemberID, tt.wantID)
			}
		})
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	manager := auth.NewJWTManager("middleware-test-secret", time.Hour)
	client := setupServer(t, connect.WithInterceptors(RequireAuth(manager), LoggingInterceptor(logger)))

	call := func(memberID string) {
		token, err := manager.Generate(memberID, "")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		req := connect.NewRequest(&whoamiRequest{})
		req.Header().Set("Authorization", "Bearer "+token)
		_, _ = client.CallUnary(context.Background(), req)
	}

	t.Run("success is logged at info", func(t *testing.T) {
		logs.Reset()
		call("M1")
		out := logs.String()
		if !strings.Contains(out, `"msg":"RPC ok"`) || !strings.Contains(out, `"member_id":"M1"`) {
			t.Errorf("unexpected log output: %s", out)
		}
		if !strings.Contains(out, `"procedure":"`+whoamiProcedure+`"`) {
			t.Errorf("procedure missing from log: %s", out)
		}
	})

	t.Run("internal error is logged at error", func(t *testing.T) {
		logs.Reset()
		call("M9")
		out := logs.String()
		if !strings.Contains(out, `"level":"ERROR"`) || !strings.Contains(out, `"msg":"RPC error"`) {
			t.Errorf("unexpected log output: %s", out)
		}
	})
}

func TestGetMemberID(t *testing.T) {
	if got := GetMemberID(context.Background()); got != "" {
		t.Errorf("expected empty member id, got %q", got)
	}
	if got := GetMemberID(WithMemberID(context.Background(), "M2")); got != "M2" {
		t.Errorf("expected M2, got %q", got)
	}
}
