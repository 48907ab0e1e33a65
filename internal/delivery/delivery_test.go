package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/receipt_uploader/internal/domain"
	"github.com/Vovarama1992/receipt_uploader/internal/ports"
	"go.uber.org/zap"
)

type fakeReceiptService struct {
	got           []ports.Order
	invocationIDs []string
	err           error
	calls         int
}

func (f *fakeReceiptService) Process(ctx context.Context, order ports.Order) (string, error) {
	f.calls++
	f.got = append(f.got, order)
	f.invocationIDs = append(f.invocationIDs, ports.InvocationIDFromContext(ctx))
	if f.err != nil {
		return "", f.err
	}
	return domain.Success, nil
}

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

func mustValidator(t *testing.T) *OrderValidator {
	t.Helper()
	v, err := NewOrderValidator()
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}
	return v
}

func TestReceiptHandler_Create(t *testing.T) {
	t.Parallel()

	const valid = `{"order_id":"ORD-1","amount":42.5,"item":"Widget"}`

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
		expectedCalls  int
	}{
		{
			name:           "success",
			body:           valid,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"key":"receipts/ORD-1.txt"`,
			expectedCalls:  1,
		},
		{
			name:           "invalid json",
			body:           `{"order_id":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing amount",
			body:           `{"order_id":"ORD-1","item":"Widget"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative amount",
			body:           `{"order_id":"ORD-1","amount":-1,"item":"Widget"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "amount as string",
			body:           `{"order_id":"ORD-1","amount":"42.5","item":"Widget"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty order id",
			body:           `{"order_id":"","amount":1,"item":"Widget"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty item is accepted",
			body:           `{"order_id":"ORD-1","amount":1,"item":""}`,
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "invalid order from service",
			body:           valid,
			serviceErr:     fmt.Errorf("%w: item is required", domain.ErrInvalidOrder),
			expectedStatus: http.StatusBadRequest,
			expectedCalls:  1,
		},
		{
			name:           "bucket not configured",
			body:           valid,
			serviceErr:     domain.ErrBucketNotConfigured,
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: "RECEIPT_BUCKET",
			expectedCalls:  1,
		},
		{
			name:           "upload failed",
			body:           valid,
			serviceErr:     &domain.UploadError{Err: errors.New("AccessDenied")},
			expectedStatus: http.StatusBadGateway,
			expectedSubstr: "failed to upload receipt to S3: AccessDenied",
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &fakeReceiptService{err: tt.serviceErr}
			router := NewRouter(NewReceiptHandler(svc, mustValidator(t), nopLogger()), 1000)

			req := httptest.NewRequest(http.MethodPost, "/receipts", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
			if svc.calls != tt.expectedCalls {
				t.Fatalf("expected %d service calls, got %d", tt.expectedCalls, svc.calls)
			}
			id := rec.Header().Get("X-Invocation-ID")
			if id == "" {
				t.Fatalf("expected invocation id header")
			}
			if svc.calls > 0 && svc.invocationIDs[0] != id {
				t.Fatalf("expected service ctx to carry %q, got %q", id, svc.invocationIDs[0])
			}
		})
	}
}

func TestRouter_Ping(t *testing.T) {
	t.Parallel()

	router := NewRouter(NewReceiptHandler(&fakeReceiptService{}, mustValidator(t), nopLogger()), 10)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("unexpected ping response %d %q", rec.Code, rec.Body.String())
	}
}

func TestLambdaHandler_Handle(t *testing.T) {
	t.Parallel()

	t.Run("decodes event and returns success", func(t *testing.T) {
		svc := &fakeReceiptService{}
		h := NewLambdaHandler(svc, mustValidator(t), nopLogger())

		res, err := h.Handle(context.Background(), []byte(`{"order_id":"ORD-1","amount":42.5,"item":"Widget"}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res != "Success" {
			t.Fatalf("expected Success, got %q", res)
		}
		got := svc.got[0]
		if got.OrderID != "ORD-1" || got.Item != "Widget" || got.Amount != 42.5 {
			t.Fatalf("unexpected order %+v", got)
		}
		if svc.invocationIDs[0] == "" {
			t.Fatalf("expected invocation id in service ctx")
		}
	})

	t.Run("rejects malformed event without calling service", func(t *testing.T) {
		svc := &fakeReceiptService{}
		h := NewLambdaHandler(svc, mustValidator(t), nopLogger())

		_, err := h.Handle(context.Background(), []byte(`{"order_id":"ORD-1"}`))
		if !errors.Is(err, ErrBadEvent) {
			t.Fatalf("expected ErrBadEvent, got %v", err)
		}
		if svc.calls != 0 {
			t.Fatalf("expected no service calls, got %d", svc.calls)
		}
	})

	t.Run("propagates service error unchanged", func(t *testing.T) {
		uploadErr := &domain.UploadError{Err: errors.New("timeout")}
		h := NewLambdaHandler(&fakeReceiptService{err: uploadErr}, mustValidator(t), nopLogger())

		_, err := h.Handle(context.Background(), []byte(`{"order_id":"ORD-1","amount":1,"item":"Widget"}`))
		if err != uploadErr {
			t.Fatalf("expected the upload error itself, got %v", err)
		}
	})
}

type recordingStore struct {
	bodies map[string]string
}

func (s *recordingStore) PutObject(_ context.Context, _, key string, body []byte) error {
	s.bodies[key] = string(body)
	return nil
}

func TestLambdaHandler_RendersEventWithRealService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event string
		key   string
		want  string
	}{
		{
			name:  "binary value below midpoint rounds down",
			event: `{"order_id":"A","amount":1.005,"item":"Widget"}`,
			key:   "receipts/A.txt",
			want:  "OrderID: A\nAmount: $1.00\nItem: Widget",
		},
		{
			name:  "2.675 rounds down like toFixed",
			event: `{"order_id":"B","amount":2.675,"item":"Widget"}`,
			key:   "receipts/B.txt",
			want:  "OrderID: B\nAmount: $2.67\nItem: Widget",
		},
		{
			name:  "empty item is uploaded",
			event: `{"order_id":"C","amount":5,"item":""}`,
			key:   "receipts/C.txt",
			want:  "OrderID: C\nAmount: $5.00\nItem: ",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &recordingStore{bodies: map[string]string{}}
			svc := domain.NewReceiptService(store, func() string { return "receipts-bucket" }, nil, nopLogger())
			h := NewLambdaHandler(svc, mustValidator(t), nopLogger())

			res, err := h.Handle(context.Background(), []byte(tt.event))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if res != domain.Success {
				t.Fatalf("expected %q, got %q", domain.Success, res)
			}
			if got := store.bodies[tt.key]; got != tt.want {
				t.Fatalf("expected body %q, got %q", tt.want, got)
			}
		})
	}
}
