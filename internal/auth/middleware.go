package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"ms-backoffice/internal/logger"
)

type contextKey string

const operatorKey contextKey = "operator"

// Operator is the authenticated back-office user.
type Operator struct {
	Subject string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

// Verifier checks a raw bearer token and returns its operator.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Operator, error)
}

// Middleware rejects requests without a valid bearer token and stores the
// operator in the request context.
func Middleware(v Verifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, err := ExtractTokenFromRequest(r)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}

			op, err := v.Verify(r.Context(), rawToken)
			if err != nil {
				if log != nil {
					log.LogSecurity("TOKEN_REJECTED", err.Error())
				}
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), op)))
		})
	}
}

func WithOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, operatorKey, op)
}

// OperatorFrom returns the operator stored by Middleware.
func OperatorFrom(ctx context.Context) (Operator, bool) {
	op, ok := ctx.Value(operatorKey).(Operator)
	return op, ok
}

// OperatorID is the subject of the current operator, or "".
func OperatorID(ctx context.Context) string {
	op, _ := OperatorFrom(ctx)
	return op.Subject
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
