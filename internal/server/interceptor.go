package server

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"

	"github.com/joseph-ayodele/label-verifier/internal/common"
)

// UnaryRequestID tags every request context with a fresh request ID so
// service logs for one call can be correlated.
func UnaryRequestID() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		return handler(common.WithRequestID(ctx, uuid.NewString()), req)
	}
}
