package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const metadataAuthorization = "authorization"

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(metadataAuthorization)
	if token != "" {
		md.Set(metadataAuthorization, bearer(token))
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// UnaryClientInterceptor authorizes unary calls with the source's token and,
// on codes.Unauthenticated, renews it and retries the call once.
func UnaryClientInterceptor(source TokenSource, opts ...Option) grpc.UnaryClientInterceptor {
	o := newOptions(opts)

	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		callOpts ...grpc.CallOption,
	) error {
		err := invoker(withAccessToken(ctx, source.AccessToken()), method, req, reply, cc, callOpts...)
		if err == nil || isRetry(ctx) || o.skip(method) {
			return err
		}

		st, ok := status.FromError(err)
		if !ok || st.Code() != codes.Unauthenticated {
			return err
		}

		o.log.Debug(ctx, "unauthenticated, renewing session", "method", method)
		tok, rerr := source.Refresh(ctx)
		if rerr != nil {
			return rerr
		}

		return invoker(withAccessToken(markRetry(ctx), tok), method, req, reply, cc, callOpts...)
	}
}
