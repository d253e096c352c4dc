package grpc

// proto.go defines the farmscore.v1.ScoringService contract by hand. Messages
// are the application DTOs, carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/dto"
)

const scoringServiceName = "farmscore.v1.ScoringService"

// ListScorecardsRequest is the empty request of ListScorecards.
type ListScorecardsRequest struct{}

// ScoringServiceServer is the server API for ScoringService.
type ScoringServiceServer interface {
	Score(context.Context, *dto.ScoreRequest) (*dto.ScoreResponse, error)
	ScoreBatch(context.Context, *dto.BatchScoreRequest) (*dto.BatchScoreResponse, error)
	ListScorecards(context.Context, *ListScorecardsRequest) (*dto.ListScorecardsResponse, error)
	mustEmbedUnimplementedScoringServiceServer()
}

// UnimplementedScoringServiceServer provides forward-compatible default implementations.
type UnimplementedScoringServiceServer struct{}

func (UnimplementedScoringServiceServer) Score(context.Context, *dto.ScoreRequest) (*dto.ScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Score not implemented")
}
func (UnimplementedScoringServiceServer) ScoreBatch(context.Context, *dto.BatchScoreRequest) (*dto.BatchScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreBatch not implemented")
}
func (UnimplementedScoringServiceServer) ListScorecards(context.Context, *ListScorecardsRequest) (*dto.ListScorecardsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListScorecards not implemented")
}
func (UnimplementedScoringServiceServer) mustEmbedUnimplementedScoringServiceServer() {}

// RegisterScoringServiceServer registers the ScoringServiceServer with the gRPC server.
func RegisterScoringServiceServer(s grpclib.ServiceRegistrar, srv ScoringServiceServer) {
	s.RegisterService(&_ScoringService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _ScoringService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: scoringServiceName,
	HandlerType: (*ScoringServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Score", Handler: _ScoringService_Score_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "ScoreBatch", Handler: _ScoringService_ScoreBatch_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "ListScorecards", Handler: _ScoringService_ListScorecards_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _ScoringService_Score_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.ScoreRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).Score(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + scoringServiceName + "/Score",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).Score(ctx, req.(*dto.ScoreRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScoringService_ScoreBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.BatchScoreRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).ScoreBatch(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + scoringServiceName + "/ScoreBatch",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).ScoreBatch(ctx, req.(*dto.BatchScoreRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScoringService_ListScorecards_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListScorecardsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).ListScorecards(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + scoringServiceName + "/ListScorecards",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).ListScorecards(ctx, req.(*ListScorecardsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

// ScoringServiceClient is the client API for ScoringService.
type ScoringServiceClient interface {
	Score(ctx context.Context, in *dto.ScoreRequest, opts ...grpclib.CallOption) (*dto.ScoreResponse, error)
	ScoreBatch(ctx context.Context, in *dto.BatchScoreRequest, opts ...grpclib.CallOption) (*dto.BatchScoreResponse, error)
	ListScorecards(ctx context.Context, in *ListScorecardsRequest, opts ...grpclib.CallOption) (*dto.ListScorecardsResponse, error)
}

type scoringServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewScoringServiceClient creates a client that always encodes with JSON.
func NewScoringServiceClient(cc grpclib.ClientConnInterface) ScoringServiceClient {
	return &scoringServiceClient{cc: cc}
}

func (c *scoringServiceClient) Score(ctx context.Context, in *dto.ScoreRequest, opts ...grpclib.CallOption) (*dto.ScoreResponse, error) {
	out := new(dto.ScoreResponse)
	err := c.cc.Invoke(ctx, "/"+scoringServiceName+"/Score", in, out, append(opts, JSONCallOption())...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *scoringServiceClient) ScoreBatch(ctx context.Context, in *dto.BatchScoreRequest, opts ...grpclib.CallOption) (*dto.BatchScoreResponse, error) {
	out := new(dto.BatchScoreResponse)
	err := c.cc.Invoke(ctx, "/"+scoringServiceName+"/ScoreBatch", in, out, append(opts, JSONCallOption())...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *scoringServiceClient) ListScorecards(ctx context.Context, in *ListScorecardsRequest, opts ...grpclib.CallOption) (*dto.ListScorecardsResponse, error) {
	out := new(dto.ListScorecardsResponse)
	err := c.cc.Invoke(ctx, "/"+scoringServiceName+"/ListScorecards", in, out, append(opts, JSONCallOption())...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
