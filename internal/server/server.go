package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/devghori1264/aerophoenix/osplugin/internal/lifecycle"
	proto "github.com/devghori1264/aerophoenix/osplugin/internal/proto"
	"github.com/devghori1264/aerophoenix/osplugin/internal/validate"
)

// Lifecycle is the set of operations the service exposes.
type Lifecycle interface {
	Instantiate(ctx context.Context, cred validate.Credentials, instanceID, packageID string) error
	Terminate(ctx context.Context, cred validate.Credentials, instanceID string) error
	Query(ctx context.Context, cred validate.Credentials, instanceID string) ([]lifecycle.VM, error)
	WorkloadEvents(ctx context.Context, cred validate.Credentials, instanceID string) ([]lifecycle.ResourceEvents, error)
	UploadConfig(ctx context.Context, cred validate.Credentials, data []byte) error
	RemoveConfig(ctx context.Context, cred validate.Credentials) error
	UploadPackage(ctx context.Context, cred validate.Credentials, packageID string, archive io.ReaderAt, size int64) error
	DeletePackage(ctx context.Context, cred validate.Credentials, packageID string) error
}

var (
	errUploadTooLarge = errors.New("package upload exceeds size limit")
	errConfigTooLarge = errors.New("config upload exceeds size limit")
)

// Server implements the AppLCM service on top of the lifecycle controller.
type Server struct {
	proto.UnimplementedAppLCMServer
	ctl Lifecycle
	log *zap.Logger

	// uploads are spooled here before admission
	spool     afero.Fs
	spoolDir  string
	maxUpload int64
	maxConfig int64
}

// Options configures upload spooling. Zero values select the OS temp dir and
// no size caps.
type Options struct {
	Spool     afero.Fs
	SpoolDir  string
	MaxUpload int64
	// MaxConfig caps the rc file buffered from the config stream
	MaxConfig int64
}

// New creates a new server instance.
func New(ctl Lifecycle, log *zap.Logger, opts Options) *Server {
	if opts.Spool == nil {
		opts.Spool = afero.NewOsFs()
	}
	if opts.SpoolDir == "" {
		opts.SpoolDir = os.TempDir()
	}
	return &Server{
		ctl:       ctl,
		log:       log.Named("grpc"),
		spool:     opts.Spool,
		spoolDir:  opts.SpoolDir,
		maxUpload: opts.MaxUpload,
		maxConfig: opts.MaxConfig,
	}
}

// RegisterGRPC registers the gRPC handlers.
func (s *Server) RegisterGRPC(gs *grpc.Server) {
	proto.RegisterAppLCMServer(gs, s)
}

// result maps a controller error onto the response status. Expected
// failures become Failure; storage faults become a gRPC error.
func (s *Server) result(op string, err error) (string, error) {
	if err == nil {
		return proto.StatusSuccess, nil
	}
	if lifecycle.KindOf(err) == lifecycle.StorageError {
		s.log.Error("storage fault", zap.String("op", op), zap.Error(err))
		return "", status.Error(codes.Internal, "record store unavailable")
	}
	s.log.Info("request failed", zap.String("op", op), zap.Error(err))
	return proto.StatusFailure, nil
}

func (s *Server) Instantiate(ctx context.Context, req *proto.InstantiateRequest) (*proto.InstantiateResponse, error) {
	st, err := s.result("instantiate", s.ctl.Instantiate(ctx, req, req.AppInstanceId, req.AppPackageId))
	if err != nil {
		return nil, err
	}
	return &proto.InstantiateResponse{Status: st}, nil
}

func (s *Server) Terminate(ctx context.Context, req *proto.TerminateRequest) (*proto.TerminateResponse, error) {
	st, err := s.result("terminate", s.ctl.Terminate(ctx, req, req.AppInstanceId))
	if err != nil {
		return nil, err
	}
	return &proto.TerminateResponse{Status: st}, nil
}

func (s *Server) Query(ctx context.Context, req *proto.QueryRequest) (*proto.QueryResponse, error) {
	vms, err := s.ctl.Query(ctx, req, req.AppInstanceId)
	if _, ferr := s.result("query", err); ferr != nil {
		return nil, ferr
	}
	return &proto.QueryResponse{Response: lifecycle.QueryJSON(vms, err)}, nil
}

func (s *Server) WorkloadEvents(ctx context.Context, req *proto.WorkloadEventsRequest) (*proto.WorkloadEventsResponse, error) {
	groups, err := s.ctl.WorkloadEvents(ctx, req, req.AppInstanceId)
	if _, ferr := s.result("workloadEvents", err); ferr != nil {
		return nil, ferr
	}
	return &proto.WorkloadEventsResponse{Response: lifecycle.EventsJSON(groups, err)}, nil
}

// UploadConfig collects the streamed rc file and stores it once the client
// closes the stream.
func (s *Server) UploadConfig(stream grpc.ClientStreamingServer[proto.UploadCfgRequest, proto.UploadCfgResponse]) error {
	meta := &proto.UploadCfgRequest{}
	var buf bytes.Buffer
	var recvErr error
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if recvErr != nil {
			continue
		}
		if msg.AccessToken != "" {
			meta.AccessToken = msg.AccessToken
		}
		if msg.HostIp != "" {
			meta.HostIp = msg.HostIp
		}
		if s.maxConfig > 0 && int64(buf.Len()+len(msg.ConfigFile)) > s.maxConfig {
			recvErr = errConfigTooLarge
			continue
		}
		buf.Write(msg.ConfigFile)
	}

	if recvErr != nil {
		s.log.Info("request failed", zap.String("op", "uploadConfig"), zap.Error(recvErr))
		return stream.SendAndClose(&proto.UploadCfgResponse{Status: proto.StatusFailure})
	}
	meta.ConfigFile = buf.Bytes()
	st, err := s.result("uploadConfig", s.ctl.UploadConfig(stream.Context(), meta, meta.ConfigFile))
	if err != nil {
		return err
	}
	return stream.SendAndClose(&proto.UploadCfgResponse{Status: st})
}

func (s *Server) RemoveConfig(ctx context.Context, req *proto.RemoveCfgRequest) (*proto.RemoveCfgResponse, error) {
	st, err := s.result("removeConfig", s.ctl.RemoveConfig(ctx, req))
	if err != nil {
		return nil, err
	}
	return &proto.RemoveCfgResponse{Status: st}, nil
}

func (s *Server) DeletePackage(ctx context.Context, req *proto.DeletePackageRequest) (*proto.DeletePackageResponse, error) {
	st, err := s.result("deletePackage", s.ctl.DeletePackage(ctx, req, req.AppPackageId))
	if err != nil {
		return nil, err
	}
	return &proto.DeletePackageResponse{Status: st}, nil
}

// UploadPackage spools the streamed archive to a temp file and admits it
// once the client closes the stream.
func (s *Server) UploadPackage(stream grpc.ClientStreamingServer[proto.UploadPackageRequest, proto.UploadPackageResponse]) error {
	ctx := stream.Context()
	f, err := afero.TempFile(s.spool, s.spoolDir, "osplugin-upload-*.zip")
	if err != nil {
		s.log.Error("create spool file", zap.Error(err))
		return status.Error(codes.Internal, "cannot spool upload")
	}
	defer func() {
		f.Close()
		_ = s.spool.Remove(f.Name())
	}()

	meta := &proto.UploadPackageRequest{}
	var size int64
	var recvErr error
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if recvErr != nil {
			continue
		}
		if msg.AccessToken != "" {
			meta.AccessToken = msg.AccessToken
		}
		if msg.HostIp != "" {
			meta.HostIp = msg.HostIp
		}
		if msg.AppPackageId != "" {
			meta.AppPackageId = msg.AppPackageId
		}
		if len(msg.Package) == 0 {
			continue
		}
		if s.maxUpload > 0 && size+int64(len(msg.Package)) > s.maxUpload {
			recvErr = errUploadTooLarge
			continue
		}
		n, err := f.Write(msg.Package)
		size += int64(n)
		if err != nil {
			s.log.Error("write spool file", zap.Error(err))
			return status.Error(codes.Internal, "cannot spool upload")
		}
	}

	if recvErr != nil {
		s.log.Info("request failed", zap.String("op", "uploadPackage"), zap.Error(recvErr))
		return stream.SendAndClose(&proto.UploadPackageResponse{Status: proto.StatusFailure})
	}
	st, err := s.result("uploadPackage", s.ctl.UploadPackage(ctx, meta, meta.AppPackageId, f, size))
	if err != nil {
		return err
	}
	return stream.SendAndClose(&proto.UploadPackageResponse{Status: st})
}
