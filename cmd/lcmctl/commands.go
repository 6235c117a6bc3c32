package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/nats-io/nats.go"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/devghori1264/aerophoenix/osplugin/internal/proto"
)

const defaultChunkSize = 1 << 20

// call dials the service, runs fn with a bounded context and closes the connection.
func (o *options) call(cmd *cobra.Command, fn func(ctx context.Context, c proto.AppLCMClient) error) error {
	if o.host == "" {
		return errors.New("--host is required")
	}
	conn, err := grpc.NewClient(o.addr, o.dialOpts...)
	if err != nil {
		return fmt.Errorf("dial %s: %w", o.addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()
	o.log.Debug("calling osplugin", zap.String("addr", o.addr), zap.String("cmd", cmd.Name()), zap.String("host", o.host))
	return fn(ctx, proto.NewAppLCMClient(conn))
}

// report prints the status and turns Failure into an error.
func report(cmd *cobra.Command, op, status string) error {
	fmt.Fprintln(cmd.OutOrStdout(), status)
	if status != proto.StatusSuccess {
		return fmt.Errorf("%s: %s", op, status)
	}
	return nil
}

func instantiateCmd(o *options) *cobra.Command {
	var packageID string
	cmd := &cobra.Command{
		Use:   "instantiate INSTANCE_ID",
		Short: "Create an application instance from an uploaded package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(cmd, func(ctx context.Context, c proto.AppLCMClient) error {
				resp, err := c.Instantiate(ctx, &proto.InstantiateRequest{
					AccessToken:   o.token,
					HostIp:        o.host,
					AppInstanceId: args[0],
					AppPackageId:  packageID,
				})
				if err != nil {
					return err
				}
				return report(cmd, "instantiate", resp.Status)
			})
		},
	}
	cmd.Flags().StringVar(&packageID, "package", "", "package id")
	_ = cmd.MarkFlagRequired("package")
	return cmd
}

func terminateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "terminate INSTANCE_ID",
		Short: "Delete an application instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(cmd, func(ctx context.Context, c proto.AppLCMClient) error {
				resp, err := c.Terminate(ctx, &proto.TerminateRequest{AccessToken: o.token, HostIp: o.host, AppInstanceId: args[0]})
				if err != nil {
					return err
				}
				return report(cmd, "terminate", resp.Status)
			})
		},
	}
}

func queryCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query INSTANCE_ID",
		Short: "Print the VMs and addresses of an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(cmd, func(ctx context.Context, c proto.AppLCMClient) error {
				resp, err := c.Query(ctx, &proto.QueryRequest{AccessToken: o.token, HostIp: o.host, AppInstanceId: args[0]})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Response)
				return nil
			})
		},
	}
}

func eventsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "events INSTANCE_ID",
		Short: "Print backend events of an instance grouped by resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(cmd, func(ctx context.Context, c proto.AppLCMClient) error {
				resp, err := c.WorkloadEvents(ctx, &proto.WorkloadEventsRequest{AccessToken: o.token, HostIp: o.host, AppInstanceId: args[0]})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Response)
				return nil
			})
		},
	}
}

func uploadConfigCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-config RC_FILE",
		Short: "Upload the backend credentials rc file for a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(o.fs, args[0])
			if err != nil {
				return err
			}
			return o.call(cmd, func(ctx context.Context, c proto.AppLCMClient) error {
				stream, err := c.UploadConfig(ctx)
				if err != nil {
					return err
				}
				if err := stream.Send(&proto.UploadCfgRequest{AccessToken: o.token, HostIp: o.host}); err != nil {
					return err
				}
				for len(data) > 0 {
					n := min(len(data), defaultChunkSize)
					if err := stream.Send(&proto.UploadCfgRequest{ConfigFile: data[:n]}); err != nil {
						if errors.Is(err, io.EOF) {
							break
						}
						return err
					}
					data = data[n:]
				}
				resp, err := stream.CloseAndRecv()
				if err != nil {
					return err
				}
				return report(cmd, "upload-config", resp.Status)
			})
		},
	}
}

func removeConfigCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-config",
		Short: "Remove the backend credentials of a host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.call(cmd, func(ctx context.Context, c proto.AppLCMClient) error {
				resp, err := c.RemoveConfig(ctx, &proto.RemoveCfgRequest{AccessToken: o.token, HostIp: o.host})
				if err != nil {
					return err
				}
				return report(cmd, "remove-config", resp.Status)
			})
		},
	}
}

func uploadPackageCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload-package PACKAGE_ID ARCHIVE",
		Short: "Stream a zip package to the service",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := o.fs.Open(args[1])
			if err != nil {
				return fmt.Errorf("open package: %w", err)
			}
			defer f.Close()

			return o.call(cmd, func(ctx context.Context, c proto.AppLCMClient) error {
				stream, err := c.UploadPackage(ctx)
				if err != nil {
					return err
				}
				if err := stream.Send(&proto.UploadPackageRequest{AccessToken: o.token, HostIp: o.host, AppPackageId: args[0]}); err != nil {
					return err
				}
				size := o.chunkSize
				if size <= 0 {
					size = defaultChunkSize
				}
				buf := make([]byte, size)
				sent := 0
				for {
					n, rerr := f.Read(buf)
					if n > 0 {
						if err := stream.Send(&proto.UploadPackageRequest{Package: buf[:n]}); err != nil {
							// the server replies early when it rejects the upload
							if errors.Is(err, io.EOF) {
								break
							}
							return err
						}
						sent += n
					}
					if rerr == io.EOF {
						break
					}
					if rerr != nil {
						return fmt.Errorf("read package: %w", rerr)
					}
				}
				resp, err := stream.CloseAndRecv()
				if err != nil {
					return err
				}
				o.log.Debug("package streamed", zap.Int("bytes", sent))
				return report(cmd, "upload-package", resp.Status)
			})
		},
	}
	cmd.Flags().IntVar(&o.chunkSize, "chunk-size", defaultChunkSize, "bytes per stream message")
	return cmd
}

func deletePackageCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-package PACKAGE_ID",
		Short: "Delete an uploaded package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(cmd, func(ctx context.Context, c proto.AppLCMClient) error {
				resp, err := c.DeletePackage(ctx, &proto.DeletePackageRequest{AccessToken: o.token, HostIp: o.host, AppPackageId: args[0]})
				if err != nil {
					return err
				}
				return report(cmd, "delete-package", resp.Status)
			})
		},
	}
}

func watchCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print instance lifecycle events published on NATS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := nats.Connect(o.natsURL, nats.Name("lcmctl"))
			if err != nil {
				return fmt.Errorf("connect %s: %w", o.natsURL, err)
			}
			defer nc.Drain()

			out := cmd.OutOrStdout()
			sub, err := nc.Subscribe(o.subject, func(m *nats.Msg) {
				fmt.Fprintln(out, string(m.Data))
			})
			if err != nil {
				return fmt.Errorf("subscribe %s: %w", o.subject, err)
			}
			defer sub.Unsubscribe()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&o.natsURL, "nats", nats.DefaultURL, "NATS server URL")
	cmd.Flags().StringVar(&o.subject, "subject", "osplugin.instances", "event subject")
	return cmd
}

